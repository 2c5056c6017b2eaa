package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/stevef00/cmdgen/internal/domain"
	"github.com/stevef00/cmdgen/internal/ports"
)

// CommandLog persists generated commands in a SQLite database. It is
// best-effort: when the database cannot be opened the log is disabled and
// every operation reports an error the caller may downgrade to a warning.
type CommandLog struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// NewCommandLog opens (or creates) the database at path.
func NewCommandLog(path string) *CommandLog {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &CommandLog{path: path}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return &CommandLog{path: path}
	}
	log := &CommandLog{db: db, path: path}
	if err := log.init(); err != nil {
		return &CommandLog{path: path}
	}
	return log
}

func (l *CommandLog) init() error {
	_, err := l.db.Exec(`CREATE TABLE IF NOT EXISTS commands (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp TEXT,
		prompt TEXT,
		command TEXT,
		model TEXT,
		prompt_tokens INTEGER,
		completion_tokens INTEGER,
		total_tokens INTEGER
	);`)
	return err
}

// Save inserts a new record.
func (l *CommandLog) Save(rec domain.CommandRecord) error {
	if l.db == nil {
		return fmt.Errorf("command log unavailable at %s", l.path)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	ts := rec.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	_, err := l.db.Exec(`INSERT INTO commands
		(timestamp, prompt, command, model, prompt_tokens, completion_tokens, total_tokens)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		ts.Format(time.RFC3339),
		rec.Prompt,
		rec.Command,
		rec.Model,
		rec.PromptTokens,
		rec.CompletionTokens,
		rec.TotalTokens,
	)
	return err
}

// Records returns logged commands newest-first. limit <= 0 means no limit;
// search filters on prompt or command substring.
func (l *CommandLog) Records(limit int, search string) ([]domain.CommandRecord, error) {
	if l.db == nil {
		return nil, fmt.Errorf("command log unavailable at %s", l.path)
	}
	builder := strings.Builder{}
	builder.WriteString("SELECT timestamp, prompt, command, model, prompt_tokens, completion_tokens, total_tokens FROM commands")
	var args []interface{}
	if search != "" {
		builder.WriteString(" WHERE prompt LIKE ? OR command LIKE ?")
		args = append(args, "%"+search+"%", "%"+search+"%")
	}
	builder.WriteString(" ORDER BY datetime(timestamp) DESC")
	if limit > 0 {
		builder.WriteString(" LIMIT ?")
		args = append(args, limit)
	}
	rows, err := l.db.Query(builder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var records []domain.CommandRecord
	for rows.Next() {
		var rec domain.CommandRecord
		var ts string
		if err := rows.Scan(&ts, &rec.Prompt, &rec.Command, &rec.Model,
			&rec.PromptTokens, &rec.CompletionTokens, &rec.TotalTokens); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			rec.Timestamp = t
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Clear deletes all logged commands.
func (l *CommandLog) Clear() error {
	if l.db == nil {
		return fmt.Errorf("command log unavailable at %s", l.path)
	}
	_, err := l.db.Exec("DELETE FROM commands")
	return err
}

// ExportJSON writes the command table to a jsonl file.
func (l *CommandLog) ExportJSON(dest string) error {
	records, err := l.Records(0, "")
	if err != nil {
		return err
	}
	file, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer file.Close()
	for _, rec := range records {
		b, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		if _, err := file.Write(append(b, '\n')); err != nil {
			return err
		}
	}
	return nil
}

// Path returns the database path.
func (l *CommandLog) Path() string {
	return l.path
}

var _ ports.CommandLog = (*CommandLog)(nil)
