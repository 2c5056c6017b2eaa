// Package history persists prompt recall history and the generated command
// log.
package history

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/renameio/v2"

	"github.com/stevef00/cmdgen/internal/ports"
)

// FileStore keeps prompts in a newline-delimited text file, oldest first,
// capped at max entries with FIFO eviction. Every write replaces the file
// atomically (temp file + rename), so concurrent appends from separate
// processes are each all-or-nothing.
type FileStore struct {
	path string
	max  int
	mu   sync.Mutex
}

// NewFileStore creates a store backed by path, retaining at most max entries.
func NewFileStore(path string, max int) *FileStore {
	return &FileStore{path: path, max: max}
}

// Load returns the stored prompts oldest-first. A missing file is a normal
// empty state and yields (nil, nil).
func (f *FileStore) Load() ([]string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return splitLines(string(data)), nil
}

// Append adds prompt at the end and rewrites the file keeping only the most
// recent max entries.
func (f *FileStore) Append(prompt string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	lines, err := f.Load()
	if err != nil {
		return err
	}
	lines = trimToMax(append(lines, prompt), f.max)

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}
	var content string
	if len(lines) > 0 {
		content = strings.Join(lines, "\n") + "\n"
	}
	return renameio.WriteFile(f.path, []byte(content), 0o600)
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

func trimToMax(lines []string, max int) []string {
	if max <= 0 {
		return nil
	}
	if len(lines) > max {
		return lines[len(lines)-max:]
	}
	return lines
}

func splitLines(data string) []string {
	var lines []string
	for _, line := range strings.Split(data, "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

var _ ports.HistoryStore = (*FileStore)(nil)
