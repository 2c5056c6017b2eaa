// Package config resolves the immutable SessionConfig from defaults, an
// optional YAML file, and environment variables, in increasing precedence.
// CLI flags are layered on top by the command layer.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	"github.com/stevef00/cmdgen/internal/domain"
)

// fileSettings mirrors ~/.cmdgen/config.yaml.
type fileSettings struct {
	APIKeyPath      string `yaml:"api_key_path"`
	HistoryFile     string `yaml:"history_file"`
	MaxHistory      *int   `yaml:"max_history"`
	Model           string `yaml:"model"`
	APIURL          string `yaml:"api_url"`
	DeveloperPrompt string `yaml:"developer_prompt"`
	TimeoutSeconds  int    `yaml:"timeout"`
}

// Loader builds the SessionConfig. The environment and terminal probes are
// injectable so tests can exercise precedence and quiet-forcing.
type Loader struct {
	overridePath string
	env          func(string) string
	isTerminal   func() bool
}

// NewLoader builds a loader; path overrides the config file location for
// tests (the CMDGEN_CONFIG environment variable does the same for users).
func NewLoader(path string) *Loader {
	return &Loader{
		overridePath: path,
		env:          os.Getenv,
		isTerminal: func() bool {
			return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
		},
	}
}

// Load resolves the configuration and reads the API key file. A missing or
// empty key leaves APIKey blank; the session reports it before any network
// call. The returned warnings are user-facing and non-fatal.
func (l *Loader) Load() (domain.SessionConfig, []string, error) {
	var warnings []string

	file, err := l.loadFile()
	if err != nil {
		return domain.SessionConfig{}, nil, err
	}

	cfg := domain.SessionConfig{
		APIKeyPath:      firstNonEmpty(l.env("API_KEY_PATH"), file.APIKeyPath, filepath.Join(userHomeDir(), ".cmdgen_apikey")),
		HistoryFile:     firstNonEmpty(l.env("HISTORY_FILE"), file.HistoryFile, filepath.Join(userHomeDir(), ".cmdgen_history")),
		Model:           firstNonEmpty(l.env("MODEL"), file.Model, domain.DefaultModel),
		APIURL:          firstNonEmpty(l.env("API_URL"), file.APIURL, domain.DefaultAPIURL),
		DeveloperPrompt: firstNonEmpty(l.env("DEVELOPER_PROMPT"), file.DeveloperPrompt, domain.DefaultDeveloperPrompt),
		CommandLogPath:  filepath.Join(userHomeDir(), ".cmdgen", "commands.db"),
		MaxHistory:      domain.DefaultMaxHistory,
		Sink:            domain.SinkStdout,
		Timeout:         domain.DefaultTimeout,
	}

	if file.MaxHistory != nil {
		cfg.MaxHistory = *file.MaxHistory
	}
	if raw := l.env("MAX_HISTORY"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return domain.SessionConfig{}, nil, fmt.Errorf("%w: invalid MAX_HISTORY %q", domain.ErrConfig, raw)
		}
		cfg.MaxHistory = n
	}
	if file.TimeoutSeconds > 0 {
		cfg.Timeout = time.Duration(file.TimeoutSeconds) * time.Second
	}

	// Quiet is forced for non-interactive output; decided once, here.
	cfg.Quiet = !l.isTerminal()

	key, keyWarnings := l.loadKey(cfg.APIKeyPath)
	cfg.APIKey = key
	warnings = append(warnings, keyWarnings...)

	return cfg, warnings, nil
}

func (l *Loader) loadFile() (fileSettings, error) {
	path := l.resolveFilePath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fileSettings{}, nil
		}
		return fileSettings{}, fmt.Errorf("%w: read %s: %v", domain.ErrConfig, path, err)
	}
	var settings fileSettings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return fileSettings{}, fmt.Errorf("%w: parse %s: %v", domain.ErrConfig, path, err)
	}
	return settings, nil
}

func (l *Loader) resolveFilePath() string {
	if l.overridePath != "" {
		return l.overridePath
	}
	if custom := l.env("CMDGEN_CONFIG"); custom != "" {
		return expandPath(custom)
	}
	return filepath.Join(userHomeDir(), ".cmdgen", "config.yaml")
}

// loadKey reads the credential file. The key is its entire trimmed contents.
func (l *Loader) loadKey(path string) (string, []string) {
	info, err := os.Stat(path)
	if err != nil {
		return "", nil
	}
	var warnings []string
	if mode := info.Mode().Perm(); mode != 0o600 {
		warnings = append(warnings,
			fmt.Sprintf("api key file has insecure permissions %o (should be 600). Run: chmod 600 %s", mode, path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("api key file unreadable: %v", err))
		return "", warnings
	}
	return strings.TrimSpace(string(data)), warnings
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(userHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}

func userHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}
