package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stevef00/cmdgen/internal/domain"
)

func newTestLoader(t *testing.T, env map[string]string, terminal bool) *Loader {
	t.Helper()
	return &Loader{
		overridePath: filepath.Join(t.TempDir(), "absent-config.yaml"),
		env: func(key string) string {
			return env[key]
		},
		isTerminal: func() bool { return terminal },
	}
}

func TestLoadDefaults(t *testing.T) {
	// Point the key path into the sandbox so a real ~/.cmdgen_apikey cannot
	// leak warnings into the assertions.
	loader := newTestLoader(t, map[string]string{
		"API_KEY_PATH": filepath.Join(t.TempDir(), "absent-key"),
	}, true)

	cfg, warnings, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Model != domain.DefaultModel {
		t.Errorf("Model = %q, want %q", cfg.Model, domain.DefaultModel)
	}
	if cfg.APIURL != domain.DefaultAPIURL {
		t.Errorf("APIURL = %q, want %q", cfg.APIURL, domain.DefaultAPIURL)
	}
	if cfg.MaxHistory != domain.DefaultMaxHistory {
		t.Errorf("MaxHistory = %d, want %d", cfg.MaxHistory, domain.DefaultMaxHistory)
	}
	if cfg.Sink != domain.SinkStdout {
		t.Errorf("Sink = %q, want stdout", cfg.Sink)
	}
	if cfg.Quiet {
		t.Error("Quiet forced on despite interactive terminal")
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	loader := newTestLoader(t, map[string]string{
		"MODEL":       "gpt-4o-mini",
		"API_URL":     "https://example.test/v1/responses",
		"MAX_HISTORY": "5",
	}, true)

	cfg, _, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Model != "gpt-4o-mini" {
		t.Errorf("Model = %q, want env override", cfg.Model)
	}
	if cfg.APIURL != "https://example.test/v1/responses" {
		t.Errorf("APIURL = %q, want env override", cfg.APIURL)
	}
	if cfg.MaxHistory != 5 {
		t.Errorf("MaxHistory = %d, want 5", cfg.MaxHistory)
	}
}

func TestLoadInvalidMaxHistoryIsConfigError(t *testing.T) {
	loader := newTestLoader(t, map[string]string{"MAX_HISTORY": "lots"}, true)

	_, _, err := loader.Load()
	if !errors.Is(err, domain.ErrConfig) {
		t.Fatalf("Load() error = %v, want ErrConfig", err)
	}
}

func TestLoadQuietForcedWhenNotTerminal(t *testing.T) {
	loader := newTestLoader(t, nil, false)

	cfg, _, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.Quiet {
		t.Fatal("Quiet not forced for non-interactive stdout")
	}
}

func TestLoadConfigFileValuesAndEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "model: from-file\nmax_history: 7\ntimeout: 5\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	loader := newTestLoader(t, map[string]string{"MODEL": "from-env"}, true)
	loader.overridePath = path

	cfg, _, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Model != "from-env" {
		t.Errorf("Model = %q, env should win over file", cfg.Model)
	}
	if cfg.MaxHistory != 7 {
		t.Errorf("MaxHistory = %d, want file value 7", cfg.MaxHistory)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.Timeout)
	}
}

func TestLoadReadsAndTrimsKeyFile(t *testing.T) {
	dir := t.TempDir()
	keyPath := filepath.Join(dir, "apikey")
	if err := os.WriteFile(keyPath, []byte("  sk-test-123\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	loader := newTestLoader(t, map[string]string{"API_KEY_PATH": keyPath}, true)

	cfg, warnings, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.APIKey != "sk-test-123" {
		t.Errorf("APIKey = %q, want trimmed contents", cfg.APIKey)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none for 0600 key", warnings)
	}
}

func TestLoadWarnsOnInsecureKeyPermissions(t *testing.T) {
	dir := t.TempDir()
	keyPath := filepath.Join(dir, "apikey")
	if err := os.WriteFile(keyPath, []byte("sk-test\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	loader := newTestLoader(t, map[string]string{"API_KEY_PATH": keyPath}, true)

	cfg, warnings, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.APIKey != "sk-test" {
		t.Errorf("APIKey = %q, key should still load", cfg.APIKey)
	}
	if len(warnings) != 1 {
		t.Fatalf("warnings = %v, want one permissions warning", warnings)
	}
}

func TestLoadMissingKeyFileLeavesKeyEmpty(t *testing.T) {
	loader := newTestLoader(t, map[string]string{
		"API_KEY_PATH": filepath.Join(t.TempDir(), "absent"),
	}, true)

	cfg, _, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.APIKey != "" {
		t.Fatalf("APIKey = %q, want empty for missing file", cfg.APIKey)
	}
}
