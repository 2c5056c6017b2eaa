// Package doctor runs environment diagnostics for cmdgen.
package doctor

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/stevef00/cmdgen/internal/domain"
)

// Service checks the pieces a session depends on: the credential file, the
// history location, the configured endpoint, and the optional sink tools.
type Service struct {
	Config domain.SessionConfig

	// LookPath is injectable for tests; defaults to exec.LookPath.
	LookPath func(string) (string, error)
}

// Run executes checks and returns a report.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	lookPath := s.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	var checks []domain.HealthCheck
	checks = append(checks, s.checkKeyFile())
	checks = append(checks, s.checkHistory())
	checks = append(checks, s.checkEndpoint())
	checks = append(checks, checkTool(lookPath, "tmux"))
	checks = append(checks, checkTool(lookPath, "xsel"))
	return domain.HealthReport{Checks: checks}, nil
}

func (s *Service) checkKeyFile() domain.HealthCheck {
	info, err := os.Stat(s.Config.APIKeyPath)
	if err != nil {
		return fail("API key file", fmt.Sprintf("missing at %s", s.Config.APIKeyPath))
	}
	if info.Size() == 0 {
		return fail("API key file", "file is empty")
	}
	if mode := info.Mode().Perm(); mode != 0o600 {
		return warn("API key file", fmt.Sprintf("insecure permissions %o, run: chmod 600 %s", mode, s.Config.APIKeyPath))
	}
	return ok("API key file", s.Config.APIKeyPath)
}

func (s *Service) checkHistory() domain.HealthCheck {
	dir := filepath.Dir(s.Config.HistoryFile)
	probe, err := os.CreateTemp(dir, ".cmdgen-doctor-*")
	if err != nil {
		return warn("History file", fmt.Sprintf("directory %s not writable: %v", dir, err))
	}
	probe.Close()
	os.Remove(probe.Name())
	return ok("History file", s.Config.HistoryFile)
}

func (s *Service) checkEndpoint() domain.HealthCheck {
	u, err := url.Parse(s.Config.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fail("API endpoint", fmt.Sprintf("invalid URL %q", s.Config.APIURL))
	}
	if s.Config.Model == "" {
		return fail("API endpoint", "no model configured")
	}
	return ok("API endpoint", fmt.Sprintf("%s (model %s)", s.Config.APIURL, s.Config.Model))
}

func checkTool(lookPath func(string) (string, error), name string) domain.HealthCheck {
	if path, err := lookPath(name); err == nil {
		return ok(name, path)
	}
	return warn(name, "not found in PATH (sink will fall back to stdout)")
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
