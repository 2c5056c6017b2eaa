// Package logger adapts log/slog to the ports.Logger interface.
package logger

import (
	"log/slog"
	"os"
)

// SlogLogger routes leveled messages to a slog text handler on stderr.
// Warn and Error always emit; Debug and Info only when verbose.
type SlogLogger struct {
	l *slog.Logger
}

// NewSlog creates a SlogLogger. Verbose lowers the level to Debug.
func NewSlog(verbose bool) *SlogLogger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return &SlogLogger{l: slog.New(handler)}
}

func (s *SlogLogger) Debug(msg string, fields map[string]interface{}) {
	s.l.Debug(msg, args(fields)...)
}

func (s *SlogLogger) Info(msg string, fields map[string]interface{}) {
	s.l.Info(msg, args(fields)...)
}

func (s *SlogLogger) Warn(msg string, fields map[string]interface{}) {
	s.l.Warn(msg, args(fields)...)
}

func (s *SlogLogger) Error(msg string, err error, fields map[string]interface{}) {
	a := args(fields)
	if err != nil {
		a = append(a, "error", err.Error())
	}
	s.l.Error(msg, a...)
}

func args(fields map[string]interface{}) []any {
	out := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		out = append(out, k, v)
	}
	return out
}
