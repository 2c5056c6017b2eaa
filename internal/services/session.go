// Package services contains the session controller that drives one
// invocation end-to-end.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/stevef00/cmdgen/internal/domain"
	"github.com/stevef00/cmdgen/internal/ports"
)

// promptCue is shown before interactive input.
const promptCue = "prompt> "

// Session orchestrates the pipeline: acquire a prompt, record it, generate
// a command, deliver it. History and command-log failures are warnings;
// everything else stops the pipeline at the boundary where it is detected.
type Session struct {
	Config     domain.SessionConfig
	History    ports.HistoryStore
	Lines      ports.LineSource
	Generator  ports.Generator
	Router     ports.CommandRouter
	Presenter  ports.Presenter
	CommandLog ports.CommandLog
	Logger     ports.Logger
}

// Run processes a single request. A clean no-input exit returns nil.
func (s *Session) Run(req domain.SessionRequest) error {
	if s.History == nil || s.Generator == nil || s.Router == nil || s.Logger == nil {
		return errors.New("services.Session dependencies not satisfied")
	}

	ctx := req.Context
	if ctx == nil {
		ctx = context.Background()
	}

	// The credential is validated before the prompt is acquired, so a
	// misconfigured session leaves the history file untouched.
	if s.Config.APIKey == "" {
		return fmt.Errorf("%w: api key file missing or empty at %s", domain.ErrConfig, s.Config.APIKeyPath)
	}

	prompt, err := s.acquirePrompt(req)
	if err != nil {
		if errors.Is(err, domain.ErrNoInput) {
			s.Logger.Debug("no input, exiting", nil)
			return nil
		}
		return err
	}

	if err := s.History.Append(prompt); err != nil {
		s.Logger.Warn("history append failed", map[string]interface{}{"error": err.Error()})
	}

	result, err := s.generate(ctx, prompt)
	if err != nil {
		return err
	}

	if s.CommandLog != nil {
		rec := domain.CommandRecord{
			Timestamp:        time.Now(),
			Prompt:           prompt,
			Command:          result.Command,
			Model:            s.Config.Model,
			PromptTokens:     result.Usage.PromptTokens,
			CompletionTokens: result.Usage.CompletionTokens,
			TotalTokens:      result.Usage.TotalTokens,
		}
		if err := s.CommandLog.Save(rec); err != nil {
			s.Logger.Warn("command log save failed", map[string]interface{}{"error": err.Error()})
		}
	}

	if err := s.Router.Deliver(result.Command, s.Config.Sink); err != nil {
		return err
	}
	if s.Presenter != nil {
		s.Presenter.ShowCommand(result.Command)
		if s.Config.ShowStats {
			s.Presenter.ShowStats(result.Usage)
		}
	}
	return nil
}

func (s *Session) acquirePrompt(req domain.SessionRequest) (string, error) {
	if req.Direct {
		prompt := strings.TrimSpace(req.Prompt)
		if prompt == "" {
			return "", fmt.Errorf("%w: empty prompt", domain.ErrConfig)
		}
		return prompt, nil
	}

	if s.Lines == nil {
		return "", errors.New("services.Session has no line source")
	}
	history, err := s.History.Load()
	if err != nil {
		s.Logger.Warn("history load failed", map[string]interface{}{"error": err.Error()})
	}
	return s.Lines.ReadPrompt(promptCue, history)
}

func (s *Session) generate(ctx context.Context, prompt string) (domain.GenerationResult, error) {
	if s.Config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Config.Timeout)
		defer cancel()
	}

	stop := func() {}
	if s.Presenter != nil {
		stop = s.Presenter.Progress("waiting for response...")
	}
	defer stop()

	return s.Generator.Generate(ctx, domain.GenerationRequest{
		Prompt:          prompt,
		DeveloperPrompt: s.Config.DeveloperPrompt,
		Model:           s.Config.Model,
	})
}
