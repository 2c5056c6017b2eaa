package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/stevef00/cmdgen/internal/domain"
	"github.com/stevef00/cmdgen/internal/ports"
)

// Client submits generation requests to the configured responses endpoint.
// One request per invocation, no retries; a failed call surfaces immediately.
type Client struct {
	apiURL     string
	apiKey     string
	httpClient *http.Client
}

// NewClient builds a client from the resolved session configuration.
func NewClient(cfg domain.SessionConfig) *Client {
	return &Client{
		apiURL:     cfg.APIURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{},
	}
}

// Generate implements ports.Generator.
func (c *Client) Generate(ctx context.Context, req domain.GenerationRequest) (domain.GenerationResult, error) {
	if req.Prompt == "" {
		return domain.GenerationResult{}, fmt.Errorf("%w: empty prompt", domain.ErrConfig)
	}
	if req.Model == "" {
		return domain.GenerationResult{}, fmt.Errorf("%w: no model configured", domain.ErrConfig)
	}
	if c.apiKey == "" {
		return domain.GenerationResult{}, fmt.Errorf("%w: api key missing", domain.ErrConfig)
	}

	payload := responsesRequest{
		Model: req.Model,
		Input: []inputMessage{
			{Role: "developer", Content: req.DeveloperPrompt},
			{Role: "user", Content: req.Prompt},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return domain.GenerationResult{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return domain.GenerationResult{}, fmt.Errorf("%w: %v", domain.ErrConfig, err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return domain.GenerationResult{}, fmt.Errorf("%w: %v", domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return domain.GenerationResult{}, fmt.Errorf("%w: credential rejected (%s)", domain.ErrAPI, resp.Status)
	case resp.StatusCode >= 400:
		return domain.GenerationResult{}, fmt.Errorf("%w: %s", domain.ErrAPI, resp.Status)
	}

	var decoded responsesResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.GenerationResult{}, fmt.Errorf("%w: malformed response body: %v", domain.ErrAPI, err)
	}

	command := ExtractCommand(decoded.OutputText())
	if command == "" {
		return domain.GenerationResult{}, fmt.Errorf("%w: response contained no command", domain.ErrAPI)
	}

	return domain.GenerationResult{
		Command: command,
		Usage:   decoded.TokenUsage(),
	}, nil
}

var _ ports.Generator = (*Client)(nil)
