package ai

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stevef00/cmdgen/internal/domain"
)

func testConfig(url string) domain.SessionConfig {
	return domain.SessionConfig{
		APIKey:          "testkey",
		APIURL:          url,
		Model:           "gpt-4o",
		DeveloperPrompt: domain.DefaultDeveloperPrompt,
	}
}

func testRequest() domain.GenerationRequest {
	return domain.GenerationRequest{
		Prompt:          "list all processes",
		DeveloperPrompt: domain.DefaultDeveloperPrompt,
		Model:           "gpt-4o",
	}
}

func TestGenerateParsesCommandAndUsage(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{
			"output": [{"content": [{"text": "ps aux"}]}],
			"usage": {"prompt_tokens": 120, "completion_tokens": 30, "total_tokens": 150}
		}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	result, err := client.Generate(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if result.Command != "ps aux" {
		t.Fatalf("Command = %q, want %q", result.Command, "ps aux")
	}
	if result.Usage.TotalTokens != 150 {
		t.Fatalf("TotalTokens = %d, want 150", result.Usage.TotalTokens)
	}
	if gotAuth != "Bearer testkey" {
		t.Fatalf("Authorization header = %q, want bearer key", gotAuth)
	}
}

func TestGenerateDerivesMissingTotal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"output": [{"content": [{"text": "df -h"}]}],
			"usage": {"prompt_tokens": 120, "completion_tokens": 30}
		}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	result, err := client.Generate(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if result.Usage.TotalTokens != 150 {
		t.Fatalf("TotalTokens = %d, want derived 150", result.Usage.TotalTokens)
	}
}

func TestGenerateDefaultsUsageToZero(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"output": [{"content": [{"text": "uptime"}]}]}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	result, err := client.Generate(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if result.Usage != (domain.TokenUsage{}) {
		t.Fatalf("Usage = %+v, want all zeros", result.Usage)
	}
}

func TestGenerateServerErrorIsAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	_, err := client.Generate(context.Background(), testRequest())
	if !errors.Is(err, domain.ErrAPI) {
		t.Fatalf("Generate() error = %v, want ErrAPI", err)
	}
}

func TestGenerateRejectedCredentialIsAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	_, err := client.Generate(context.Background(), testRequest())
	if !errors.Is(err, domain.ErrAPI) {
		t.Fatalf("Generate() error = %v, want ErrAPI", err)
	}
}

func TestGenerateMalformedBodyIsAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"output": [`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	_, err := client.Generate(context.Background(), testRequest())
	if !errors.Is(err, domain.ErrAPI) {
		t.Fatalf("Generate() error = %v, want ErrAPI", err)
	}
}

func TestGenerateEmptyOutputIsAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"output": []}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	_, err := client.Generate(context.Background(), testRequest())
	if !errors.Is(err, domain.ErrAPI) {
		t.Fatalf("Generate() error = %v, want ErrAPI", err)
	}
}

func TestGenerateConnectionFailureIsTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing is listening anymore

	client := NewClient(testConfig(server.URL))
	_, err := client.Generate(context.Background(), testRequest())
	if !errors.Is(err, domain.ErrTransport) {
		t.Fatalf("Generate() error = %v, want ErrTransport", err)
	}
}

func TestGenerateMissingKeyIsConfigError(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:0")
	cfg.APIKey = ""

	client := NewClient(cfg)
	_, err := client.Generate(context.Background(), testRequest())
	if !errors.Is(err, domain.ErrConfig) {
		t.Fatalf("Generate() error = %v, want ErrConfig", err)
	}
}
