package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stevef00/cmdgen/internal/domain"
)

func TestShowStatsReportsAllCounters(t *testing.T) {
	var out bytes.Buffer
	r := &Renderer{out: &out}

	r.ShowStats(domain.TokenUsage{PromptTokens: 120, CompletionTokens: 30, TotalTokens: 150})

	got := out.String()
	for _, want := range []string{"120", "30", "150"} {
		if !strings.Contains(got, want) {
			t.Errorf("ShowStats output %q missing %q", got, want)
		}
	}
}

func TestQuietSuppressesAllDecoration(t *testing.T) {
	var out bytes.Buffer
	r := &Renderer{out: &out, quiet: true}

	r.ShowCommand("ps aux")
	r.ShowStats(domain.TokenUsage{PromptTokens: 1, CompletionTokens: 2, TotalTokens: 3})
	stop := r.Progress("waiting")
	stop()

	if out.Len() != 0 {
		t.Fatalf("quiet renderer wrote %q, want nothing", out.String())
	}
}

func TestShowCommandIncludesCommand(t *testing.T) {
	var out bytes.Buffer
	r := &Renderer{out: &out}

	r.ShowCommand("du -sh /var")

	if !strings.Contains(out.String(), "du -sh /var") {
		t.Fatalf("ShowCommand output %q missing command", out.String())
	}
}
