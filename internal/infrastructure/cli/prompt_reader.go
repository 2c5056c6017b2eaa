package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/stevef00/cmdgen/internal/domain"
	"github.com/stevef00/cmdgen/internal/ports"
)

// PromptReader implements ports.LineSource. It prefers the raw-mode editor
// (with history recall) and falls back to plain buffered reads from stdin
// when no tty is available.
type PromptReader struct {
	in         io.Reader
	cueOut     io.Writer
	openEditor func(history []string) (lineEditor, error)
}

type lineEditor interface {
	ReadLine(cue string) (string, error)
	Close()
}

// NewPromptReader builds a reader over stdin and /dev/tty.
func NewPromptReader() *PromptReader {
	return &PromptReader{
		in:     os.Stdin,
		cueOut: os.Stderr,
		openEditor: func(history []string) (lineEditor, error) {
			return newEditor(history)
		},
	}
}

// ReadPrompt collects one non-empty trimmed prompt, re-prompting on empty
// input. It returns domain.ErrNoInput when input ends with nothing typed.
func (p *PromptReader) ReadPrompt(cue string, history []string) (string, error) {
	ed, err := p.openEditor(history)
	if err != nil {
		return p.readPlain(cue)
	}
	defer ed.Close()

	for {
		text, err := ed.ReadLine(cue)
		if errors.Is(err, io.EOF) || errors.Is(err, errInterrupt) {
			return "", domain.ErrNoInput
		}
		if err != nil {
			return "", err
		}
		if text = strings.TrimSpace(text); text != "" {
			return text, nil
		}
	}
}

// readPlain reads lines from stdin without recall.
func (p *PromptReader) readPlain(cue string) (string, error) {
	scanner := bufio.NewScanner(p.in)
	for {
		fmt.Fprint(p.cueOut, cue)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", err
			}
			return "", domain.ErrNoInput
		}
		if text := strings.TrimSpace(scanner.Text()); text != "" {
			return text, nil
		}
	}
}

var _ ports.LineSource = (*PromptReader)(nil)
