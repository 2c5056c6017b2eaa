package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/term"
)

// errInterrupt is returned when the user presses Ctrl-C.
var errInterrupt = errors.New("interrupted")

// editor is a minimal raw-mode line editor with history recall. It reads
// from /dev/tty so it works even when stdout is redirected.
type editor struct {
	tty      *os.File
	oldState *term.State
	buf      []byte
	pos      int // cursor byte offset into buf

	history []string
	histIdx int    // len(history) means "live" input, not a recalled entry
	draft   []byte // what the user had typed before recall began
}

// newEditor opens /dev/tty and switches to raw mode.
func newEditor(history []string) (*editor, error) {
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open /dev/tty: %w", err)
	}
	old, err := term.MakeRaw(int(tty.Fd()))
	if err != nil {
		tty.Close()
		return nil, fmt.Errorf("raw mode: %w", err)
	}
	return &editor{tty: tty, oldState: old, history: history}, nil
}

// Close restores terminal state and closes the tty fd.
func (e *editor) Close() {
	term.Restore(int(e.tty.Fd()), e.oldState)
	e.tty.Close()
}

// ReadLine displays the cue and reads one line. Returns io.EOF when the user
// presses Ctrl-D on an empty buffer and errInterrupt on Ctrl-C.
func (e *editor) ReadLine(cue string) (string, error) {
	e.buf = e.buf[:0]
	e.pos = 0
	e.histIdx = len(e.history)
	e.draft = nil
	e.redraw(cue)

	var esc [8]byte

	for {
		var b [1]byte
		if _, err := e.tty.Read(b[:]); err != nil {
			return "", err
		}

		switch b[0] {
		case 3: // Ctrl-C
			fmt.Fprintf(e.tty, "\r\n")
			return "", errInterrupt

		case 4: // Ctrl-D
			if len(e.buf) == 0 {
				fmt.Fprintf(e.tty, "\r\n")
				return "", io.EOF
			}

		case 13, 10: // Enter
			fmt.Fprintf(e.tty, "\r\n")
			return string(e.buf), nil

		case 127, 8: // Backspace / Ctrl-H
			if e.pos > 0 {
				size := prevRuneSize(e.buf, e.pos)
				copy(e.buf[e.pos-size:], e.buf[e.pos:])
				e.buf = e.buf[:len(e.buf)-size]
				e.pos -= size
			}

		case 1: // Ctrl-A (Home)
			e.pos = 0

		case 5: // Ctrl-E (End)
			e.pos = len(e.buf)

		case 21: // Ctrl-U (clear line)
			e.buf = e.buf[:0]
			e.pos = 0

		case 27: // Escape sequence
			n, _ := e.tty.Read(esc[:1])
			if n == 0 || esc[0] != '[' {
				continue
			}
			n, _ = e.tty.Read(esc[1:2])
			if n == 0 {
				continue
			}
			switch esc[1] {
			case 'A': // Up: recall older entry
				e.recallPrevious()
			case 'B': // Down: recall newer entry or restore draft
				e.recallNext()
			case 'D': // Left
				if e.pos > 0 {
					e.pos -= prevRuneSize(e.buf, e.pos)
				}
			case 'C': // Right
				if e.pos < len(e.buf) {
					_, size := utf8.DecodeRune(e.buf[e.pos:])
					e.pos += size
				}
			case 'H': // Home
				e.pos = 0
			case 'F': // End
				e.pos = len(e.buf)
			case '3': // Delete key: \x1b[3~
				e.tty.Read(esc[2:3])
				if e.pos < len(e.buf) {
					_, size := utf8.DecodeRune(e.buf[e.pos:])
					copy(e.buf[e.pos:], e.buf[e.pos+size:])
					e.buf = e.buf[:len(e.buf)-size]
				}
			case '1': // Home: \x1b[1~
				e.tty.Read(esc[2:3])
				e.pos = 0
			case '4': // End: \x1b[4~
				e.tty.Read(esc[2:3])
				e.pos = len(e.buf)
			}

		default: // Printable character
			if b[0] >= 32 {
				ch := []byte{b[0]}
				if b[0] >= 0xC0 {
					extra := utf8RuneLen(b[0]) - 1
					tmp := make([]byte, extra)
					e.tty.Read(tmp)
					ch = append(ch, tmp...)
				}
				e.buf = append(e.buf, make([]byte, len(ch))...)
				copy(e.buf[e.pos+len(ch):], e.buf[e.pos:len(e.buf)-len(ch)])
				copy(e.buf[e.pos:], ch)
				e.pos += len(ch)
			}
		}

		e.redraw(cue)
	}
}

// recallPrevious moves the cursor toward older history entries, saving the
// live buffer as a draft on first entry into recall.
func (e *editor) recallPrevious() {
	if e.histIdx == 0 {
		return
	}
	if e.histIdx == len(e.history) {
		e.draft = append([]byte(nil), e.buf...)
	}
	e.histIdx--
	e.setBuffer(e.history[e.histIdx])
}

// recallNext moves toward newer entries; moving past the newest restores the
// saved draft.
func (e *editor) recallNext() {
	if e.histIdx >= len(e.history) {
		return
	}
	e.histIdx++
	if e.histIdx == len(e.history) {
		e.buf = append(e.buf[:0], e.draft...)
		e.pos = len(e.buf)
		return
	}
	e.setBuffer(e.history[e.histIdx])
}

func (e *editor) setBuffer(text string) {
	e.buf = append(e.buf[:0], text...)
	e.pos = len(e.buf)
}

// redraw clears the current line and redraws cue + buffer with cursor.
func (e *editor) redraw(cue string) {
	fmt.Fprintf(e.tty, "\r\x1b[K%s%s", cue, string(e.buf))
	tailLen := utf8.RuneCount(e.buf[e.pos:])
	if tailLen > 0 {
		fmt.Fprintf(e.tty, "\x1b[%dD", tailLen)
	}
}

func prevRuneSize(buf []byte, pos int) int {
	if pos <= 0 {
		return 0
	}
	i := pos - 1
	for i > 0 && !utf8.RuneStart(buf[i]) {
		i--
	}
	_, size := utf8.DecodeRune(buf[i:pos])
	return size
}

func utf8RuneLen(lead byte) int {
	switch {
	case lead < 0xC0:
		return 1
	case lead < 0xE0:
		return 2
	case lead < 0xF0:
		return 3
	default:
		return 4
	}
}
