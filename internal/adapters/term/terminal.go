package term

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	xterm "golang.org/x/term"
)

const (
	hideCursor   = "\x1b[?25l"
	showCursor   = "\x1b[?25h"
	enterAltMode = "\x1b[?1049h"
	leaveAltMode = "\x1b[?1049l"
	clearScreen  = "\x1b[H\x1b[2J"
	resetStyle   = "\x1b[0m"

	fallbackWidth  = 80
	fallbackHeight = 24
)

var ErrNotTerminal = errors.New("stdin is not a terminal")

// Terminal owns raw mode and the alternate screen for the session.
type Terminal struct {
	in       *os.File
	out      *os.File
	oldState *xterm.State
	mu       sync.Mutex
	closed   bool
}

func Open(in *os.File, out *os.File) (*Terminal, error) {
	if !xterm.IsTerminal(int(in.Fd())) {
		return nil, ErrNotTerminal
	}

	oldState, err := xterm.MakeRaw(int(in.Fd()))
	if err != nil {
		return nil, fmt.Errorf("enter raw mode: %w", err)
	}

	t := &Terminal{in: in, out: out, oldState: oldState}
	if _, err := io.WriteString(out, hideCursor+enterAltMode+clearScreen); err != nil {
		_ = xterm.Restore(int(in.Fd()), oldState)
		return nil, fmt.Errorf("enter alternate screen: %w", err)
	}

	return t, nil
}

// Keys returns a reader decoding keys from the terminal input.
func (t *Terminal) Keys() *KeyReader {
	return NewKeyReader(t.in)
}

// Size reports the output size, falling back to 80x24.
func (t *Terminal) Size() (int, int) {
	width, height, err := xterm.GetSize(int(t.out.Fd()))
	if err != nil || width <= 0 || height <= 0 {
		return fallbackWidth, fallbackHeight
	}
	return width, height
}

// Draw replaces the screen with frame. Raw mode needs explicit carriage returns.
func (t *Terminal) Draw(frame string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return errors.New("terminal closed")
	}

	if _, err := io.WriteString(t.out, clearScreen+strings.ReplaceAll(frame, "\n", "\r\n")); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// Close leaves the alternate screen and restores the original mode. Safe to call twice.
func (t *Terminal) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil
	}
	t.closed = true

	_, writeErr := io.WriteString(t.out, resetStyle+leaveAltMode+showCursor)
	if err := xterm.Restore(int(t.in.Fd()), t.oldState); err != nil {
		return errors.Join(writeErr, fmt.Errorf("restore terminal mode: %w", err))
	}

	return writeErr
}
