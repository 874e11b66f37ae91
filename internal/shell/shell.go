// Package shell hands a chosen command back to the user's interactive shell.
// Nothing in sebas ever executes a bookmarked command itself.
package shell

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// ErrUnsupported is returned when the terminal refuses input injection.
var ErrUnsupported = errors.New("terminal input injection unsupported")

// Injector receives the final command string of a pick.
type Injector interface {
	Inject(command string) error
}

// PrintInjector writes the command followed by a newline.
type PrintInjector struct {
	W io.Writer
}

// Inject implements Injector.
func (p PrintInjector) Inject(command string) error {
	if _, err := fmt.Fprintln(p.W, command); err != nil {
		return fmt.Errorf("shell.Inject: %w", err)
	}
	return nil
}

// TTYInjector pushes the command into the input queue of TTY so it appears
// at the prompt as if typed, without a trailing newline. When Fallback is set
// it is used for non-terminals and for kernels that disable injection.
type TTYInjector struct {
	TTY      *os.File
	Fallback Injector
}

// Inject implements Injector.
func (t TTYInjector) Inject(command string) error {
	err := t.push(command)
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrUnsupported) && t.Fallback != nil {
		slog.Debug("terminal injection unavailable, printing instead", "error", err)
		return t.Fallback.Inject(command)
	}
	return fmt.Errorf("shell.Inject: %w", err)
}

func (t TTYInjector) push(command string) error {
	if t.TTY == nil || !term.IsTerminal(int(t.TTY.Fd())) {
		return fmt.Errorf("%w: not a terminal", ErrUnsupported)
	}
	return pushInput(t.TTY.Fd(), command)
}

// New returns the injector for mode ("auto", "tiocsti" or "print"). Auto
// prefers terminal injection and falls back to printing on out; tiocsti
// reports injection failures instead of falling back.
func New(mode string, tty *os.File, out io.Writer) Injector {
	printer := PrintInjector{W: out}
	switch mode {
	case "print":
		return printer
	case "tiocsti":
		return TTYInjector{TTY: tty}
	default:
		return TTYInjector{TTY: tty, Fallback: printer}
	}
}
