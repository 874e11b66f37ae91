package picker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/go-ports/sebas/internal/models"
)

// ErrTerminalBusy is returned when another picker already owns the terminal.
var ErrTerminalBusy = errors.New("picker: terminal already in use")

// terminal guards the alternate screen and raw input mode. Exactly one
// picker may hold it at a time.
var terminal sync.Mutex

type options struct {
	input  io.Reader
	output io.Writer
}

// Option configures Run.
type Option func(*options)

// WithInput reads key events from r instead of stdin.
func WithInput(r io.Reader) Option { return func(o *options) { o.input = r } }

// WithOutput renders to w instead of stdout.
func WithOutput(w io.Writer) Option { return func(o *options) { o.output = w } }

// Run shows entries on the alternate screen and blocks until the user selects
// one or cancels. The terminal is restored before Run returns on every path,
// including render failures and panics inside the model. A failure is
// reported both as the returned error and as a Failed result.
func Run(ctx context.Context, entries []models.ResolvedCommand, opts ...Option) (Result, error) {
	if !terminal.TryLock() {
		return Result{Outcome: Failed, Err: ErrTerminalBusy}, ErrTerminalBusy
	}
	defer terminal.Unlock()

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	progOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if o.input != nil {
		progOpts = append(progOpts, tea.WithInput(o.input))
	}
	if o.output != nil {
		progOpts = append(progOpts, tea.WithOutput(o.output))
	}

	final, err := tea.NewProgram(NewModel(entries), progOpts...).Run()
	if err != nil {
		if ctx.Err() != nil {
			return Result{Outcome: Cancelled}, nil
		}
		err = fmt.Errorf("picker: %w", err)
		return Result{Outcome: Failed, Err: err}, err
	}

	m, ok := final.(Model)
	if !ok || !m.Done() {
		return Result{Outcome: Cancelled}, nil
	}
	return m.Result(), nil
}
