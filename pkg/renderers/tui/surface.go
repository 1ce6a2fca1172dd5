// Package tui renders the entry form as a full-screen terminal program built
// on bubbletea. Every keystroke is forwarded to the controller.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/goliatone/go-entryform/pkg/form"
	"github.com/goliatone/go-entryform/pkg/render"
)

// Name is the registry key of the terminal surface.
const Name = "tui"

// ErrNoController is returned by Run when the factory yields nothing.
var ErrNoController = errors.New("tui: controller factory returned nil")

// Surface is the bubbletea presentation of the form.
type Surface struct {
	input          io.Reader
	output         io.Writer
	styles         Styles
	programOptions []tea.ProgramOption
}

var _ render.Surface = (*Surface)(nil)

// New constructs the surface.
func New(options ...Option) *Surface {
	s := &Surface{
		input:  os.Stdin,
		output: os.Stdout,
		styles: DefaultStyles(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

func (s *Surface) Name() string { return Name }

// Run starts the program and blocks until the user quits or ctx ends.
func (s *Surface) Run(ctx context.Context, newController render.Factory) error {
	ctrl, err := newController(ctx)
	if err != nil {
		return fmt.Errorf("tui: build controller: %w", err)
	}
	if ctrl == nil {
		return ErrNoController
	}
	defer ctrl.Close()

	opts := append([]tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithInput(s.input),
		tea.WithOutput(s.output),
	}, s.programOptions...)
	program := tea.NewProgram(newModel(ctrl, s.styles), opts...)

	// Listeners fire inside Update too, where a blocking Send would deadlock
	// the event loop.
	unsubscribe := ctrl.Subscribe(func(state form.State) {
		go program.Send(stateMsg{state: state})
	})
	defer unsubscribe()

	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("tui: run program: %w", err)
	}

	for i, entry := range ctrl.State().Table {
		if _, err := fmt.Fprintf(s.output, "%d. %s (%s)\n", i+1, entry.Name, entry.Country); err != nil {
			return err
		}
	}
	return nil
}
