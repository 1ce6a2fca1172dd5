package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

// Option configures the terminal surface.
type Option func(*Surface)

// WithInput reads keystrokes from r instead of stdin.
func WithInput(r io.Reader) Option {
	return func(s *Surface) {
		if r != nil {
			s.input = r
		}
	}
}

// WithOutput renders to w instead of stdout. The final table is written there
// too once the program exits.
func WithOutput(w io.Writer) Option {
	return func(s *Surface) {
		if w != nil {
			s.output = w
		}
	}
}

// WithProgramOptions forwards extra options to the bubbletea program.
func WithProgramOptions(opts ...tea.ProgramOption) Option {
	return func(s *Surface) {
		s.programOptions = append(s.programOptions, opts...)
	}
}

// WithStyles overrides the default styles.
func WithStyles(styles Styles) Option {
	return func(s *Surface) {
		s.styles = styles
	}
}
