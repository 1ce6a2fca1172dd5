package prompt

import (
	"io"
	"time"
)

// OutputFormat controls how the table is serialized on quit.
type OutputFormat string

const (
	// OutputFormatJSON emits the table as a JSON array.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatPrettyText emits one "name (country)" line per row.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// DefaultSettleTimeout bounds how long the surface waits for a validation
// after a name was entered.
const DefaultSettleTimeout = 10 * time.Second

// Theme captures the message prefixes the surface prints.
type Theme struct {
	PromptPrefix string
	InfoPrefix   string
	ErrorPrefix  string
}

// Option configures the prompt surface.
type Option func(*Surface)

// WithPromptDriver overrides the prompt driver used by the surface.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Surface) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithOutputFormat selects the table serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(s *Surface) {
		if format != "" {
			s.outputFormat = format
		}
	}
}

// WithOutput sets where the table is written on quit. Defaults to stdout.
func WithOutput(out io.Writer) Option {
	return func(s *Surface) {
		if out != nil {
			s.out = out
		}
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *Surface) {
		s.theme = theme
	}
}

// WithSettleTimeout bounds the wait for a validation result.
func WithSettleTimeout(timeout time.Duration) Option {
	return func(s *Surface) {
		if timeout > 0 {
			s.settleTimeout = timeout
		}
	}
}
