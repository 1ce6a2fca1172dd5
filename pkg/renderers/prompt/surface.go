// Package prompt renders the entry form as a question-and-answer menu driven
// by survey prompts.
package prompt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/goliatone/go-entryform/pkg/controller"
	"github.com/goliatone/go-entryform/pkg/form"
	"github.com/goliatone/go-entryform/pkg/render"
)

// Name is the registry key of the prompt surface.
const Name = "prompt"

const (
	actionName    = "Enter name"
	actionCountry = "Choose country"
	actionAdd     = "Add entry"
	actionClear   = "Clear"
	actionTable   = "Show table"
	actionQuit    = "Quit"
)

var menu = []string{actionName, actionCountry, actionAdd, actionClear, actionTable, actionQuit}

// Surface is the prompt-based presentation of the form.
type Surface struct {
	driver        PromptDriver
	outputFormat  OutputFormat
	out           io.Writer
	theme         Theme
	settleTimeout time.Duration
}

var _ render.Surface = (*Surface)(nil)

// New constructs the surface. Without a driver it talks to the terminal
// through survey.
func New(options ...Option) *Surface {
	s := &Surface{
		outputFormat:  OutputFormatPrettyText,
		out:           os.Stdout,
		settleTimeout: DefaultSettleTimeout,
		theme: Theme{
			PromptPrefix: "?",
			InfoPrefix:   "i",
			ErrorPrefix:  "!",
		},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.driver == nil {
		s.driver = newSurveyDriver(s.out)
	}
	return s
}

func (s *Surface) Name() string { return Name }

// Run drives the menu until the user quits, then writes the table.
func (s *Surface) Run(ctx context.Context, newController render.Factory) error {
	ctrl, err := newController(ctx)
	if err != nil {
		return fmt.Errorf("prompt: build controller: %w", err)
	}
	if ctrl == nil {
		return ErrNoController
	}
	defer ctrl.Close()

	for {
		state := ctrl.State()
		choice, err := s.driver.Select(ctx, SelectConfig{
			Message:  s.summary(state),
			Options:  menu,
			PageSize: len(menu),
		})
		if err != nil {
			return err
		}
		if choice < 0 || choice >= len(menu) {
			continue
		}

		switch menu[choice] {
		case actionName:
			err = s.enterName(ctx, ctrl)
		case actionCountry:
			err = s.chooseCountry(ctx, ctrl)
		case actionAdd:
			err = s.add(ctx, ctrl)
		case actionClear:
			ctrl.OnClear()
		case actionTable:
			err = s.driver.Info(ctx, formatPretty(ctrl.State().Table))
		case actionQuit:
			return s.writeTable(ctrl.State().Table)
		}
		if err != nil {
			return err
		}
	}
}

func (s *Surface) enterName(ctx context.Context, ctrl *controller.Controller) error {
	value, err := s.driver.Input(ctx, InputConfig{
		Message: "Name",
		Default: ctrl.State().Name,
	})
	if err != nil {
		return err
	}
	ctrl.OnNameChange(value)

	settleCtx, cancel := context.WithTimeout(ctx, s.settleTimeout)
	defer cancel()
	if err := ctrl.Settle(settleCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	state := ctrl.State()
	switch {
	case state.Error != "":
		return s.driver.Info(ctx, s.theme.ErrorPrefix+" "+state.Error)
	case state.Name != "":
		return s.driver.Info(ctx, s.theme.InfoPrefix+" "+fmt.Sprintf("%q is available", state.Name))
	}
	return nil
}

func (s *Surface) chooseCountry(ctx context.Context, ctrl *controller.Controller) error {
	state := ctrl.State()
	if len(state.Options) == 0 {
		return s.driver.Info(ctx, s.theme.ErrorPrefix+" no countries available")
	}
	idx, err := s.driver.Select(ctx, SelectConfig{
		Message:      "Country",
		Options:      state.Options,
		DefaultIndex: indexOf(state.Options, state.Country),
	})
	if err != nil {
		return err
	}
	if idx >= 0 && idx < len(state.Options) {
		ctrl.OnCountryChange(state.Options[idx])
	}
	return nil
}

func (s *Surface) add(ctx context.Context, ctrl *controller.Controller) error {
	before := ctrl.State()
	if ctrl.OnAdd() {
		return s.driver.Info(ctx, s.theme.InfoPrefix+" "+fmt.Sprintf("added %s (%s)", before.Name, before.Country))
	}
	if msg := ctrl.State().Error; msg != "" {
		return s.driver.Info(ctx, s.theme.ErrorPrefix+" "+msg)
	}
	return s.driver.Info(ctx, s.theme.ErrorPrefix+" enter a name first")
}

func (s *Surface) summary(state form.State) string {
	var b strings.Builder
	b.WriteString(s.theme.PromptPrefix)
	fmt.Fprintf(&b, " name=%q country=%q rows=%d", state.Name, state.Country, len(state.Table))
	if state.Error != "" {
		fmt.Fprintf(&b, " [%s]", state.Error)
	}
	return b.String()
}

func (s *Surface) writeTable(table form.Table) error {
	switch s.outputFormat {
	case OutputFormatJSON:
		if table == nil {
			table = form.Table{}
		}
		enc := json.NewEncoder(s.out)
		enc.SetIndent("", "  ")
		return enc.Encode(table)
	default:
		_, err := fmt.Fprintln(s.out, formatPretty(table))
		return err
	}
}

func formatPretty(table form.Table) string {
	if len(table) == 0 {
		return "(no entries)"
	}
	lines := make([]string, 0, len(table))
	for i, entry := range table {
		lines = append(lines, fmt.Sprintf("%d. %s (%s)", i+1, entry.Name, entry.Country))
	}
	return strings.Join(lines, "\n")
}
