package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-entryform/pkg/render"
	"github.com/goliatone/go-entryform/pkg/renderers/prompt"
	"github.com/goliatone/go-entryform/pkg/renderers/tui"
	"github.com/goliatone/go-entryform/pkg/renderers/web"
)

func newRunCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "run [prompt|tui|web]",
		Short: "Run the entry form on one surface",
		Long: `Runs the entry form on the chosen surface (default: prompt).

  prompt  question-and-answer menu; prints the table on quit
  tui     full-screen terminal form; every keystroke is validated
  web     HTML form served on http.addr`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{prompt.Name, tui.Name, web.Name},
		RunE: func(cmd *cobra.Command, args []string) error {
			name := prompt.Name
			if len(args) == 1 {
				name = args[0]
			}

			surfaces := a.surfaces(prompt.OutputFormat(output))
			surface, err := surfaces.Get(name)
			if err != nil {
				return fmt.Errorf("%w (available: %v)", err, surfaces.List())
			}

			factory, err := a.factory(nil)
			if err != nil {
				return err
			}

			err = surface.Run(cmd.Context(), factory)
			if errors.Is(err, prompt.ErrAborted) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", string(prompt.OutputFormatPrettyText), "table format printed by the prompt surface (pretty, json)")
	return cmd
}

func (a *app) surfaces(format prompt.OutputFormat) *render.Registry {
	registry := render.NewRegistry()
	registry.MustRegister(prompt.New(
		prompt.WithOutput(a.out),
		prompt.WithOutputFormat(format),
		prompt.WithSettleTimeout(a.cfg.ValidationTimeout+a.cfg.Debounce),
	))
	registry.MustRegister(tui.New(tui.WithOutput(a.out)))
	registry.MustRegister(web.New(a.webOptions()...))
	return registry
}
