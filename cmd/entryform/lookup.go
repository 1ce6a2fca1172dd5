package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errNameTaken = errors.New("name is taken")

func newLocationsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "locations",
		Short: "Print the country options offered by the location source",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			source, _, err := a.collaborators(nil)
			if err != nil {
				return err
			}
			options, err := source.Locations(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetch locations: %w", err)
			}
			for _, option := range options {
				fmt.Fprintln(a.out, option)
			}
			return nil
		},
	}
}

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check NAME",
		Short: "Ask the name validator once whether NAME is available",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, validator, err := a.collaborators(nil)
			if err != nil {
				return err
			}
			valid, err := validator.IsNameValid(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("validate name: %w", err)
			}
			if !valid {
				fmt.Fprintf(a.out, "%s: taken\n", args[0])
				return errNameTaken
			}
			fmt.Fprintf(a.out, "%s: available\n", args[0])
			return nil
		},
	}
}
