package main

import (
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-entryform/internal/config"
	"github.com/goliatone/go-entryform/internal/logging"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	configFile string
	envFile    string
	logLevel   string
	logFormat  string

	cfg    *config.Config
	logger *zap.Logger
	out    io.Writer
	errOut io.Writer
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   "entryform",
		Short: "Entry form with debounced name validation",
		Long: `entryform collects (name, country) pairs into an in-memory table.

Names are checked against a name validator after typing pauses; countries come
from a location source. Both collaborators run in-process unless api.url points
at a running "entryform mockapi".`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default: ./entryform.{yaml,json,toml})")
	flags.StringVar(&a.envFile, "env-file", "", "dotenv file loaded before the environment (default: .env)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	flags.StringVar(&a.logFormat, "log-format", "", "log format override (json, console)")

	root.AddCommand(
		newRunCmd(a),
		newServeCmd(a),
		newMockAPICmd(a),
		newLocationsCmd(a),
		newCheckCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(config.Options{
		ConfigFile: a.configFile,
		EnvFile:    a.envFile,
	})
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Log.Format = a.logFormat
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, "stderr")
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger.With(zap.String("command", cmd.Name()))
	return nil
}
