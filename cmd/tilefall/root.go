package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/plus3/tilefall/config"
	"github.com/spf13/cobra"
)

// rootOptions holds flags shared by every command.
type rootOptions struct {
	Verbose bool
	Config  string
	Seed    uint64
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "tilefall",
		Short: "A falling-block puzzle game",
		Long: `tilefall drops pieces onto a board; fill rows to clear them.

Settings are read from a YAML file given with --config. Unset keys keep
their defaults, unknown keys are rejected.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVarP(&opts.Config, "config", "c", "", "path to a YAML config file")
	cmd.PersistentFlags().Uint64Var(&opts.Seed, "seed", 0, "piece sequence seed (0 picks one)")

	cmd.AddCommand(newPlayCommand(opts))
	cmd.AddCommand(newTermCommand(opts))
	cmd.AddCommand(newSoakCommand(opts))
	cmd.AddCommand(newConfigCommand(opts))

	return cmd
}

// loadConfig reads --config, or the defaults, and applies --seed.
func (o *rootOptions) loadConfig() (config.Config, error) {
	cfg := config.Default()
	if o.Config != "" {
		var err error
		cfg, err = config.Load(o.Config)
		if err != nil {
			return cfg, &exitError{code: exitCommandError, msg: "loading config", err: err}
		}
	}
	if o.Seed != 0 {
		cfg.Seed = o.Seed
	}
	return cfg, nil
}

func (o *rootOptions) logger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if o.Verbose {
		level = slog.LevelDebug
	}
	if w == nil {
		w = os.Stderr
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func newConfigCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			data, err := cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
