package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/tilefall/host/term"
	"github.com/spf13/cobra"
)

type termOptions struct {
	*rootOptions
	Sound   bool
	LogFile string
}

func newTermCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &termOptions{rootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "term",
		Short: "Play in the terminal",
		Long: `Play in the terminal.

Keys: arrows, WASD or hjkl move and rotate, space drops, p pauses, r
restarts, q or Escape quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTerm(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Sound, "sound", false, "play tones for locks and clears (overrides the config)")
	cmd.Flags().StringVar(&opts.LogFile, "log-file", "", "write logs here instead of discarding them")
	return cmd
}

func runTerm(ctx context.Context, opts *termOptions) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	// The screen owns the terminal while playing.
	var logger *slog.Logger
	if opts.LogFile != "" {
		f, err := os.Create(opts.LogFile)
		if err != nil {
			return &exitError{code: exitCommandError, msg: "opening log file", err: err}
		}
		defer f.Close()
		logger = opts.logger(f)
	} else {
		logger = opts.logger(io.Discard)
	}
	hostOpts := []term.Option{term.WithLogger(logger)}

	if opts.Sound || cfg.Display.Sound {
		sound, err := term.NewSound()
		if err != nil {
			logger.Warn("sound disabled", "error", err)
		} else {
			hostOpts = append(hostOpts, term.WithSound(sound))
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return &exitError{code: exitCommandError, msg: "opening terminal", err: err}
	}
	if err := screen.Init(); err != nil {
		return &exitError{code: exitCommandError, msg: "opening terminal", err: err}
	}

	h, err := term.New(cfg, screen, hostOpts)
	if err != nil {
		screen.Fini()
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := h.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
