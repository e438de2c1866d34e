package main

import (
	"github.com/plus3/tilefall/debugui/ebiten"
	"github.com/plus3/tilefall/host/window"
	"github.com/spf13/cobra"
)

type playOptions struct {
	*rootOptions
	DebugUI bool
}

func newPlayCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &playOptions{rootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play in a window",
		Long: `Play in a desktop window.

Keys: arrows or WASD move and rotate, space drops, P pauses, R restarts,
Q or Escape quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(opts)
		},
	}

	cmd.Flags().BoolVar(&opts.DebugUI, "debug-ui", false, "show performance and session panels")
	return cmd
}

func runPlay(opts *playOptions) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	logger := opts.logger(nil)

	windowOpts := []window.Option{window.WithLogger(logger)}
	if opts.DebugUI {
		width, height := cfg.WindowSize()
		windowOpts = append(windowOpts, window.WithDebugUI(ebiten.NewImguiBackend("tilefall", width, height)))
	}

	g, err := window.New(cfg, windowOpts...)
	if err != nil {
		return &exitError{code: exitCommandError, msg: "creating game", err: err}
	}
	return g.Run()
}
