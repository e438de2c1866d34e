package main

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/plus3/tilefall/config"
	"github.com/plus3/tilefall/game"
	"github.com/plus3/tilefall/loop"
	"github.com/spf13/cobra"
)

type soakOptions struct {
	*rootOptions
	Duration time.Duration
	FPS      int
	Restart  bool
}

func newSoakCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &soakOptions{rootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "soak",
		Short: "Run the autopilot headlessly and report timings",
		Long: `Run a session with the autopilot on a manual clock as fast as possible.

--duration is game time, not wall time. Frames are stepped at --fps, so
the run is reproducible for a given --seed.

Example:
  tilefall soak --duration 10m --seed 42
  tilefall soak --fps 30 --restart=false`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			report, err := runSoak(cfg, opts, opts.logger(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			return report.Generate(cmd.OutOrStdout())
		},
	}

	cmd.Flags().DurationVar(&opts.Duration, "duration", 5*time.Minute, "game time to simulate")
	cmd.Flags().IntVar(&opts.FPS, "fps", 60, "simulated frame rate")
	cmd.Flags().BoolVar(&opts.Restart, "restart", true, "start a new game after game over")
	return cmd
}

func runSoak(cfg config.Config, opts *soakOptions, logger *slog.Logger) (*Report, error) {
	if opts.FPS <= 0 {
		return nil, &exitError{code: exitCommandError, msg: fmt.Sprintf("invalid --fps %d", opts.FPS)}
	}
	if cfg.Seed == 0 {
		cfg.Seed = rand.Uint64()
	}

	report := &Report{
		RunID:    uuid.Must(uuid.NewV7()).String(),
		Seed:     cfg.Seed,
		Duration: opts.Duration,
		FPS:      opts.FPS,
		Board:    fmt.Sprintf("%dx%d", cfg.Board.Width, cfg.Board.Height),
	}

	clock := loop.NewManualClock(time.Unix(0, 0))
	pilot := game.NewAutopilot(nil, rand.New(rand.NewPCG(cfg.Seed, cfg.Seed>>1)))

	var s *game.Session
	gameOver := func(e game.Event, score int) {
		if e != game.GameOver {
			return
		}
		report.Games = append(report.Games, GameResult{
			Score:  score,
			Lines:  s.Tally().Lines,
			Pieces: s.Snapshot().Pieces,
		})
		if opts.Restart {
			s.Do(game.Restart)
		}
	}

	s, err := game.New(cfg,
		game.WithClock(clock),
		game.WithLogger(logger),
		game.WithObserver(gameOver),
		game.WithSystems(pilot),
	)
	if err != nil {
		return nil, &exitError{code: exitCommandError, msg: "creating session", err: err}
	}
	pilot.Session = s

	logger.Info("soak starting", "run", report.RunID, "seed", cfg.Seed, "duration", opts.Duration, "fps", opts.FPS)
	runtime.ReadMemStats(&report.MemStatsStart)
	if err := s.Start(); err != nil {
		return nil, err
	}

	interval := time.Second / time.Duration(opts.FPS)
	frames := int(opts.Duration / interval)
	start := time.Now()
	for range frames {
		s.Loop().Step(clock.Advance(interval))
		if s.Over() && !opts.Restart {
			break
		}
	}
	report.WallTime = time.Since(start)
	runtime.ReadMemStats(&report.MemStatsEnd)

	snap := s.Snapshot()
	if !snap.Over {
		report.Games = append(report.Games, GameResult{
			Score:      snap.Score,
			Lines:      snap.Lines,
			Pieces:     snap.Pieces,
			Unfinished: true,
		})
	}
	report.Frames = snap.Frames
	report.Plans = pilot.Plans()
	report.Systems = s.Scheduler().Stats().Systems
	report.finalize()

	logger.Info("soak finished", "run", report.RunID, "games", len(report.Games), "wall", report.WallTime)
	return report, nil
}
