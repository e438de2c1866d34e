package term

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/tilefall/config"
	"github.com/plus3/tilefall/game"
	"github.com/plus3/tilefall/loop"
	"github.com/plus3/tilefall/tile"
)

// previewExtent is the size of the preview box in cells.
const previewExtent = 4

// Host runs a session against a tcell screen.
type Host struct {
	cfg     config.Config
	screen  tcell.Screen
	session *game.Session
	sound   *Sound
	logger  *slog.Logger
	quit    atomic.Bool
}

// Option configures a Host.
type Option func(*Host)

func WithLogger(logger *slog.Logger) Option {
	return func(h *Host) { h.logger = logger }
}

// WithSound plays event tones through sound.
func WithSound(sound *Sound) Option {
	return func(h *Host) { h.sound = sound }
}

// New builds a host on an initialised screen. extra options are passed to
// game.New.
func New(cfg config.Config, screen tcell.Screen, opts []Option, extra ...game.Option) (*Host, error) {
	h := &Host{cfg: cfg, screen: screen, logger: slog.Default()}
	for _, opt := range opts {
		opt(h)
	}

	out := NewScreen(screen, cfg.Board.Width, cfg.Board.Height)
	sessionOpts := []game.Option{
		game.WithLogger(h.logger),
		game.WithRenderer(out),
		game.WithViewport(loop.ViewportFunc(h.viewport), out),
	}
	if h.sound != nil {
		sessionOpts = append(sessionOpts, game.WithObserver(h.sound.Observe))
	}
	sessionOpts = append(sessionOpts, extra...)

	s, err := game.New(cfg, sessionOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}
	out.Preview = func(r tile.Renderer) { s.RenderPreview(r, previewExtent) }
	h.session = s
	return h, nil
}

func (h *Host) Session() *game.Session { return h.session }

func (h *Host) viewport() loop.Viewport {
	width, height := h.screen.Size()
	return loop.Viewport{Width: width, Height: height}
}

// Run plays until ctx is done or the player quits. Quitting is not an
// error. The screen is finalised before Run returns.
func (h *Host) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer h.screen.Fini()
	if h.sound != nil {
		defer h.sound.Close()
	}

	if err := h.session.Start(); err != nil {
		return err
	}
	go h.poll(cancel)

	err := h.session.Loop().Run(ctx, loop.NewTicker(h.cfg.FrameInterval()))
	snap := h.session.Snapshot()
	h.logger.Info("session ended",
		"score", snap.Score,
		"lines", snap.Lines,
		"pieces", snap.Pieces,
		"elapsed", snap.Elapsed)

	if errors.Is(err, context.Canceled) && h.quit.Load() {
		return nil
	}
	return err
}

func (h *Host) poll(cancel context.CancelFunc) {
	for h.handle(h.screen.PollEvent(), cancel) {
	}
}

// handle applies one screen event and reports whether to keep polling.
// Resizes are picked up by the loop on its next frame.
func (h *Host) handle(ev tcell.Event, cancel context.CancelFunc) bool {
	switch ev := ev.(type) {
	case nil:
		return false
	case *tcell.EventResize:
		h.screen.Sync()
		h.session.Loop().RequestResize()
	case *tcell.EventKey:
		action, ok, quit := keyAction(ev)
		if quit {
			h.quit.Store(true)
			cancel()
			return false
		}
		if ok {
			h.session.Do(action)
		}
	}
	return true
}
