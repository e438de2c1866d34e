// Package window plays a session in a desktop window using ebiten.
package window

import (
	"fmt"
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/plus3/tilefall/config"
	"github.com/plus3/tilefall/debugui"
	debugui_ebiten "github.com/plus3/tilefall/debugui/ebiten"
	"github.com/plus3/tilefall/game"
	"github.com/plus3/tilefall/loop"
	"github.com/plus3/tilefall/render"
)

const title = "tilefall"

var background = color.RGBA{0x12, 0x12, 0x18, 0xff}

// Option configures a Game.
type Option func(*Game)

// WithDebugUI overlays the performance and session panels using backend.
func WithDebugUI(backend *debugui_ebiten.ImguiBackend) Option {
	return func(g *Game) { g.imgui = backend }
}

// WithLogger sets the logger passed to the session.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Game) { g.logger = logger }
}

// WithKeymap replaces the default key bindings.
func WithKeymap(keys Keymap) Option {
	return func(g *Game) { g.keys = keys }
}

// WithSessionOptions forwards opts to game.New.
func WithSessionOptions(opts ...game.Option) Option {
	return func(g *Game) { g.sessionOpts = append(g.sessionOpts, opts...) }
}

// Game implements ebiten.Game around a session. The session's loop is
// stepped once per ebiten Update.
type Game struct {
	cfg         config.Config
	session     *game.Session
	logger      *slog.Logger
	keys        Keymap
	repeat      *repeater
	imgui       *debugui_ebiten.ImguiBackend
	debug       *debugui.System
	screen      screenRenderer
	sessionOpts []game.Option
	width       int
	height      int

	// outside is the window size ebiten last laid out, zero until the
	// first Layout.
	outside      loop.Viewport
	sized        bool
	resizeWindow func(width, height int)
}

func New(cfg config.Config, opts ...Option) (*Game, error) {
	g := &Game{
		cfg:    cfg,
		keys:   DefaultKeymap(),
		repeat: newRepeater(),
		logger: slog.Default(),

		resizeWindow: ebiten.SetWindowSize,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.width, g.height = cfg.WindowSize()
	g.screen.size = float64(cfg.Display.CellSize)

	sessionOpts := []game.Option{
		game.WithLogger(g.logger),
		game.WithViewport(g, g),
	}
	if g.imgui != nil {
		g.debug = &debugui.System{}
		sessionOpts = append(sessionOpts, game.WithSystems(g.debug))
	}
	sessionOpts = append(sessionOpts, g.sessionOpts...)

	s, err := game.New(cfg, sessionOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}
	g.session = s

	if g.debug != nil {
		g.debug.Add(
			debugui.NewPerformancePanel(s.Loop(), s.Scheduler()),
			debugui.NewSessionPanel(s),
		)
	}
	return g, nil
}

// Run opens the window and blocks until it is closed or the player quits.
func (g *Game) Run() error {
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := g.session.Start(); err != nil {
		return err
	}
	g.logger.Info("window opened", "width", g.width, "height", g.height)
	return ebiten.RunGame(g)
}

func (g *Game) Session() *game.Session { return g.session }

// Viewport implements loop.ViewportProvider. Before the window is laid out
// it is the size the board needs.
func (g *Game) Viewport() loop.Viewport {
	if g.outside.Width > 0 && g.outside.Height > 0 {
		return g.outside
	}
	return loop.Viewport{Width: g.width, Height: g.height}
}

// SetSize implements loop.Surface. Only the first size opens the window;
// later ones come from the player resizing it and ebiten scales the board
// to fit.
func (g *Game) SetSize(v loop.Viewport) {
	if g.sized {
		return
	}
	g.sized = true
	g.resizeWindow(v.Width, v.Height)
}

func (g *Game) Update() error {
	l := g.session.Loop()
	if ebiten.IsKeyPressed(ebiten.KeyQ) || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		l.Stop()
	}
	if l.State() == loop.Stopped {
		snap := g.session.Snapshot()
		g.logger.Info("window closed", "score", snap.Score, "lines", snap.Lines, "frames", snap.Frames)
		return ebiten.Termination
	}

	if g.imgui != nil {
		g.imgui.BeginFrame()
	}
	if g.debug == nil || !g.debug.InputState.WantCaptureKeyboard {
		for _, a := range g.repeat.actions(g.keys, pressedFrames) {
			g.session.Do(a)
		}
	}

	l.Step(l.Clock().Now())

	if g.imgui != nil {
		g.imgui.EndFrame()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	g.screen.dst = screen

	g.session.Render(g.screen)

	cell := float64(g.cfg.Display.CellSize)
	boardWidth := float64(g.cfg.Board.Width) * cell
	if g.cfg.Display.PreviewSize > 0 {
		preview := render.Shift(g.screen, boardWidth+cell/2, cell/2)
		g.session.RenderPreview(preview, float64(g.cfg.Display.PreviewSize))
	}

	ebitenutil.DebugPrintAt(screen, hud(g.session.Snapshot()),
		int(boardWidth+cell/2), g.cfg.Display.PreviewSize+int(cell))

	if g.imgui != nil {
		g.imgui.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.imgui != nil {
		g.imgui.Layout(outsideWidth, outsideHeight)
	}
	if outside := (loop.Viewport{Width: outsideWidth, Height: outsideHeight}); outside != g.outside {
		g.outside = outside
		g.session.Loop().RequestResize()
	}
	return g.width, g.height
}

func hud(s game.Snapshot) string {
	text := fmt.Sprintf("SCORE %d\nLINES %d\nLEVEL %d", s.Score, s.Lines, s.Level)
	switch {
	case s.Over:
		text += "\n\nGAME OVER\nR to restart"
	case s.State == loop.Paused:
		text += "\n\nPAUSED"
	}
	return text
}
