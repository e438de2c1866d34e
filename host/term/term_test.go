package term

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/tilefall/config"
	"github.com/plus3/tilefall/game"
	"github.com/plus3/tilefall/loop"
	"github.com/plus3/tilefall/tile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSimScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(40, 24)
	return screen
}

func runeAt(screen tcell.Screen, x, y int) rune {
	r, _, _, _ := screen.GetContent(x, y)
	return r
}

func TestScreenFrame(t *testing.T) {
	sim := newSimScreen(t)
	defer sim.Fini()

	cfg := config.Default()
	clock := loop.NewManualClock(time.Unix(0, 0))
	s, err := game.New(cfg, game.WithClock(clock), game.WithSequence(tile.KindT, tile.KindI))
	require.NoError(t, err)
	require.NoError(t, s.Start())

	out := NewScreen(sim, cfg.Board.Width, cfg.Board.Height)
	out.Preview = func(r tile.Renderer) { s.RenderPreview(r, previewExtent) }
	out.BeginFrame(s.Snapshot())
	s.Render(out)
	out.EndFrame()

	t.Run("piece", func(t *testing.T) {
		// T spawns at x=3 and is two columns per cell, after the border.
		for _, x := range []int{7, 8, 9, 10, 11, 12} {
			assert.Equal(t, fillRune, runeAt(sim, x, 0), "column %d", x)
		}
		assert.Equal(t, fillRune, runeAt(sim, 9, 1))
		assert.Equal(t, ' ', runeAt(sim, 7, 1))
	})

	t.Run("ghost", func(t *testing.T) {
		assert.Equal(t, ghostRune, runeAt(sim, 7, 18))
		assert.Equal(t, ghostRune, runeAt(sim, 10, 19))
		assert.Equal(t, ' ', runeAt(sim, 7, 19))
	})

	t.Run("border", func(t *testing.T) {
		assert.Equal(t, borderRune, runeAt(sim, 0, 5))
		assert.Equal(t, borderRune, runeAt(sim, 21, 5))
		assert.Equal(t, floorRune, runeAt(sim, 4, 20))
	})

	t.Run("panel", func(t *testing.T) {
		assert.Equal(t, 'N', runeAt(sim, 23, 0))
		assert.Equal(t, 'S', runeAt(sim, 23, 6))
		assert.Equal(t, '0', runeAt(sim, 29, 6))
		// next is I, a vertical bar in its second column
		for y := 1; y <= 4; y++ {
			assert.Equal(t, fillRune, runeAt(sim, 25, y), "row %d", y)
		}
	})
}

func TestKeyAction(t *testing.T) {
	tests := []struct {
		name   string
		ev     *tcell.EventKey
		action game.Action
		ok     bool
		quit   bool
	}{
		{"left arrow", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), game.MoveLeft, true, false},
		{"up arrow", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), game.Rotate, true, false},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), game.HardDrop, true, false},
		{"vi right", tcell.NewEventKey(tcell.KeyRune, 'l', tcell.ModNone), game.MoveRight, true, false},
		{"pause", tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone), game.TogglePause, true, false},
		{"restart", tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone), game.Restart, true, false},
		{"quit", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), 0, false, true},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), 0, false, true},
		{"unbound", tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone), 0, false, false},
		{"unbound key", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), 0, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, ok, quit := keyAction(tt.ev)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.quit, quit)
			if ok {
				assert.Equal(t, tt.action, action)
			}
		})
	}
}

func TestTone(t *testing.T) {
	_, _, ok := tone(game.Spawned, 0)
	assert.False(t, ok)

	one, _, ok := tone(game.LinesCleared, 1)
	require.True(t, ok)
	four, _, _ := tone(game.LinesCleared, 4)
	assert.Greater(t, four, one)

	_, d, ok := tone(game.GameOver, 0)
	require.True(t, ok)
	assert.Equal(t, 400*time.Millisecond, d)
}

func TestHostResize(t *testing.T) {
	sim := newSimScreen(t)
	defer sim.Fini()

	cfg := config.Default()
	clock := loop.NewManualClock(time.Unix(0, 0))
	h, err := New(cfg, sim, nil, game.WithClock(clock))
	require.NoError(t, err)
	require.NoError(t, h.Session().Start())
	l := h.Session().Loop()
	assert.Equal(t, loop.Viewport{Width: 40, Height: 24}, l.Viewport())

	cancel := func() {}
	resize := func(w, ht int) {
		t.Helper()
		sim.SetSize(w, ht)
		require.True(t, h.handle(tcell.NewEventResize(w, ht), cancel))
		l.Step(clock.Advance(10 * time.Millisecond))
	}

	resize(30, 12)
	assert.Equal(t, loop.Viewport{Width: 30, Height: 12}, l.Viewport())
	assert.Equal(t, 'e', runeAt(sim, 0, 0))
	assert.Equal(t, ' ', runeAt(sim, 0, 5), "board hidden")

	resize(50, 30)
	assert.Equal(t, loop.Viewport{Width: 50, Height: 30}, l.Viewport())
	assert.Equal(t, borderRune, runeAt(sim, 0, 5))
	assert.Equal(t, 'N', runeAt(sim, 23, 0))
}

func TestHostQuit(t *testing.T) {
	sim := newSimScreen(t)

	cfg := config.Default()
	h, err := New(cfg, sim, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- h.Run(ctx) }()

	sim.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-ctx.Done():
		t.Fatal("host did not stop on quit")
	}
}
