package window

import (
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/tilefall/config"
	"github.com/plus3/tilefall/game"
	"github.com/plus3/tilefall/loop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepeater(t *testing.T) {
	r := newRepeater()

	t.Run("press fires once", func(t *testing.T) {
		assert.False(t, r.fire(game.Rotate, 0))
		assert.True(t, r.fire(game.Rotate, 1))
		for frames := 2; frames < 40; frames++ {
			assert.False(t, r.fire(game.Rotate, frames), "frame %d", frames)
		}
	})

	t.Run("held moves repeat after delay", func(t *testing.T) {
		var fired []int
		for frames := 1; frames <= 20; frames++ {
			if r.fire(game.MoveLeft, frames) {
				fired = append(fired, frames)
			}
		}
		assert.Equal(t, []int{1, 13, 16, 19}, fired)
	})

	t.Run("actions in key order", func(t *testing.T) {
		keys := Keymap{
			ebiten.KeySpace: game.HardDrop,
			ebiten.KeyA:     game.MoveLeft,
			ebiten.KeyW:     game.Rotate,
		}
		held := map[ebiten.Key]int{ebiten.KeyA: 1, ebiten.KeySpace: 1, ebiten.KeyW: 5}
		got := r.actions(keys, func(k ebiten.Key) int { return held[k] })
		assert.Equal(t, []game.Action{game.MoveLeft, game.HardDrop}, got)
	})
}

func TestDefaultKeymap(t *testing.T) {
	keys := DefaultKeymap()
	bound := make(map[game.Action]bool)
	for _, a := range keys {
		bound[a] = true
	}
	for _, a := range []game.Action{game.MoveLeft, game.MoveRight, game.SoftDrop, game.Rotate, game.HardDrop, game.TogglePause, game.Restart} {
		assert.True(t, bound[a], "%s is not bound", a)
	}
}

func TestEdges(t *testing.T) {
	all := edges(10, 20, 5, [4]bool{})
	assert.Equal(t, [][4]float32{
		{10, 20, 15, 20},
		{15, 20, 15, 25},
		{10, 25, 15, 25},
		{10, 20, 10, 25},
	}, all)

	// neighbours on the right and below
	some := edges(0, 0, 1, [4]bool{false, true, true, false})
	assert.Equal(t, [][4]float32{{0, 0, 1, 0}, {0, 0, 0, 1}}, some)

	assert.Empty(t, edges(0, 0, 1, [4]bool{true, true, true, true}))
}

func TestHUD(t *testing.T) {
	assert.Equal(t, "SCORE 40\nLINES 1\nLEVEL 0", hud(game.Snapshot{Score: 40, Lines: 1, State: loop.Running}))
	assert.Contains(t, hud(game.Snapshot{State: loop.Paused}), "PAUSED")
	assert.Contains(t, hud(game.Snapshot{State: loop.Running, Over: true}), "GAME OVER")
}

func TestLayoutResizes(t *testing.T) {
	cfg := config.Default()
	clock := loop.NewManualClock(time.Unix(0, 0))
	g, err := New(cfg, WithSessionOptions(game.WithClock(clock)))
	require.NoError(t, err)

	var opened []loop.Viewport
	g.resizeWindow = func(w, h int) { opened = append(opened, loop.Viewport{Width: w, Height: h}) }

	require.NoError(t, g.Session().Start())
	board := loop.Viewport{Width: g.width, Height: g.height}
	l := g.Session().Loop()
	assert.Equal(t, board, l.Viewport())

	w, h := g.Layout(800, 900)
	assert.Equal(t, board, loop.Viewport{Width: w, Height: h}, "logical size is fixed")
	assert.Equal(t, board, l.Viewport(), "applied on the next frame")

	l.Step(clock.Advance(10 * time.Millisecond))
	assert.Equal(t, loop.Viewport{Width: 800, Height: 900}, l.Viewport())

	g.Layout(640, 480)
	l.Step(clock.Advance(10 * time.Millisecond))
	assert.Equal(t, loop.Viewport{Width: 640, Height: 480}, l.Viewport())
	assert.Equal(t, []loop.Viewport{board}, opened, "only the first size moves the window")
}
