package render_test

import (
	"image/color"
	"testing"
	"time"

	"github.com/plus3/tilefall/config"
	"github.com/plus3/tilefall/game"
	"github.com/plus3/tilefall/loop"
	"github.com/plus3/tilefall/render"
	"github.com/plus3/tilefall/tile"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGolden(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func smallSession(t *testing.T, kinds ...tile.Kind) (*game.Session, *loop.ManualClock) {
	t.Helper()

	cfg := config.Default()
	cfg.Board = config.Board{Width: 6, Height: 8}
	cfg.Timing.Gravity = 100 * time.Millisecond
	cfg.Timing.GravityMin = 50 * time.Millisecond

	clock := loop.NewManualClock(time.Unix(0, 0))
	s, err := game.New(cfg, game.WithClock(clock), game.WithSequence(kinds...))
	require.NoError(t, err)
	require.NoError(t, s.Start())
	return s, clock
}

func TestTextSession(t *testing.T) {
	g := newGolden(t)

	t.Run("spawn", func(t *testing.T) {
		s, _ := smallSession(t, tile.KindT)
		text := render.NewText(6, 8)
		s.Render(text)
		g.Assert(t, "spawn_t", text.Bytes())
	})

	t.Run("locked", func(t *testing.T) {
		s, clock := smallSession(t, tile.KindT, tile.KindO)
		s.Do(game.HardDrop)
		for i := 0; s.Snapshot().Pieces < 2; i++ {
			require.Less(t, i, 100, "piece never locked")
			s.Loop().Step(clock.Advance(10 * time.Millisecond))
		}

		text := render.NewText(6, 8)
		s.Render(text)
		g.Assert(t, "locked_t_next_o", text.Bytes())
	})

	t.Run("preview", func(t *testing.T) {
		s, _ := smallSession(t, tile.KindT, tile.KindI)
		text := render.NewText(4, 4)
		s.RenderPreview(text, 4)
		g.Assert(t, "preview_i", text.Bytes())
	})
}

func TestTextDrawCell(t *testing.T) {
	text := render.NewText(3, 2)

	text.DrawCell(tile.Vec{X: 0.4, Y: 0.6}, tile.CellStyle{Colour: tile.KindZ.Colour(), Fill: true})
	text.DrawCell(tile.Vec{X: 2, Y: 0}, tile.CellStyle{Colour: color.RGBA{1, 2, 3, 255}, Fill: true})
	text.DrawCell(tile.Vec{X: 1, Y: 0}, tile.CellStyle{Stroke: true})
	text.DrawCell(tile.Vec{X: 0, Y: 1}, tile.CellStyle{Stroke: true})
	text.DrawCell(tile.Vec{X: 5, Y: -1}, tile.CellStyle{Fill: true})

	assert.Equal(t, ".:#\nZ..", text.String())
	assert.Equal(t, 'Z', text.At(0, 1))

	text.Clear()
	assert.Equal(t, "...\n...", text.String())
}

func TestShift(t *testing.T) {
	text := render.NewText(4, 4)
	r := render.Shift(text, 20, 40)
	r.DrawCell(tile.Vec{X: 1, Y: 0}, tile.CellStyle{Colour: tile.KindO.Colour(), Size: 20, Fill: true})
	assert.Equal(t, 'O', text.At(2, 2))
}
