package tile_test

import (
	"errors"
	"image/color"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/plus3/tilefall/tile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindAt(t *testing.T) {
	for i := range tile.NumKinds {
		k, err := tile.KindAt(i)
		require.NoError(t, err)
		assert.Equal(t, i, int(k))
		assert.True(t, k.Valid())
	}

	for _, i := range []int{-1, tile.NumKinds, 100} {
		_, err := tile.KindAt(i)
		assert.True(t, errors.Is(err, tile.ErrInvalidKind), "index %d", i)
	}
}

func TestInvalidKindCatalog(t *testing.T) {
	k := tile.Kind(tile.NumKinds)
	require.False(t, k.Valid())

	assert.NotPanics(t, func() {
		assert.Equal(t, 0, k.Shape().Count())
		assert.Equal(t, color.RGBA{}, k.Colour())
	})
	assert.Equal(t, 0, tile.Kind(255).Shape().Rows())
	assert.NotEqual(t, color.RGBA{}, tile.KindZ.Colour())
}

func TestParseKind(t *testing.T) {
	k, err := tile.ParseKind("Z")
	require.NoError(t, err)
	assert.Equal(t, tile.KindZ, k)

	_, err = tile.ParseKind("Q")
	assert.ErrorIs(t, err, tile.ErrInvalidKind)
}

func TestRandomKind(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	seen := make(map[tile.Kind]int)
	for range 7000 {
		k := tile.RandomKind(rng)
		require.True(t, k.Valid())
		seen[k]++
	}

	assert.Len(t, seen, tile.NumKinds)
	for k, n := range seen {
		assert.InDelta(t, 1000, n, 150, "kind %s", k)
	}
}

func TestCatalogColours(t *testing.T) {
	assert.Equal(t, "#0092ff", hex(tile.KindI))
	assert.Equal(t, "#4900ff", hex(tile.KindO))
	assert.Equal(t, "#ff0000", hex(tile.KindJ))
	assert.Equal(t, "#49ff00", hex(tile.KindL))
	assert.Equal(t, "#00ff92", hex(tile.KindS))
	assert.Equal(t, "#ffdb00", hex(tile.KindT))
	assert.Equal(t, "#ff00db", hex(tile.KindZ))
}

func hex(k tile.Kind) string {
	c := k.Colour()
	const digits = "0123456789abcdef"
	out := []byte{'#'}
	for _, v := range []uint8{c.R, c.G, c.B} {
		out = append(out, digits[v>>4], digits[v&0xf])
	}
	return string(out)
}

func TestSpawn(t *testing.T) {
	board := tile.NewPlayfield(10, 20)
	want := map[tile.Kind]int{
		tile.KindI: 3,
		tile.KindO: 4,
		tile.KindJ: 3,
		tile.KindL: 3,
		tile.KindS: 3,
		tile.KindT: 3,
		tile.KindZ: 3,
	}

	for k, x := range want {
		p := tile.Spawn(board, k)
		assert.Equal(t, tile.Point{X: x}, p.Position(), k.String())
		assert.Equal(t, tile.Vec{X: float64(x)}, p.DrawPosition(), k.String())
		assert.Equal(t, tile.DefaultAnimationDuration, p.Duration())
		assert.Equal(t, k.Colour(), p.Colour())
	}

	t.Run("narrow board", func(t *testing.T) {
		p := tile.Spawn(tile.NewPlayfield(1, 4), tile.KindI)
		assert.Equal(t, -2, p.Position().X)
	})
}

func TestCells(t *testing.T) {
	p := tile.NewPiece(tile.KindT.Shape(), tile.KindT.Colour(), tile.Point{X: 2, Y: 5})

	var cells []tile.Cell
	for c := range p.Cells() {
		cells = append(cells, c)
	}
	require.Len(t, cells, 9)
	assert.Equal(t, tile.Cell{
		Local:  tile.Point{X: 1, Y: 1},
		Abs:    tile.Point{X: 3, Y: 6},
		Draw:   tile.Vec{X: 3, Y: 6},
		Filled: true,
	}, cells[4])

	filled := 0
	for range p.FilledCells() {
		filled++
	}
	assert.Equal(t, 4, filled)

	t.Run("restartable", func(t *testing.T) {
		seq := p.FilledCells()
		first, second := 0, 0
		for range seq {
			first++
		}
		for range seq {
			second++
		}
		assert.Equal(t, first, second)
	})

	t.Run("early exit", func(t *testing.T) {
		n := 0
		for range p.Cells() {
			n++
			if n == 2 {
				break
			}
		}
		assert.Equal(t, 2, n)
	})
}

// occupancyGrid is an independent model of what a piece may not overlap.
type occupancyGrid struct {
	width, height int
	taken         map[tile.Point]bool
}

func (g occupancyGrid) blocked(at tile.Point) bool {
	return at.X < 0 || at.X >= g.width || at.Y < 0 || at.Y >= g.height || g.taken[at]
}

func matrixCells(m [][]int, origin tile.Point) []tile.Point {
	var pts []tile.Point
	for y, row := range m {
		for x, v := range row {
			if v != 0 {
				pts = append(pts, tile.Point{X: origin.X + x, Y: origin.Y + y})
			}
		}
	}
	return pts
}

func TestDetectCollisionMatchesModel(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))

	for trial := range 500 {
		width, height := 4+rng.IntN(8), 4+rng.IntN(12)
		board := tile.NewPlayfield(width, height)
		grid := occupancyGrid{width: width, height: height, taken: map[tile.Point]bool{}}

		for range rng.IntN(width * height / 3) {
			at := tile.Point{X: rng.IntN(width), Y: rng.IntN(height)}
			board.Occupy(at.X, at.Y, tile.KindO.Colour())
			grid.taken[at] = true
		}

		if rng.IntN(2) == 0 {
			other := tile.NewPiece(tile.RandomKind(rng).Shape(), tile.KindT.Colour(),
				tile.Point{X: rng.IntN(width) - 1, Y: rng.IntN(height) - 1})
			board.Add(other)
			for _, at := range matrixCells(other.Shape().Matrix(), other.Position()) {
				grid.taken[at] = true
			}
		}

		kind := tile.RandomKind(rng)
		p := tile.NewPiece(kind.Shape(), kind.Colour(),
			tile.Point{X: rng.IntN(width+2) - 2, Y: rng.IntN(height+2) - 2})
		board.Add(p)

		dx, dy := rng.IntN(5)-2, rng.IntN(5)-2
		want := false
		for _, at := range matrixCells(p.Shape().Matrix(), p.Position()) {
			if grid.blocked(tile.Point{X: at.X + dx, Y: at.Y + dy}) {
				want = true
				break
			}
		}

		got := p.DetectCollision(board, tile.Translate(dx, dy))
		require.Equal(t, want, got, "trial %d: %s at %v by (%d,%d)\n%s", trial, kind, p.Position(), dx, dy, board)
	}
}

func TestDetectCollisionSkipsSelf(t *testing.T) {
	board := tile.NewPlayfield(10, 20)
	p := tile.Spawn(board, tile.KindO)
	board.Add(p)

	assert.False(t, p.DetectCollision(board, tile.Translate(0, 0)))
	assert.False(t, p.DetectCollision(board, tile.Translate(1, 0)))
}

func TestMoveStartsAnimation(t *testing.T) {
	h := newTestHost(10, 20)
	h.now = time.Second
	p := h.spawn(tile.KindT)

	require.True(t, p.MoveRight(h))
	assert.Equal(t, tile.Point{X: 4, Y: 0}, p.Position())
	assert.Equal(t, tile.Vec{X: 3, Y: 0}, p.DrawPosition(), "draw position waits for the animation")
	assert.Equal(t, 1, h.started)

	h.advance(25 * time.Millisecond)
	assert.InDelta(t, 3.5, p.DrawPosition().X, 1e-9)

	h.advance(25 * time.Millisecond)
	assert.Equal(t, tile.Vec{X: 4, Y: 0}, p.DrawPosition())
	assert.Equal(t, 0, h.tasks.Len())
}

func TestBlockedMoveChangesNothing(t *testing.T) {
	h := newTestHost(3, 3)
	p := h.spawn(tile.KindT)
	require.Equal(t, tile.Point{}, p.Position())

	assert.False(t, p.MoveLeft(h))
	assert.False(t, p.MoveRight(h))
	assert.Equal(t, tile.Point{}, p.Position())
	assert.Equal(t, 0, h.started)
}

func TestRotateFourTimesOnPiece(t *testing.T) {
	for _, k := range tile.Kinds() {
		t.Run(k.String(), func(t *testing.T) {
			h := newTestHost(10, 20)
			p := h.spawn(k)
			require.True(t, p.MoveDown(h))

			for range 4 {
				require.True(t, p.Rotate(h))
			}
			assert.True(t, k.Shape().Equal(p.Shape()))
			assert.Equal(t, tile.Point{X: p.Position().X, Y: 1}, p.Position())
		})
	}
}

func TestRotateBlockedByLockedCell(t *testing.T) {
	h := newTestHost(10, 20)
	p := h.spawn(tile.KindT)
	// T rotated clockwise fills the middle of the right column
	h.board.Occupy(5, 1, tile.KindO.Colour())

	before := p.Shape()
	assert.False(t, p.Rotate(h))
	assert.True(t, before.Equal(p.Shape()))
	assert.Equal(t, 0, h.started, "rotation never animates")
}

func TestHeightAboveGround(t *testing.T) {
	board := tile.NewPlayfield(10, 20)
	p := tile.Spawn(board, tile.KindO)
	assert.Equal(t, 18, p.HeightAboveGround(board))

	board.Occupy(4, 10, tile.KindI.Colour())
	assert.Equal(t, 8, p.HeightAboveGround(board))

	t.Run("already colliding", func(t *testing.T) {
		board.Occupy(5, 0, tile.KindI.Colour())
		assert.Equal(t, 0, p.HeightAboveGround(board))
	})
}

func TestHardDrop(t *testing.T) {
	h := newTestHost(10, 20)
	h.now = 3 * time.Second
	p := h.spawn(tile.KindI)

	assert.Equal(t, 16, p.HardDrop(h))
	assert.Equal(t, tile.Point{X: 3, Y: 16}, p.Position())
	assert.Equal(t, 0.0, p.DrawPosition().Y)
	assert.Equal(t, 1, h.started, "one animation carries the whole drop")
	assert.Equal(t, []int{16}, h.dropped)

	h.advance(tile.DefaultAnimationDuration / 2)
	assert.InDelta(t, 8.0, p.DrawPosition().Y, 1e-9)
	h.advance(tile.DefaultAnimationDuration / 2)
	assert.Equal(t, 16.0, p.DrawPosition().Y)

	t.Run("at rest", func(t *testing.T) {
		assert.Equal(t, 0, p.HardDrop(h))
		assert.Equal(t, tile.Point{X: 3, Y: 16}, p.Position())
		assert.Equal(t, 1, h.started)
		assert.Equal(t, []int{16}, h.dropped)
	})
}

func TestSides(t *testing.T) {
	p := tile.NewPiece(tile.KindT.Shape(), tile.KindT.Colour(), tile.Point{})

	assert.Equal(t, [4]bool{false, true, true, true}, p.Sides(tile.Point{X: 1, Y: 0}))
	assert.Equal(t, [4]bool{false, true, false, false}, p.Sides(tile.Point{X: 0, Y: 0}))
	assert.Equal(t, [4]bool{true, false, false, false}, p.Sides(tile.Point{X: 1, Y: 1}))
}

func TestPieceTrimEmpty(t *testing.T) {
	p := tile.NewPiece(tile.KindZ.Shape(), tile.KindZ.Colour(), tile.Point{})
	p.TrimEmpty()
	assert.Equal(t, 2, p.Shape().Rows())
	p.TrimEmpty()
	assert.Equal(t, 2, p.Shape().Rows())
}

func BenchmarkDetectCollision(b *testing.B) {
	board := tile.NewPlayfield(10, 20)
	for x := range 9 {
		for y := 15; y < 20; y++ {
			board.Occupy(x, y, tile.KindO.Colour())
		}
	}
	p := tile.Spawn(board, tile.KindT)
	board.Add(p)
	for range 3 {
		board.Add(tile.NewPiece(tile.KindO.Shape(), tile.KindO.Colour(), tile.Point{X: 0, Y: 5}))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.DetectCollision(board, tile.Translate(0, 1))
	}
}

func BenchmarkHeightAboveGround(b *testing.B) {
	board := tile.NewPlayfield(10, 20)
	p := tile.Spawn(board, tile.KindI)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.HeightAboveGround(board)
	}
}
