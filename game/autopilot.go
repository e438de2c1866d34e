package game

import (
	"iter"
	"math/rand/v2"

	"github.com/plus3/tilefall/loop"
	"github.com/plus3/tilefall/tile"
)

// lockedOnly hides active pieces so placements can be probed without the
// falling piece getting in the way.
type lockedOnly struct {
	*tile.Playfield
}

func (lockedOnly) ActivePieces() iter.Seq[*tile.Piece] {
	return func(func(*tile.Piece) bool) {}
}

// Placement is a rotation count and target column for the falling piece.
type Placement struct {
	Rotations int
	X         int
	Score     float64
}

// Autopilot plays the game: whenever a new piece appears it picks a
// placement and queues the actions that reach it, ending with a hard drop.
// Ties between equally good placements are broken at random.
type Autopilot struct {
	Session *Session
	rng     *rand.Rand
	seen    *tile.Piece
	plans   int
}

func NewAutopilot(s *Session, rng *rand.Rand) *Autopilot {
	return &Autopilot{Session: s, rng: rng}
}

// Plans returns how many pieces the autopilot has planned for.
func (a *Autopilot) Plans() int { return a.plans }

func (a *Autopilot) Execute(frame *loop.Frame) {
	s := a.Session
	p := s.current
	if p == nil || p == a.seen || s.over || frame.Loop.State() != loop.Running {
		return
	}
	a.seen = p
	a.plans++

	best := a.Plan(s.board, p)
	for range best.Rotations {
		s.Do(Rotate)
	}
	dx := best.X - p.Position().X
	for ; dx < 0; dx++ {
		s.Do(MoveLeft)
	}
	for ; dx > 0; dx-- {
		s.Do(MoveRight)
	}
	s.Do(HardDrop)
}

// Plan scores every rotation and column of p against the locked cells of
// board and returns the best one.
func (a *Autopilot) Plan(board *tile.Playfield, p *tile.Piece) Placement {
	view := lockedOnly{board}
	best := Placement{X: p.Position().X, Score: -1e18}
	ties := 0

	shape := p.Shape()
	for r := range 4 {
		for x := -shape.Cols(); x < board.Width(); x++ {
			probe := tile.NewPiece(shape, p.Colour(), tile.Point{X: x, Y: p.Position().Y})
			if probe.DetectCollision(view, tile.Translate(0, 0)) {
				continue
			}
			k := probe.HeightAboveGround(view)
			score := evaluate(board, probe, k)

			switch {
			case score > best.Score:
				best = Placement{Rotations: r, X: x, Score: score}
				ties = 1
			case score == best.Score:
				ties++
				if a.rng != nil && a.rng.IntN(ties) == 0 {
					best = Placement{Rotations: r, X: x, Score: score}
				}
			}
		}
		shape = shape.Rotate()
	}
	return best
}

// evaluate rates the board left after dropping probe by k rows and
// clearing any completed rows. Weights follow the usual four-feature
// placement heuristic.
func evaluate(board *tile.Playfield, probe *tile.Piece, k int) float64 {
	w, h := board.Width(), board.Height()
	grid := make([][]bool, h)
	for y := range grid {
		grid[y] = make([]bool, w)
		for x := range grid[y] {
			grid[y][x] = board.IsOccupied(x, y)
		}
	}
	for c := range probe.FilledCells() {
		x, y := c.Abs.X, c.Abs.Y+k
		if x >= 0 && x < w && y >= 0 && y < h {
			grid[y][x] = true
		}
	}

	kept := grid[:0]
	lines := 0
	for _, row := range grid {
		full := true
		for _, v := range row {
			full = full && v
		}
		if full {
			lines++
			continue
		}
		kept = append(kept, row)
	}
	heights := make([]int, w)
	holes := 0
	for x := range w {
		seen := false
		for i, row := range kept {
			switch {
			case row[x] && !seen:
				seen = true
				heights[x] = len(kept) - i
			case !row[x] && seen:
				holes++
			}
		}
	}

	aggregate, bumpiness := 0, 0
	for x, height := range heights {
		aggregate += height
		if x > 0 {
			bumpiness += abs(height - heights[x-1])
		}
	}

	return -0.510066*float64(aggregate) +
		0.760666*float64(lines) -
		0.35663*float64(holes) -
		0.184483*float64(bumpiness)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
