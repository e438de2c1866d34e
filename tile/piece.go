package tile

import (
	"image/color"
	"iter"
	"math"
	"time"

	"github.com/plus3/tilefall/anim"
)

// DefaultAnimationDuration is how long a piece takes to visually catch up
// with a logical move.
const DefaultAnimationDuration = 50 * time.Millisecond

// Point is an integer grid coordinate.
type Point struct {
	X, Y int
}

// Add returns p offset by o.
func (p Point) Add(o Point) Point { return Point{p.X + o.X, p.Y + o.Y} }

// Vec is a fractional grid coordinate.
type Vec struct {
	X, Y float64
}

// Add returns v offset by o.
func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }

// Cell is a transient view of one entry of a piece's shape.
type Cell struct {
	Local  Point
	Abs    Point
	Draw   Vec
	Filled bool
}

// Transform maps a cell to the absolute coordinate it would occupy.
type Transform func(Cell) Point

// Translate moves every cell by (dx, dy).
func Translate(dx, dy int) Transform {
	return func(c Cell) Point {
		return Point{c.Abs.X + dx, c.Abs.Y + dy}
	}
}

// Board is the occupancy oracle pieces collide against.
type Board interface {
	Width() int
	Height() int
	// IsOccupied reports whether a locked cell sits at (x, y).
	IsOccupied(x, y int) bool
	// ActivePieces yields the pieces still in play.
	ActivePieces() iter.Seq[*Piece]
}

// Host is what a piece needs from the running game to move.
type Host interface {
	Board() Board
	// Now is the current play time, used as the start of new animations.
	Now() time.Duration
	Animate(anim.Task)
	// Dropped reports a hard drop of distance rows. Receivers reset their
	// drop timer here.
	Dropped(distance int)
}

// Piece is a falling shape with a logical grid position and a draw position
// that animates towards it.
type Piece struct {
	shape    Shape
	colour   color.RGBA
	pos      Point
	draw     *Vec
	duration time.Duration
	ease     anim.Easing
}

// NewPiece places shape at pos with its draw position settled.
func NewPiece(shape Shape, colour color.RGBA, pos Point) *Piece {
	return &Piece{
		shape:    shape,
		colour:   colour,
		pos:      pos,
		draw:     &Vec{X: float64(pos.X), Y: float64(pos.Y)},
		duration: DefaultAnimationDuration,
		ease:     anim.Linear,
	}
}

// Spawn creates a piece of kind k centred at the top of b.
func Spawn(b Board, k Kind) *Piece {
	shape := k.Shape()
	x := int(math.Floor(float64(b.Width())/2 - float64(shape.Cols())/2))
	return NewPiece(shape, k.Colour(), Point{X: x})
}

// SetAnimation changes the duration and easing of future move animations.
func (p *Piece) SetAnimation(duration time.Duration, ease anim.Easing) {
	p.duration = duration
	if ease != nil {
		p.ease = ease
	}
}

// Shape is the current orientation.
func (p *Piece) Shape() Shape { return p.shape }

// Colour is the fill colour of every cell.
func (p *Piece) Colour() color.RGBA { return p.colour }

// Position is the logical top-left of the bounding box.
func (p *Piece) Position() Point { return p.pos }

// DrawPosition is where the piece is currently drawn.
func (p *Piece) DrawPosition() Vec { return *p.draw }

// Duration is how long each move animation runs.
func (p *Piece) Duration() time.Duration { return p.duration }

// Cells yields every entry of the shape, filled or not, in row-major order.
func (p *Piece) Cells() iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		for y := 0; y < p.shape.rows; y++ {
			for x := 0; x < p.shape.cols; x++ {
				c := Cell{
					Local:  Point{x, y},
					Abs:    Point{p.pos.X + x, p.pos.Y + y},
					Draw:   Vec{p.draw.X + float64(x), p.draw.Y + float64(y)},
					Filled: p.shape.cells[y*p.shape.cols+x],
				}
				if !yield(c) {
					return
				}
			}
		}
	}
}

// FilledCells yields only the filled entries of the shape.
func (p *Piece) FilledCells() iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		for c := range p.Cells() {
			if c.Filled && !yield(c) {
				return
			}
		}
	}
}

// DetectCollision reports whether applying t to the piece would put a filled
// cell outside b, onto a locked cell, or onto a filled cell of another
// active piece. The piece itself is never compared against.
func (p *Piece) DetectCollision(b Board, t Transform) bool {
	w, h := b.Width(), b.Height()

	for c := range p.FilledCells() {
		at := t(c)
		if at.X < 0 || at.X >= w || at.Y < 0 || at.Y >= h {
			return true
		}
		if b.IsOccupied(at.X, at.Y) {
			return true
		}
		for other := range b.ActivePieces() {
			if other == p {
				continue
			}
			for oc := range other.FilledCells() {
				if oc.Abs == at {
					return true
				}
			}
		}
	}
	return false
}

func drawX(v *Vec) *float64 { return &v.X }
func drawY(v *Vec) *float64 { return &v.Y }

func (p *Piece) translate(h Host, dx, dy int) bool {
	if p.DetectCollision(h.Board(), Translate(dx, dy)) {
		return false
	}

	p.pos.X += dx
	p.pos.Y += dy
	if dx != 0 {
		h.Animate(anim.New(p.ease, p.draw, drawX, float64(p.pos.X), h.Now(), p.duration))
	}
	if dy != 0 {
		h.Animate(anim.New(p.ease, p.draw, drawY, float64(p.pos.Y), h.Now(), p.duration))
	}
	return true
}

// MoveDown moves the piece one row down. False means it is resting.
func (p *Piece) MoveDown(h Host) bool { return p.translate(h, 0, 1) }

// MoveLeft moves the piece one column left. False means it is blocked.
func (p *Piece) MoveLeft(h Host) bool { return p.translate(h, -1, 0) }

// MoveRight moves the piece one column right. False means it is blocked.
func (p *Piece) MoveRight(h Host) bool { return p.translate(h, 1, 0) }

// rotation maps a local cell to its clockwise position inside the bounding
// box anchored at the logical position.
func (p *Piece) rotation() Transform {
	rows := p.shape.rows
	return func(c Cell) Point {
		return Point{p.pos.X + rows - 1 - c.Local.Y, p.pos.Y + c.Local.X}
	}
}

// Rotate turns the shape 90 degrees clockwise in place. A rotation that
// would collide is rejected and leaves the shape unchanged.
func (p *Piece) Rotate(h Host) bool {
	if p.DetectCollision(h.Board(), p.rotation()) {
		return false
	}
	p.shape = p.shape.Rotate()
	return true
}

// HeightAboveGround returns how many rows the piece can fall before it
// rests. A piece that already collides where it is reports 0.
func (p *Piece) HeightAboveGround(b Board) int {
	k := 0
	for !p.DetectCollision(b, Translate(0, k)) {
		k++
	}
	if k == 0 {
		return 0
	}
	return k - 1
}

// HardDrop moves the piece straight to its resting row. The logical move is
// immediate and a single animation carries the draw position after it. It
// returns the distance dropped; 0 means nothing happened.
func (p *Piece) HardDrop(h Host) int {
	k := p.HeightAboveGround(h.Board())
	if k == 0 {
		return 0
	}

	p.pos.Y += k
	h.Animate(anim.New(p.ease, p.draw, drawY, float64(p.pos.Y), h.Now(), p.duration))
	h.Dropped(k)
	return k
}

// TrimEmpty drops trailing empty rows from the shape.
func (p *Piece) TrimEmpty() {
	p.shape = p.shape.TrimEmpty()
}

// Sides reports which neighbours of the local cell are filled, in the order
// top, right, bottom, left.
func (p *Piece) Sides(local Point) [4]bool {
	s := p.shape
	return [4]bool{
		s.Filled(local.X, local.Y-1),
		s.Filled(local.X+1, local.Y),
		s.Filled(local.X, local.Y+1),
		s.Filled(local.X-1, local.Y),
	}
}
