package tile

import (
	"image/color"
	"iter"
	"slices"
	"strings"

	"github.com/kamstrup/intmap"
)

// Playfield is a rectangular board holding locked cells and the pieces still
// in play.
type Playfield struct {
	width, height int
	locked        *intmap.Map[int, color.RGBA]
	active        []*Piece
}

// NewPlayfield creates an empty board of the given size.
func NewPlayfield(width, height int) *Playfield {
	return &Playfield{
		width:  width,
		height: height,
		locked: intmap.New[int, color.RGBA](width * height),
	}
}

func (f *Playfield) Width() int  { return f.width }
func (f *Playfield) Height() int { return f.height }

func (f *Playfield) key(x, y int) int { return y*f.width + x }

func (f *Playfield) inBounds(x, y int) bool {
	return x >= 0 && x < f.width && y >= 0 && y < f.height
}

// IsOccupied reports whether (x, y) holds a locked cell.
func (f *Playfield) IsOccupied(x, y int) bool {
	if !f.inBounds(x, y) {
		return false
	}
	return f.locked.Has(f.key(x, y))
}

// At returns the colour of the locked cell at (x, y).
func (f *Playfield) At(x, y int) (color.RGBA, bool) {
	if !f.inBounds(x, y) {
		return color.RGBA{}, false
	}
	return f.locked.Get(f.key(x, y))
}

// Occupy locks a single cell. Out-of-bounds coordinates are ignored.
func (f *Playfield) Occupy(x, y int, colour color.RGBA) {
	if f.inBounds(x, y) {
		f.locked.Put(f.key(x, y), colour)
	}
}

// ActivePieces yields pieces in the order they were added.
func (f *Playfield) ActivePieces() iter.Seq[*Piece] {
	return func(yield func(*Piece) bool) {
		for _, p := range f.active {
			if !yield(p) {
				return
			}
		}
	}
}

// Add registers p as an active piece. Adding the same piece twice is a no-op.
func (f *Playfield) Add(p *Piece) {
	if slices.Contains(f.active, p) {
		return
	}
	f.active = append(f.active, p)
}

// Remove unregisters p and reports whether it was active.
func (f *Playfield) Remove(p *Piece) bool {
	i := slices.Index(f.active, p)
	if i < 0 {
		return false
	}
	f.active = slices.Delete(f.active, i, i+1)
	return true
}

// Lock copies the filled cells of p into the locked set and removes p from
// the active pieces. It returns the number of cells locked; cells outside the
// board are dropped.
func (f *Playfield) Lock(p *Piece) int {
	f.Remove(p)

	n := 0
	for c := range p.FilledCells() {
		if !f.inBounds(c.Abs.X, c.Abs.Y) {
			continue
		}
		f.locked.Put(f.key(c.Abs.X, c.Abs.Y), p.colour)
		n++
	}
	return n
}

func (f *Playfield) rowFull(y int) bool {
	for x := 0; x < f.width; x++ {
		if !f.locked.Has(f.key(x, y)) {
			return false
		}
	}
	return true
}

// ClearLines removes every full row, moves the rows above it down and returns
// the cleared row indices from top to bottom, as they were before clearing.
func (f *Playfield) ClearLines() []int {
	var cleared []int
	for y := 0; y < f.height; y++ {
		if f.rowFull(y) {
			cleared = append(cleared, y)
		}
	}
	if len(cleared) == 0 {
		return nil
	}

	shifted := intmap.New[int, color.RGBA](f.locked.Len())
	f.locked.ForEach(func(k int, colour color.RGBA) bool {
		x, y := k%f.width, k/f.width
		if slices.Contains(cleared, y) {
			return true
		}

		below := 0
		for _, c := range cleared {
			if c > y {
				below++
			}
		}
		shifted.Put(f.key(x, y+below), colour)
		return true
	})
	f.locked = shifted
	return cleared
}

// Locked yields locked cells in row-major order.
func (f *Playfield) Locked() iter.Seq2[Point, color.RGBA] {
	return func(yield func(Point, color.RGBA) bool) {
		for y := 0; y < f.height; y++ {
			for x := 0; x < f.width; x++ {
				colour, ok := f.locked.Get(f.key(x, y))
				if !ok {
					continue
				}
				if !yield(Point{x, y}, colour) {
					return
				}
			}
		}
	}
}

// LockedCount returns the number of locked cells.
func (f *Playfield) LockedCount() int {
	return f.locked.Len()
}

// Reset removes all locked cells and active pieces.
func (f *Playfield) Reset() {
	f.locked.Clear()
	f.active = f.active[:0]
}

// Render emits every locked cell as a filled square.
func (f *Playfield) Render(r Renderer, size float64) {
	for at, colour := range f.Locked() {
		r.DrawCell(Vec{X: float64(at.X), Y: float64(at.Y)}, CellStyle{
			Colour: colour,
			Size:   size,
			Fill:   true,
			Stroke: true,
		})
	}
}

// String dumps the board: '#' locked, '@' active piece, '.' empty.
func (f *Playfield) String() string {
	active := make(map[Point]bool)
	for _, p := range f.active {
		for c := range p.FilledCells() {
			active[c.Abs] = true
		}
	}

	var b strings.Builder
	for y := 0; y < f.height; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < f.width; x++ {
			switch {
			case f.locked.Has(f.key(x, y)):
				b.WriteByte('#')
			case active[Point{x, y}]:
				b.WriteByte('@')
			default:
				b.WriteByte('.')
			}
		}
	}
	return b.String()
}
