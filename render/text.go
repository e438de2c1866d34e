// Package render provides tile.Renderer implementations that do not need a
// display.
package render

import (
	"image/color"
	"math"
	"strings"

	"github.com/plus3/tilefall/tile"
)

const (
	emptyRune   = '.'
	strokeRune  = ':'
	unknownRune = '#'
)

var kindRunes = func() map[color.RGBA]rune {
	m := make(map[color.RGBA]rune, tile.NumKinds)
	for _, k := range tile.Kinds() {
		m[k.Colour()] = rune(k.String()[0])
	}
	return m
}()

// Text draws cells onto a fixed grid of runes. Filled cells show the letter
// of the catalog kind with the same colour, stroke-only cells show ':'.
// Cells are snapped to the nearest grid position; anything outside the grid
// is dropped.
type Text struct {
	width, height int
	cells         []rune
}

func NewText(width, height int) *Text {
	t := &Text{width: width, height: height, cells: make([]rune, width*height)}
	t.Clear()
	return t
}

func (t *Text) DrawCell(at tile.Vec, style tile.CellStyle) {
	x, y := int(math.Round(at.X)), int(math.Round(at.Y))
	if x < 0 || x >= t.width || y < 0 || y >= t.height {
		return
	}

	switch {
	case style.Fill:
		r, ok := kindRunes[style.Colour]
		if !ok {
			r = unknownRune
		}
		t.cells[y*t.width+x] = r
	case style.Stroke:
		if t.cells[y*t.width+x] == emptyRune {
			t.cells[y*t.width+x] = strokeRune
		}
	}
}

// Clear resets every cell to empty.
func (t *Text) Clear() {
	for i := range t.cells {
		t.cells[i] = emptyRune
	}
}

// At returns the rune at (x, y).
func (t *Text) At(x, y int) rune {
	return t.cells[y*t.width+x]
}

func (t *Text) String() string {
	var b strings.Builder
	for y := 0; y < t.height; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(t.cells[y*t.width : (y+1)*t.width]))
	}
	return b.String()
}

// Bytes returns String with a trailing newline.
func (t *Text) Bytes() []byte {
	return []byte(t.String() + "\n")
}
