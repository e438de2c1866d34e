package window

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/tilefall/tile"
)

const strokeWidth = 1

var outline = color.RGBA{0xff, 0xff, 0xff, 0xcc}

// screenRenderer draws cells as rectangles. Outlines are only drawn on the
// sides of a cell that have no filled neighbour in the same piece.
type screenRenderer struct {
	dst  *ebiten.Image
	size float64
}

func (r screenRenderer) DrawCell(at tile.Vec, style tile.CellStyle) {
	size := style.Size
	if size == 0 {
		size = r.size
	}
	x, y, s := float32(at.X*size), float32(at.Y*size), float32(size)

	if style.Fill {
		vector.DrawFilledRect(r.dst, x, y, s, s, style.Colour, false)
	}
	if !style.Stroke {
		return
	}

	c := outline
	if !style.Fill {
		c = style.Colour
	}
	for _, e := range edges(x, y, s, style.Sides) {
		vector.StrokeLine(r.dst, e[0], e[1], e[2], e[3], strokeWidth, c, false)
	}
}

// edges returns the outline segments of a cell as x0, y0, x1, y1 for each
// side without a neighbour, in the order top, right, bottom, left.
func edges(x, y, s float32, sides [4]bool) [][4]float32 {
	all := [4][4]float32{
		{x, y, x + s, y},
		{x + s, y, x + s, y + s},
		{x, y + s, x + s, y + s},
		{x, y, x, y + s},
	}
	out := make([][4]float32, 0, 4)
	for i, e := range all {
		if !sides[i] {
			out = append(out, e)
		}
	}
	return out
}
