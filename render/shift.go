package render

import "github.com/plus3/tilefall/tile"

type shifted struct {
	r      tile.Renderer
	dx, dy float64
}

// Shift returns a renderer that moves every cell by (dx, dy) in the units
// of style.Size, typically pixels.
func Shift(r tile.Renderer, dx, dy float64) tile.Renderer {
	return shifted{r: r, dx: dx, dy: dy}
}

func (s shifted) DrawCell(at tile.Vec, style tile.CellStyle) {
	if style.Size != 0 {
		at.X += s.dx / style.Size
		at.Y += s.dy / style.Size
	}
	s.r.DrawCell(at, style)
}
