package tile

import "image/color"

// CellStyle describes how a single cell is drawn. Size is the edge length of
// one grid cell in the sink's units.
type CellStyle struct {
	Colour color.RGBA
	Size   float64
	Fill   bool
	Stroke bool
	// Sides marks filled neighbours (top, right, bottom, left) so a sink can
	// skip inner edges.
	Sides [4]bool
}

// Renderer receives cells in grid coordinates. Implementations scale by
// style.Size.
type Renderer interface {
	DrawCell(at Vec, style CellStyle)
}

// RenderOptions control Render. Offset is added to the draw position of every
// cell.
type RenderOptions struct {
	Size   float64
	Offset Vec
	Fill   bool
	Stroke bool
}

// Render emits every filled cell at its current draw position.
func (p *Piece) Render(r Renderer, opts RenderOptions) {
	for c := range p.FilledCells() {
		r.DrawCell(c.Draw.Add(opts.Offset), CellStyle{
			Colour: p.colour,
			Size:   opts.Size,
			Fill:   opts.Fill,
			Stroke: opts.Stroke,
			Sides:  p.Sides(c.Local),
		})
	}
}

// ProjectDown draws the outline of where a hard drop would land.
func (p *Piece) ProjectDown(b Board, r Renderer, size float64) {
	k := p.HeightAboveGround(b)
	p.Render(r, RenderOptions{
		Size: size,
		Offset: Vec{
			X: float64(p.pos.X) - p.draw.X,
			Y: float64(k+p.pos.Y) - p.draw.Y,
		},
		Stroke: true,
	})
}

// RenderPreview draws the shape at the origin scaled to fit a square of the
// given extent.
func (p *Piece) RenderPreview(r Renderer, extent float64) {
	size := extent / float64(max(p.shape.rows, p.shape.cols))
	for c := range p.FilledCells() {
		r.DrawCell(Vec{X: float64(c.Local.X), Y: float64(c.Local.Y)}, CellStyle{
			Colour: p.colour,
			Size:   size,
			Fill:   true,
			Sides:  p.Sides(c.Local),
		})
	}
}
