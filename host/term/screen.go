// Package term plays a session in a terminal using tcell.
package term

import (
	"fmt"
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/tilefall/game"
	"github.com/plus3/tilefall/loop"
	"github.com/plus3/tilefall/tile"
)

const (
	fillRune   = '█'
	ghostRune  = '░'
	borderRune = '│'
	floorRune  = '─'
	// Each board cell is two terminal columns wide.
	cellWidth = 2
	// panelWidth fits the longest panel line.
	panelWidth = 12
)

// Screen is a game.FrameRenderer that draws the board, a preview of the next
// piece and a score panel onto a tcell screen. Frames are shown on EndFrame.
type Screen struct {
	screen tcell.Screen
	width  int
	height int
	snap   game.Snapshot
	// Preview, when set, draws the next piece during EndFrame.
	Preview func(tile.Renderer)

	dx, dy int
	small  bool
}

// NewScreen wraps an initialised tcell screen for a board of the given
// size.
func NewScreen(screen tcell.Screen, width, height int) *Screen {
	return &Screen{screen: screen, width: width, height: height}
}

// SetSize implements loop.Surface. While the terminal is too small for the
// board and panel, frames show a notice instead.
func (s *Screen) SetSize(v loop.Viewport) {
	s.small = v.Width < 3+s.width*cellWidth+panelWidth || v.Height < s.height+1
}

func (s *Screen) BeginFrame(snap game.Snapshot) {
	s.snap = snap
	s.screen.Clear()

	frame := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for y := 0; y < s.height; y++ {
		s.screen.SetContent(0, y, borderRune, nil, frame)
		s.screen.SetContent(1+s.width*cellWidth, y, borderRune, nil, frame)
	}
	for x := 0; x < 2+s.width*cellWidth; x++ {
		s.screen.SetContent(x, s.height, floorRune, nil, frame)
	}
}

func (s *Screen) DrawCell(at tile.Vec, style tile.CellStyle) {
	x, y := int(math.Round(at.X))+s.dx, int(math.Round(at.Y))+s.dy
	if s.dx == 0 && (x < 0 || x >= s.width || y < 0 || y >= s.height) {
		return
	}

	r := fillRune
	if !style.Fill {
		r = ghostRune
	}
	st := tcell.StyleDefault.Foreground(rgb(style.Colour))
	for i := range cellWidth {
		s.screen.SetContent(1+x*cellWidth+i, y, r, nil, st)
	}
}

func (s *Screen) EndFrame() {
	panelX := 3 + s.width*cellWidth
	label := tcell.StyleDefault.Bold(true)

	if s.small {
		s.screen.Clear()
		s.text(0, 0, label, "enlarge terminal")
		s.screen.Show()
		return
	}

	s.text(panelX, 0, label, "NEXT")
	if s.Preview != nil {
		s.dx, s.dy = s.width+1, 1
		s.Preview(s)
		s.dx, s.dy = 0, 0
	}

	lines := []string{
		fmt.Sprintf("SCORE %d", s.snap.Score),
		fmt.Sprintf("LINES %d", s.snap.Lines),
		fmt.Sprintf("LEVEL %d", s.snap.Level),
	}
	for i, line := range lines {
		s.text(panelX, 6+i, tcell.StyleDefault, line)
	}

	switch {
	case s.snap.Over:
		s.text(panelX, 10, label.Foreground(tcell.ColorRed), "GAME OVER")
		s.text(panelX, 11, tcell.StyleDefault, "r to restart")
	case s.snap.State == loop.Paused:
		s.text(panelX, 10, label.Foreground(tcell.ColorYellow), "PAUSED")
	}

	s.screen.Show()
}

func (s *Screen) text(x, y int, style tcell.Style, str string) {
	for i, r := range []rune(str) {
		s.screen.SetContent(x+i, y, r, nil, style)
	}
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
