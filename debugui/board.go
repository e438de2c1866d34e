package debugui

import (
	"fmt"
	"image/color"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tilefall/game"
	"github.com/plus3/tilefall/loop"
	"github.com/plus3/tilefall/tile"
)

var (
	outline    = imgui.NewVec4(1, 1, 1, 0.8)
	background = imgui.NewVec4(0.08, 0.08, 0.1, 1)
)

// drawList renders cells into an ImGui window draw list, relative to origin.
type drawList struct {
	list   *imgui.DrawList
	origin imgui.Vec2
	scale  float32
}

func (d drawList) DrawCell(at tile.Vec, style tile.CellStyle) {
	lo, hi := cellRect(d.origin, at, d.scale)
	if style.Fill {
		d.list.AddRectFilled(lo, hi, imgui.ColorU32Vec4(vec4(style.Colour)))
	}
	if style.Stroke {
		c := outline
		if !style.Fill {
			c = vec4(style.Colour)
		}
		d.list.AddRect(lo, hi, imgui.ColorU32Vec4(c))
	}
}

func cellRect(origin imgui.Vec2, at tile.Vec, scale float32) (imgui.Vec2, imgui.Vec2) {
	x := origin.X + float32(at.X)*scale
	y := origin.Y + float32(at.Y)*scale
	return imgui.NewVec2(x, y), imgui.NewVec2(x+scale, y+scale)
}

func vec4(c color.RGBA) imgui.Vec4 {
	return imgui.NewVec4(float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, float32(c.A)/255)
}

// SessionPanel mirrors the board of a session and offers pause and restart
// controls.
type SessionPanel struct {
	Session *game.Session
	// CellSize is the on-screen size of one cell in the mirror.
	CellSize float32
}

func NewSessionPanel(s *game.Session) *SessionPanel {
	return &SessionPanel{Session: s, CellSize: 12}
}

func (p *SessionPanel) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 320), imgui.CondOnce, imgui.NewVec2(0, 0))
	if !imgui.BeginV("Session", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	s := p.Session
	snap := s.Snapshot()
	imgui.Text(fmt.Sprintf("State: %s", snap.State))
	imgui.Text(fmt.Sprintf("Score: %d  Lines: %d  Level: %d", snap.Score, snap.Lines, snap.Level))
	imgui.Text(fmt.Sprintf("Pieces: %d  Next: %s", snap.Pieces, snap.Next))
	imgui.Text(fmt.Sprintf("Gravity: %v  Animations: %d", snap.Gravity, snap.Animations))
	imgui.Text(fmt.Sprintf("Position: (%d, %d)  Draw: (%.2f, %.2f)",
		snap.Position.X, snap.Position.Y, snap.Draw.X, snap.Draw.Y))
	if snap.Over {
		imgui.TextColored(imgui.NewVec4(1, 0.3, 0.3, 1), "GAME OVER")
	}

	label := "Pause"
	if snap.State == loop.Paused {
		label = "Resume"
	}
	if imgui.Button(label) {
		s.Do(game.TogglePause)
	}
	imgui.SameLine()
	if imgui.Button("Restart") {
		s.Do(game.Restart)
	}

	imgui.Separator()
	board := s.Playfield()
	size := imgui.NewVec2(float32(board.Width())*p.CellSize, float32(board.Height())*p.CellSize)
	origin := imgui.CursorScreenPos()
	list := imgui.WindowDrawList()
	list.AddRectFilled(origin, imgui.NewVec2(origin.X+size.X, origin.Y+size.Y), imgui.ColorU32Vec4(background))
	s.Render(drawList{list: list, origin: origin, scale: p.CellSize})
	imgui.Dummy(size)

	imgui.End()
}
