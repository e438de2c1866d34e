// Package debugui draws Dear ImGui panels for a running game session.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tilefall/loop"
)

// Panel renders one ImGui window.
type Panel interface {
	Render()
}

// PanelFunc adapts a function to Panel.
type PanelFunc func()

func (f PanelFunc) Render() { f() }

// InputState tracks whether Dear ImGui is consuming mouse or keyboard input.
// Hosts should skip game input while WantCaptureKeyboard is set.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// System defers every panel's render function to the end of the frame and
// refreshes InputState.
type System struct {
	Panels     []Panel
	InputState InputState
}

func (s *System) Add(panels ...Panel) {
	s.Panels = append(s.Panels, panels...)
}

func (s *System) Name() string { return "DebugUI" }

func (s *System) Execute(frame *loop.Frame) {
	io := imgui.CurrentIO()
	s.InputState.WantCaptureMouse = io.WantCaptureMouse()
	s.InputState.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for _, p := range s.Panels {
		frame.Defer(p.Render)
	}
}
