package game

import (
	"github.com/plus3/tilefall/loop"
	"github.com/plus3/tilefall/tile"
)

// TimeSystem advances play time while the game is running.
type TimeSystem struct {
	Session *Session
}

func (sys *TimeSystem) Execute(frame *loop.Frame) {
	if frame.Loop.State() != loop.Running || sys.Session.over {
		return
	}
	frame.Loop.LogTimePlaying()
}

// InputSystem applies queued actions to the falling piece.
type InputSystem struct {
	Session *Session
	buf     []Action
}

func (sys *InputSystem) Execute(frame *loop.Frame) {
	s := sys.Session
	sys.buf = s.drain(sys.buf[:0])

	for _, a := range sys.buf {
		switch a {
		case TogglePause:
			if frame.Loop.State() == loop.Paused {
				frame.Loop.Resume()
			} else {
				frame.Loop.Pause()
			}
			continue
		case Restart:
			s.Restart()
			return
		}

		p := s.current
		if p == nil || s.over || frame.Loop.State() != loop.Running {
			continue
		}

		switch a {
		case MoveLeft:
			p.MoveLeft(s)
		case MoveRight:
			p.MoveRight(s)
		case Rotate:
			p.Rotate(s)
		case SoftDrop:
			if p.MoveDown(s) {
				s.dropTimer = 0
			} else {
				s.cmds.Lock(frame, s, p)
			}
		case HardDrop:
			p.HardDrop(s)
		}
	}
}

// GravitySystem moves the falling piece down once per gravity interval and
// locks it when it cannot move.
type GravitySystem struct {
	Session *Session
}

func (sys *GravitySystem) Execute(frame *loop.Frame) {
	s := sys.Session
	if frame.Loop.State() != loop.Running || s.over || s.current == nil {
		return
	}

	interval := s.Gravity()
	s.dropTimer += frame.Delta
	if s.dropTimer < interval {
		return
	}
	s.dropTimer %= interval

	if !s.current.MoveDown(s) {
		s.cmds.Lock(frame, s, s.current)
	}
}

// AnimationSystem steps every active animation to the current play time.
type AnimationSystem struct {
	Session *Session
}

func (sys *AnimationSystem) Execute(frame *loop.Frame) {
	sys.Session.tasks.Step(frame.Now())
}

// FrameRenderer is a tile.Renderer that wants to know where frames begin and
// end.
type FrameRenderer interface {
	tile.Renderer
	BeginFrame(Snapshot)
	EndFrame()
}

// RenderSystem draws the session to its renderer, if it has one.
type RenderSystem struct {
	Session *Session
}

func (sys *RenderSystem) Execute(frame *loop.Frame) {
	s := sys.Session
	if s.renderer == nil {
		return
	}

	fr, framed := s.renderer.(FrameRenderer)
	if framed {
		fr.BeginFrame(s.Snapshot())
	}
	s.Render(s.renderer)
	if framed {
		fr.EndFrame()
	}
}
