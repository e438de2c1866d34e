package game

import (
	"github.com/plus3/tilefall/loop"
	"github.com/plus3/tilefall/tile"
)

// commands buffers structural board changes that must wait until every
// system of the frame has seen a consistent board.
type commands struct {
	locks  []*tile.Piece
	spawn  bool
	queued bool
}

func (c *commands) Lock(frame *loop.Frame, s *Session, p *tile.Piece) {
	c.locks = append(c.locks, p)
	c.spawn = true
	c.schedule(frame, s)
}

func (c *commands) Spawn(frame *loop.Frame, s *Session) {
	c.spawn = true
	c.schedule(frame, s)
}

func (c *commands) schedule(frame *loop.Frame, s *Session) {
	if c.queued {
		return
	}
	c.queued = true
	frame.Defer(func() { c.Flush(s) })
}

// Flush applies queued locks, clears completed lines and spawns the next
// piece, resetting the buffer state.
func (c *commands) Flush(s *Session) {
	locked := make(map[*tile.Piece]bool, len(c.locks))
	for _, p := range c.locks {
		if locked[p] {
			continue
		}
		locked[p] = true
		s.lock(p)
	}

	if c.spawn && !s.over {
		s.spawn()
	}

	c.locks = c.locks[:0]
	c.spawn = false
	c.queued = false
}

func (c *commands) Reset() {
	c.locks = c.locks[:0]
	c.spawn = false
	c.queued = false
}
