// Package game runs a playable falling-block session on top of the tile,
// anim and loop packages.
package game

import (
	"io"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/plus3/tilefall/anim"
	"github.com/plus3/tilefall/config"
	"github.com/plus3/tilefall/loop"
	"github.com/plus3/tilefall/tile"
)

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger for session lifecycle messages.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// WithRenderer makes the render system draw every frame to r.
func WithRenderer(r tile.Renderer) Option {
	return func(s *Session) { s.renderer = r }
}

// WithScoreSink forwards scoring events to sink in addition to the session's
// own tally.
func WithScoreSink(sink ScoreSink) Option {
	return func(s *Session) { s.sinks = append(s.sinks, sink) }
}

// WithObserver registers fn for session events.
func WithObserver(fn func(Event, int)) Option {
	return func(s *Session) { s.observers = append(s.observers, fn) }
}

// WithClock replaces the loop clock.
func WithClock(c loop.Clock) Option {
	return func(s *Session) { s.loopOpts = append(s.loopOpts, loop.WithClock(c)) }
}

// WithViewport connects the loop to a viewport provider and surface.
func WithViewport(provider loop.ViewportProvider, surface loop.Surface) Option {
	return func(s *Session) { s.loopOpts = append(s.loopOpts, loop.WithViewport(provider, surface)) }
}

// WithSequence replaces random piece selection with kinds, repeated in
// order.
func WithSequence(kinds ...tile.Kind) Option {
	return func(s *Session) { s.sequence = kinds }
}

// WithSystems appends systems that run after the session's own.
func WithSystems(systems ...loop.System) Option {
	return func(s *Session) { s.extra = append(s.extra, systems...) }
}

// Session is one game: a board, the falling piece, its animations and the
// loop that drives them. Apart from Do, a Session must only be used from
// the goroutine that steps its loop.
type Session struct {
	cfg       config.Config
	logger    *slog.Logger
	rng       *rand.Rand
	board     *tile.Playfield
	tasks     *anim.Set
	scheduler *loop.Scheduler
	loop      *loop.Loop
	loopOpts  []loop.Option
	extra     []loop.System
	renderer  tile.Renderer
	sinks     []ScoreSink
	observers []func(Event, int)
	cmds      commands
	sequence  []tile.Kind
	seqPos    int

	mu      sync.Mutex
	pending []Action

	current   *tile.Piece
	next      tile.Kind
	tally     Tally
	dropTimer time.Duration
	startedAt time.Duration
	pieces    int
	over      bool
}

// New validates cfg and builds an idle session. Call Start, or start the
// session's loop, to spawn the first piece.
func New(cfg config.Config, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		cfg:   cfg,
		board: tile.NewPlayfield(cfg.Board.Width, cfg.Board.Height),
		tasks: anim.NewSet(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	s.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	s.next = s.nextKind()

	s.scheduler = loop.NewScheduler()
	s.scheduler.Register(&TimeSystem{Session: s})
	s.scheduler.Register(&InputSystem{Session: s})
	s.scheduler.Register(&GravitySystem{Session: s})
	s.scheduler.Register(&AnimationSystem{Session: s})
	s.scheduler.Register(&RenderSystem{Session: s})
	for _, system := range s.extra {
		s.scheduler.Register(system)
	}

	s.loopOpts = append(s.loopOpts, loop.WithInit(func(*loop.Loop) { s.begin() }))
	s.loop = loop.New(s.scheduler.Tick, s.loopOpts...)

	s.logger.Debug("session created",
		"width", cfg.Board.Width,
		"height", cfg.Board.Height,
		"seed", seed)
	return s, nil
}

// Start starts the loop, spawning the first piece.
func (s *Session) Start() error {
	return s.loop.Start()
}

func (s *Session) begin() {
	s.startedAt = s.loop.CurrentTime()
	s.spawn()
}

// Do queues an action for the next frame. It is safe to call from any
// goroutine.
func (s *Session) Do(a Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, a)
}

func (s *Session) drain(buf []Action) []Action {
	s.mu.Lock()
	defer s.mu.Unlock()
	buf = append(buf, s.pending...)
	s.pending = s.pending[:0]
	return buf
}

// Board implements tile.Host.
func (s *Session) Board() tile.Board { return s.board }

// Now is the play time of the loop, the time base of every animation.
func (s *Session) Now() time.Duration { return s.loop.CurrentTime() }

// Animate implements tile.Host.
func (s *Session) Animate(task anim.Task) { s.tasks.Add(task) }

// Dropped implements tile.Host. It resets the gravity timer.
func (s *Session) Dropped(distance int) {
	s.dropTimer = 0
	s.tally.Dropped(distance)
	for _, sink := range s.sinks {
		sink.Dropped(distance)
	}
	s.logger.Debug("hard drop", "distance", distance)
}

func (s *Session) emit(e Event, n int) {
	for _, fn := range s.observers {
		fn(e, n)
	}
}

func (s *Session) nextKind() tile.Kind {
	if len(s.sequence) == 0 {
		return tile.RandomKind(s.rng)
	}
	k := s.sequence[s.seqPos%len(s.sequence)]
	s.seqPos++
	return k
}

func (s *Session) spawn() {
	p := tile.Spawn(s.board, s.next)
	p.SetAnimation(s.cfg.Timing.Animation, s.cfg.EasingFunc())
	kind := s.next
	s.next = s.nextKind()

	if p.DetectCollision(s.board, tile.Translate(0, 0)) {
		s.over = true
		s.current = p
		s.board.Add(p)
		s.logger.Debug("game over",
			"pieces", s.pieces,
			"score", s.tally.Score,
			"lines", s.tally.Lines)
		s.emit(GameOver, s.tally.Score)
		return
	}

	s.current = p
	s.board.Add(p)
	s.pieces++
	s.dropTimer = 0
	s.logger.Debug("spawned", "kind", kind, "x", p.Position().X, "next", s.next)
	s.emit(Spawned, int(kind))
}

func (s *Session) lock(p *tile.Piece) {
	cells := s.board.Lock(p)
	if p == s.current {
		s.current = nil
	}
	s.logger.Debug("locked", "cells", cells, "x", p.Position().X, "y", p.Position().Y)
	s.emit(Locked, cells)

	cleared := s.board.ClearLines()
	if len(cleared) == 0 {
		return
	}

	s.tally.LinesCleared(len(cleared))
	for _, sink := range s.sinks {
		sink.LinesCleared(len(cleared))
	}
	s.logger.Debug("lines cleared", "rows", cleared, "level", s.tally.Level)
	s.emit(LinesCleared, len(cleared))
}

// Restart clears the board and score and spawns a fresh piece. Queued
// actions are discarded.
func (s *Session) Restart() {
	s.mu.Lock()
	s.pending = s.pending[:0]
	s.mu.Unlock()

	s.board.Reset()
	s.tasks.Clear()
	s.tasks.Compact()
	s.cmds.Reset()
	s.tally.Reset()
	s.pieces = 0
	s.over = false
	s.current = nil
	s.loop.Resume()

	s.logger.Debug("restart")
	s.begin()
}

// Gravity is the current interval between automatic moves.
func (s *Session) Gravity() time.Duration {
	return s.cfg.GravityAt(s.tally.Level)
}

func (s *Session) Loop() *loop.Loop           { return s.loop }
func (s *Session) Scheduler() *loop.Scheduler { return s.scheduler }
func (s *Session) Playfield() *tile.Playfield { return s.board }
func (s *Session) Current() *tile.Piece       { return s.current }
func (s *Session) Next() tile.Kind            { return s.next }
func (s *Session) Config() config.Config      { return s.cfg }
func (s *Session) Tally() Tally               { return s.tally }
func (s *Session) Over() bool                 { return s.over }
func (s *Session) ActiveAnimations() int      { return s.tasks.Len() }

// Snapshot is a read model of a session for hosts and debug tools.
type Snapshot struct {
	State      loop.State
	Over       bool
	Score      int
	Lines      int
	Level      int
	Pieces     int
	Next       tile.Kind
	Elapsed    time.Duration
	Frames     uint64
	Animations int
	Locked     int
	Gravity    time.Duration
	Position   tile.Point
	Draw       tile.Vec
}

func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		State:      s.loop.State(),
		Over:       s.over,
		Score:      s.tally.Score,
		Lines:      s.tally.Lines,
		Level:      s.tally.Level,
		Pieces:     s.pieces,
		Next:       s.next,
		Elapsed:    s.loop.CurrentTime() - s.startedAt,
		Frames:     s.loop.FrameCount(),
		Animations: s.tasks.Len(),
		Locked:     s.board.LockedCount(),
		Gravity:    s.Gravity(),
	}
	if s.current != nil {
		snap.Position = s.current.Position()
		snap.Draw = s.current.DrawPosition()
	}
	return snap
}

// Render draws locked cells, the ghost projection and the falling piece.
func (s *Session) Render(r tile.Renderer) {
	size := float64(s.cfg.Display.CellSize)
	s.board.Render(r, size)
	if s.current == nil {
		return
	}
	if s.cfg.Display.Ghost && !s.over {
		s.current.ProjectDown(s.board, r, size)
	}
	s.current.Render(r, tile.RenderOptions{Size: size, Fill: true, Stroke: true})
}

// RenderPreview draws the next piece scaled into a square of extent.
func (s *Session) RenderPreview(r tile.Renderer, extent float64) {
	p := tile.NewPiece(s.next.Shape(), s.next.Colour(), tile.Point{})
	p.RenderPreview(r, extent)
}
