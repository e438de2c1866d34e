// Package loop drives a simulation one display frame at a time.
//
// A Loop does not own a timer. The host delivers frames, either by calling
// Step from its own frame callback or by handing a Ticker to Run, and every
// frame runs the tick callback synchronously to completion.
package loop

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

var (
	ErrNotIdle    = errors.New("loop: not idle")
	ErrNotRunning = errors.New("loop: not running")
)

// TickFunc is called once per frame with the loop it belongs to.
type TickFunc func(*Loop)

// Option configures a Loop.
type Option func(*Loop)

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(l *Loop) { l.clock = c }
}

// WithInit registers fn to run once, on Start, before the first frame.
func WithInit(fn func(*Loop)) Option {
	return func(l *Loop) { l.init = fn }
}

// WithViewport connects a viewport provider to the surface it sizes.
func WithViewport(provider ViewportProvider, surface Surface) Option {
	return func(l *Loop) {
		l.provider = provider
		l.surface = surface
	}
}

const historySize = 120

// Loop measures frame deltas and play time around a tick callback.
type Loop struct {
	tick     TickFunc
	init     func(*Loop)
	clock    Clock
	provider ViewportProvider
	surface  Surface

	state            State
	lastFrameTime    time.Time
	delta            time.Duration
	totalTimePlaying time.Duration
	frameCount       uint64
	overhead         time.Duration
	viewport         Viewport
	resizePending    atomic.Bool

	stats statsInternal
}

// New creates an idle loop that calls tick on every frame.
func New(tick TickFunc, opts ...Option) *Loop {
	l := &Loop{
		tick:  tick,
		clock: SystemClock{},
	}
	for _, opt := range opts {
		opt(l)
	}
	l.stats.reset()
	return l
}

// Start runs the init hook, sizes the surface and enters Running. It fails
// with ErrNotIdle unless the loop is Idle.
func (l *Loop) Start() error {
	if l.state != Idle {
		return ErrNotIdle
	}

	if l.init != nil {
		l.init(l)
	}
	l.resizePending.Store(false)
	l.Resize()

	l.lastFrameTime = l.clock.Now()
	l.state = Running
	return nil
}

// Step runs a single frame at now. It does nothing unless the loop is
// Running or Paused. Missed frames are not replayed; the next delta simply
// covers the gap.
func (l *Loop) Step(now time.Time) {
	if l.state != Running && l.state != Paused {
		return
	}

	if l.resizePending.Swap(false) {
		l.Resize()
	}

	l.delta = now.Sub(l.lastFrameTime)
	l.lastFrameTime = now

	if l.tick != nil {
		l.tick(l)
	}

	l.overhead = max(l.clock.Now().Sub(now), 0)
	l.frameCount++
	l.stats.record(l.delta, l.overhead)
}

// Run steps the loop once for every frame t delivers until ctx is done or
// the loop is stopped. It returns nil after Stop and ctx.Err() on
// cancellation, which also stops the loop.
func (l *Loop) Run(ctx context.Context, t Ticker) error {
	if l.state != Running && l.state != Paused {
		return ErrNotRunning
	}
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			l.state = Stopped
			return ctx.Err()
		case <-t.C():
			l.Step(l.clock.Now())
		}

		if l.state == Stopped {
			return nil
		}
	}
}

// LogTimePlaying adds the current frame delta to the play time. Play time
// only moves when the tick calls this.
func (l *Loop) LogTimePlaying() {
	l.totalTimePlaying += l.delta
}

// CurrentTime is the accumulated play time.
func (l *Loop) CurrentTime() time.Duration {
	return l.totalTimePlaying
}

// Pause moves a running loop to Paused. Frames keep running.
func (l *Loop) Pause() {
	if l.state == Running {
		l.state = Paused
	}
}

// Resume moves a paused loop back to Running.
func (l *Loop) Resume() {
	if l.state == Paused {
		l.state = Running
	}
}

// Stop ends the loop. Only Reset leaves Stopped.
func (l *Loop) Stop() {
	if l.state != Idle {
		l.state = Stopped
	}
}

// Reset returns the loop to Idle and clears all counters.
func (l *Loop) Reset() {
	l.state = Idle
	l.lastFrameTime = time.Time{}
	l.delta = 0
	l.totalTimePlaying = 0
	l.frameCount = 0
	l.overhead = 0
	l.stats.reset()
}

// Resize applies the provider's viewport to the surface.
func (l *Loop) Resize() {
	if l.provider == nil {
		return
	}
	l.viewport = l.provider.Viewport()
	if l.surface != nil {
		l.surface.SetSize(l.viewport)
	}
}

// RequestResize asks for Resize to run at the start of the next frame. It
// is safe to call from any goroutine.
func (l *Loop) RequestResize() {
	l.resizePending.Store(true)
}

// State is the current lifecycle state.
func (l *Loop) State() State { return l.state }

// Delta is the time between the last two frames.
func (l *Loop) Delta() time.Duration { return l.delta }

// FrameCount is the number of frames stepped since Start or Reset.
func (l *Loop) FrameCount() uint64 { return l.frameCount }

// Overhead is how long the last tick took to run.
func (l *Loop) Overhead() time.Duration { return l.overhead }

// Viewport is the size last applied by Resize.
func (l *Loop) Viewport() Viewport { return l.viewport }

// LastFrameTime is the timestamp of the last frame.
func (l *Loop) LastFrameTime() time.Time { return l.lastFrameTime }

// Clock is the clock the loop reads.
func (l *Loop) Clock() Clock { return l.clock }
