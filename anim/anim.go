// Package anim animates float64 fields of draw state over game time.
//
// An Interpolator holds only a weak reference to the object it animates, so a
// task that is no longer stepped never keeps its target alive. Once the target
// has been collected the task reports itself finished.
package anim

import (
	"time"
	"weak"
)

// Task is a time-driven animation step.
type Task interface {
	// Step advances the task to now and reports whether it has finished.
	Step(now time.Duration) bool
	Finished() bool
}

// Field selects the animated value inside a target.
type Field[T any] func(*T) *float64

// Interpolator moves one field of a target from the value it held at
// construction towards a final value over a fixed duration.
type Interpolator[T any] struct {
	ease     Easing
	target   weak.Pointer[T]
	field    Field[T]
	initial  float64
	final    float64
	start    time.Duration
	duration time.Duration
	finished bool
}

// New creates an interpolator for field of target. The initial value is read
// from the target once, here. A nil target yields an already finished task.
func New[T any](ease Easing, target *T, field Field[T], final float64, start, duration time.Duration) *Interpolator[T] {
	it := &Interpolator[T]{
		ease:     ease,
		field:    field,
		final:    final,
		start:    start,
		duration: duration,
	}
	if target == nil {
		it.finished = true
		return it
	}
	it.target = weak.Make(target)
	it.initial = *field(target)
	return it
}

// NewLinear is New with Linear easing.
func NewLinear[T any](target *T, field Field[T], final float64, start, duration time.Duration) *Interpolator[T] {
	return New(Linear, target, field, final, start, duration)
}

// NewEase is New with Ease easing.
func NewEase[T any](target *T, field Field[T], final float64, start, duration time.Duration) *Interpolator[T] {
	return New(Ease, target, field, final, start, duration)
}

// Step writes the eased value for now into the target. At or after
// start+duration the final value is written exactly and the task finishes.
func (it *Interpolator[T]) Step(now time.Duration) bool {
	if it.finished {
		return true
	}

	target := it.target.Value()
	if target == nil {
		it.finished = true
		return true
	}

	value := it.field(target)
	if it.duration <= 0 || now >= it.start+it.duration {
		*value = it.final
		it.finished = true
		return true
	}

	p := float64(now-it.start) / float64(it.duration)
	*value = it.ease(p, it.initial, it.final)
	return false
}

// Finished reports whether the task has completed. It never resets.
func (it *Interpolator[T]) Finished() bool {
	return it.finished
}

// Initial returns the value captured at construction.
func (it *Interpolator[T]) Initial() float64 {
	return it.initial
}

// Final returns the value the task converges to.
func (it *Interpolator[T]) Final() float64 {
	return it.final
}

// End returns the game time at which the task finishes.
func (it *Interpolator[T]) End() time.Duration {
	return it.start + it.duration
}
