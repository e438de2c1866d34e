package loop_test

import (
	"fmt"
	"time"

	"github.com/plus3/tilefall/loop"
)

func ExampleLoop() {
	clock := loop.NewManualClock(time.Unix(0, 0))
	l := loop.New(func(l *loop.Loop) {
		l.LogTimePlaying()
		fmt.Printf("frame %d: delta=%v played=%v\n", l.FrameCount(), l.Delta(), l.CurrentTime())
	}, loop.WithClock(clock))

	if err := l.Start(); err != nil {
		panic(err)
	}
	l.Step(clock.Advance(16 * time.Millisecond))
	l.Step(clock.Advance(20 * time.Millisecond))
	// Output:
	// frame 0: delta=16ms played=16ms
	// frame 1: delta=20ms played=36ms
}

func ExampleScheduler() {
	s := loop.NewScheduler()
	s.Register(loop.Named("input", func(f *loop.Frame) {
		f.Defer(func() { fmt.Println("flush") })
		fmt.Println("input")
	}))
	s.Register(loop.Named("render", func(*loop.Frame) { fmt.Println("render") }))

	l := loop.New(s.Tick)
	_ = l.Start()
	l.Step(time.Now())
	// Output:
	// input
	// render
	// flush
}
