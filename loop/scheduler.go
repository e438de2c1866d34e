package loop

import (
	"reflect"
	"time"
)

// System is one stage of a frame.
type System interface {
	Execute(frame *Frame)
}

// Frame is passed to every system during one tick.
type Frame struct {
	Loop  *Loop
	Delta time.Duration
	// Number counts frames from zero.
	Number uint64

	defers []func()
}

// Now is the loop's accumulated play time.
func (f *Frame) Now() time.Duration {
	return f.Loop.CurrentTime()
}

// Defer queues fn to run after every system of the frame has executed.
func (f *Frame) Defer(fn func()) {
	f.defers = append(f.defers, fn)
}

func (f *Frame) flush() {
	for i := 0; i < len(f.defers); i++ {
		f.defers[i]()
	}
	clear(f.defers)
	f.defers = f.defers[:0]
}

type namedSystem struct {
	name string
	fn   func(*Frame)
}

func (s namedSystem) Execute(frame *Frame) { s.fn(frame) }
func (s namedSystem) Name() string         { return s.name }

// Named wraps fn as a System reported under name in the stats.
func Named(name string, fn func(*Frame)) System {
	return namedSystem{name: name, fn: fn}
}

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Scheduler runs systems in registration order. Its Tick method is a
// TickFunc.
type Scheduler struct {
	systems     []System
	systemStats []*systemStatsInternal
	frame       Frame
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Register appends a system. Systems implementing Name() string are reported
// under that name, others under their type name.
func (s *Scheduler) Register(system System) {
	if system == nil {
		panic("loop: Register called with nil system")
	}
	s.systems = append(s.systems, system)
	s.systemStats = append(s.systemStats, &systemStatsInternal{
		name:        systemName(system),
		minDuration: time.Duration(1<<63 - 1),
	})
}

func systemName(system System) string {
	if named, ok := system.(interface{ Name() string }); ok {
		return named.Name()
	}

	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	return systemType.Name()
}

// Tick executes every system once for the loop's current frame, then runs
// the functions deferred during it.
func (s *Scheduler) Tick(l *Loop) {
	s.frame.Loop = l
	s.frame.Delta = l.Delta()
	s.frame.Number = l.FrameCount()

	for i, system := range s.systems {
		start := time.Now()
		system.Execute(&s.frame)
		duration := time.Since(start)

		stats := s.systemStats[i]
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
	}

	s.frame.flush()
}

// Stats returns statistics about system execution.
func (s *Scheduler) Stats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Systems:     make([]SystemStats, len(s.systemStats)),
	}

	var totalExecs int64
	for i, internal := range s.systemStats {
		avgDuration := time.Duration(0)
		minDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
			minDuration = internal.minDuration
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
