package loop

import "time"

// Stats summarises frame timing since Start or Reset.
type Stats struct {
	Frames      uint64
	MinDelta    time.Duration
	MaxDelta    time.Duration
	AvgDelta    time.Duration
	AvgOverhead time.Duration
	MaxOverhead time.Duration
	FPS         float64
	// History holds the most recent frame deltas, oldest first.
	History []time.Duration
}

type statsInternal struct {
	frames        uint64
	minDelta      time.Duration
	maxDelta      time.Duration
	totalDelta    time.Duration
	totalOverhead time.Duration
	maxOverhead   time.Duration
	history       [historySize]time.Duration
	historyPos    int
	historyLen    int
}

func (s *statsInternal) reset() {
	*s = statsInternal{minDelta: time.Duration(1<<63 - 1)}
}

func (s *statsInternal) record(delta, overhead time.Duration) {
	s.frames++
	s.totalDelta += delta
	s.totalOverhead += overhead

	if delta < s.minDelta {
		s.minDelta = delta
	}
	if delta > s.maxDelta {
		s.maxDelta = delta
	}
	if overhead > s.maxOverhead {
		s.maxOverhead = overhead
	}

	s.history[s.historyPos] = delta
	s.historyPos = (s.historyPos + 1) % historySize
	if s.historyLen < historySize {
		s.historyLen++
	}
}

// Stats returns frame timing statistics.
func (l *Loop) Stats() Stats {
	s := &l.stats
	stats := Stats{
		Frames:      s.frames,
		MaxDelta:    s.maxDelta,
		MaxOverhead: s.maxOverhead,
		History:     make([]time.Duration, 0, s.historyLen),
	}
	if s.frames == 0 {
		return stats
	}

	stats.MinDelta = s.minDelta
	stats.AvgDelta = s.totalDelta / time.Duration(s.frames)
	stats.AvgOverhead = s.totalOverhead / time.Duration(s.frames)
	if stats.AvgDelta > 0 {
		stats.FPS = float64(time.Second) / float64(stats.AvgDelta)
	}

	start := (s.historyPos - s.historyLen + historySize) % historySize
	for i := range s.historyLen {
		stats.History = append(stats.History, s.history[(start+i)%historySize])
	}
	return stats
}
