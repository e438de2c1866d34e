package term

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/plus3/tilefall/game"
)

const sampleRate = beep.SampleRate(44100)

// Sound plays short sine tones for session events.
type Sound struct {
	rate beep.SampleRate
}

// NewSound initialises the speaker.
func NewSound() (*Sound, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	return &Sound{rate: sampleRate}, nil
}

// Observe is a session observer.
func (s *Sound) Observe(e game.Event, n int) {
	freq, d, ok := tone(e, n)
	if !ok {
		return
	}
	sine, err := generators.SineTone(s.rate, freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(s.rate.N(d), sine))
}

// Close stops anything still playing.
func (s *Sound) Close() {
	speaker.Clear()
}

// tone picks the frequency and length played for an event.
func tone(e game.Event, n int) (freq float64, d time.Duration, ok bool) {
	switch e {
	case game.Locked:
		return 220, 40 * time.Millisecond, true
	case game.LinesCleared:
		return 440 + 110*float64(n), 120 * time.Millisecond, true
	case game.GameOver:
		return 110, 400 * time.Millisecond, true
	}
	return 0, 0, false
}
