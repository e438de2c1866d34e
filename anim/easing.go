package anim

import "math"

// Easing maps normalized progress p onto a value between initial and final.
// p is not clamped; callers decide what happens outside [0, 1].
type Easing func(p, initial, final float64) float64

// Linear moves at constant speed from initial to final.
func Linear(p, initial, final float64) float64 {
	return initial + p*(final-initial)
}

// Ease is a sinusoidal ease-in/ease-out curve.
func Ease(p, initial, final float64) float64 {
	return initial + (math.Sin(math.Pi*(p-0.5))+1)*(final-initial)/2
}

// EasingByName resolves "linear" or "ease". The second result is false for
// any other name.
func EasingByName(name string) (Easing, bool) {
	switch name {
	case "linear", "":
		return Linear, true
	case "ease":
		return Ease, true
	default:
		return nil, false
	}
}
