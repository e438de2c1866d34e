package loop

//go:generate go tool stringer -type=State

// State is the lifecycle position of a Loop.
type State uint8

const (
	Idle State = iota
	Running
	Paused
	Stopped
)
