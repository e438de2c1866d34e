package game

//go:generate go tool stringer -type=Action,Event -output=enums_string.go

// Action is a player command. Actions are queued with Session.Do and applied
// at the start of the next frame.
type Action uint8

const (
	MoveLeft Action = iota
	MoveRight
	SoftDrop
	Rotate
	HardDrop
	TogglePause
	Restart
)

// Event is something a session reports to its observers.
type Event uint8

const (
	Spawned Event = iota
	Locked
	LinesCleared
	GameOver
)
