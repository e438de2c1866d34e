package window

import (
	"maps"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/tilefall/game"
)

// Keymap binds keys to actions.
type Keymap map[ebiten.Key]game.Action

func DefaultKeymap() Keymap {
	return Keymap{
		ebiten.KeyArrowLeft:  game.MoveLeft,
		ebiten.KeyA:          game.MoveLeft,
		ebiten.KeyArrowRight: game.MoveRight,
		ebiten.KeyD:          game.MoveRight,
		ebiten.KeyArrowDown:  game.SoftDrop,
		ebiten.KeyS:          game.SoftDrop,
		ebiten.KeyArrowUp:    game.Rotate,
		ebiten.KeyW:          game.Rotate,
		ebiten.KeySpace:      game.HardDrop,
		ebiten.KeyP:          game.TogglePause,
		ebiten.KeyR:          game.Restart,
	}
}

// Actions that auto-repeat while their key is held.
var repeatable = map[game.Action]bool{
	game.MoveLeft:  true,
	game.MoveRight: true,
	game.SoftDrop:  true,
}

// repeater turns held keys into actions: once on press, then every
// interval ticks after delay ticks.
type repeater struct {
	delay    int
	interval int
}

func newRepeater() *repeater {
	return &repeater{delay: 10, interval: 3}
}

func (r *repeater) fire(action game.Action, frames int) bool {
	switch {
	case frames <= 0:
		return false
	case frames == 1:
		return true
	case !repeatable[action] || frames <= r.delay:
		return false
	default:
		return (frames-r.delay)%r.interval == 0
	}
}

// actions returns the actions due this tick. pressed reports for how many
// ticks a key has been held.
func (r *repeater) actions(keys Keymap, pressed func(ebiten.Key) int) []game.Action {
	var out []game.Action
	for _, key := range slices.Sorted(maps.Keys(keys)) {
		if action := keys[key]; r.fire(action, pressed(key)) {
			out = append(out, action)
		}
	}
	return out
}

func pressedFrames(key ebiten.Key) int {
	return inpututil.KeyPressDuration(key)
}
