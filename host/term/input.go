package term

import (
	"github.com/gdamore/tcell/v2"
	"github.com/plus3/tilefall/game"
)

// keyAction maps a key press to a game action. quit reports keys that end
// the session.
func keyAction(ev *tcell.EventKey) (action game.Action, ok, quit bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return 0, false, true
	case tcell.KeyLeft:
		return game.MoveLeft, true, false
	case tcell.KeyRight:
		return game.MoveRight, true, false
	case tcell.KeyDown:
		return game.SoftDrop, true, false
	case tcell.KeyUp:
		return game.Rotate, true, false
	case tcell.KeyRune:
	default:
		return 0, false, false
	}

	switch ev.Rune() {
	case 'q':
		return 0, false, true
	case 'a', 'h':
		return game.MoveLeft, true, false
	case 'd', 'l':
		return game.MoveRight, true, false
	case 's', 'j':
		return game.SoftDrop, true, false
	case 'w', 'k':
		return game.Rotate, true, false
	case ' ':
		return game.HardDrop, true, false
	case 'p':
		return game.TogglePause, true, false
	case 'r':
		return game.Restart, true, false
	}
	return 0, false, false
}
