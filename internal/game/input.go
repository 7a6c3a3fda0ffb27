package game

import (
	"github.com/gdamore/tcell/v2"

	"simon-says/internal/simon"
)

// Action represents a player-requested game action.
type Action uint8

const (
	ActionNone Action = iota
	ActionBlue
	ActionGreen
	ActionYellow
	ActionRed
	ActionQuit
)

// keyToAction maps a tcell key event to a game action.
// Arrows follow the board clockwise from the top left; the numpad corners
// 7/9/1/3 match the pad positions.
func keyToAction(ev *tcell.EventKey) Action {
	// Named keys.
	switch ev.Key() {
	case tcell.KeyUp:
		return ActionGreen
	case tcell.KeyRight:
		return ActionRed
	case tcell.KeyDown:
		return ActionBlue
	case tcell.KeyLeft:
		return ActionYellow
	case tcell.KeyEscape:
		return ActionQuit
	}

	// Rune keys.
	switch ev.Rune() {
	case 'b', 'B', '3':
		return ActionBlue
	case 'g', 'G', '7':
		return ActionGreen
	case 'y', 'Y', '1':
		return ActionYellow
	case 'r', 'R', '9':
		return ActionRed
	case 'q', 'Q':
		return ActionQuit
	}
	return ActionNone
}

// actionToColor converts a pad action to its color.
func actionToColor(a Action) (simon.Color, bool) {
	switch a {
	case ActionBlue:
		return simon.Blue, true
	case ActionGreen:
		return simon.Green, true
	case ActionYellow:
		return simon.Yellow, true
	case ActionRed:
		return simon.Red, true
	}
	return 0, false
}
