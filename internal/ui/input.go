package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/diegok/pongish/internal/game"
)

// Direction represents paddle movement direction
type Direction int

const (
	DirNone Direction = 0
	DirUp   Direction = 1
	DirDown Direction = 2
)

// Sign is -1 for up and +1 for down, matching screen coordinates.
func (d Direction) Sign() float64 {
	switch d {
	case DirUp:
		return -1
	case DirDown:
		return 1
	}
	return 0
}

// KeyToMove maps a key to the paddle it moves: W/S drive the left paddle
// and the arrow keys drive the right one.
func KeyToMove(key tcell.Key, r rune) (game.Side, Direction, bool) {
	switch key {
	case tcell.KeyUp:
		return game.SideRight, DirUp, true
	case tcell.KeyDown:
		return game.SideRight, DirDown, true
	case tcell.KeyRune:
		switch r {
		case 'w', 'W':
			return game.SideLeft, DirUp, true
		case 's', 'S':
			return game.SideLeft, DirDown, true
		}
	}
	return game.SideLeft, DirNone, false
}

// IsQuitKey returns true if the key should quit the application
func IsQuitKey(key tcell.Key, r rune) bool {
	if key == tcell.KeyEscape || key == tcell.KeyCtrlC {
		return true
	}
	if key == tcell.KeyRune && (r == 'q' || r == 'Q') {
		return true
	}
	return false
}
