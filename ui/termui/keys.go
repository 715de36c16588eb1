package termui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/plus3/handtris/tetris"
)

// Action is a frontend-level key action that is not a game command.
type Action uint8

const (
	NoAction Action = iota
	Quit
	Restart
)

// CommandForKey maps a key event to a game command.
func CommandForKey(ev *tcell.EventKey) (tetris.Command, bool) {
	switch ev.Key() {
	case tcell.KeyLeft:
		return tetris.MoveLeft, true
	case tcell.KeyRight:
		return tetris.MoveRight, true
	case tcell.KeyDown:
		return tetris.SoftDrop, true
	case tcell.KeyUp:
		return tetris.Rotate, true
	case tcell.KeyRune:
		if ev.Rune() == ' ' {
			return tetris.HardDrop, true
		}
	}
	return 0, false
}

// ActionForKey maps a key event to a frontend action.
func ActionForKey(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return Quit
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return Quit
		case 'r', 'R':
			return Restart
		}
	}
	return NoAction
}
