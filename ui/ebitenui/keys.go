package ebitenui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/handtris/tetris"
)

type binding struct {
	key     ebiten.Key
	command tetris.Command
	repeat  bool
}

var defaultBindings = []binding{
	{ebiten.KeyArrowLeft, tetris.MoveLeft, true},
	{ebiten.KeyArrowRight, tetris.MoveRight, true},
	{ebiten.KeyArrowDown, tetris.SoftDrop, true},
	{ebiten.KeyArrowUp, tetris.Rotate, false},
	{ebiten.KeySpace, tetris.HardDrop, false},
}

// Keymap turns key press durations into commands. Repeating keys fire on
// the first tick, then every Interval ticks once held for Delay ticks.
type Keymap struct {
	Delay    int
	Interval int

	bindings []binding
}

func NewKeymap() *Keymap {
	return &Keymap{Delay: 12, Interval: 3, bindings: defaultBindings}
}

func (k *Keymap) fires(ticks int, repeat bool) bool {
	if ticks == 1 {
		return true
	}
	if !repeat || ticks < k.Delay {
		return false
	}
	return (ticks-k.Delay)%k.Interval == 0
}

// Commands returns the commands for the current tick. pressed reports how
// many ticks a key has been held, 0 when released; production code passes
// inpututil.KeyPressDuration.
func (k *Keymap) Commands(pressed func(ebiten.Key) int) []tetris.Command {
	var commands []tetris.Command
	for _, b := range k.bindings {
		if k.fires(pressed(b.key), b.repeat) {
			commands = append(commands, b.command)
		}
	}
	return commands
}
