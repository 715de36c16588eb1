package tetris

import (
	"fmt"
	"strings"
)

// Command is a discrete gameplay request.
type Command uint8

const (
	MoveLeft Command = iota + 1
	MoveRight
	Rotate
	SoftDrop
	HardDrop
)

var commandNames = map[Command]string{
	MoveLeft:  "moveLeft",
	MoveRight: "moveRight",
	Rotate:    "rotate",
	SoftDrop:  "softDrop",
	HardDrop:  "hardDrop",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Command(%d)", uint8(c))
}

// ParseCommand resolves a command by its case-insensitive name.
func ParseCommand(name string) (Command, error) {
	for cmd, n := range commandNames {
		if strings.EqualFold(n, name) {
			return cmd, nil
		}
	}
	return 0, fmt.Errorf("tetris: unknown command %q", name)
}
