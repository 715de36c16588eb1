package tetris

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrOutOfBounds = errors.New("tetris: piece outside board")
	ErrOverlap     = errors.New("tetris: piece overlaps locked cells")
)

// Snapshot is a consistent, self-contained copy of the engine state for
// render and debug collaborators.
type Snapshot struct {
	Board        *Board
	Current      Piece
	Next         Piece
	GhostY       int
	Score        int
	Lines        int
	Level        int
	DropInterval time.Duration
	State        State
}

// Snapshot copies the current state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Board:        e.board.Clone(),
		Current:      e.current.Clone(),
		Next:         e.next.Clone(),
		GhostY:       e.landingY(),
		Score:        e.score,
		Lines:        e.lines,
		Level:        e.level,
		DropInterval: e.dropInterval,
		State:        e.state,
	}
}

// Validate checks that an active falling piece neither leaves the board nor
// overlaps locked cells. A game that is Over may hold a colliding spawn.
func (s Snapshot) Validate() error {
	if s.State == Over {
		return nil
	}
	var err error
	s.Current.Cells(func(x, y int) {
		if err != nil {
			return
		}
		switch {
		case x < 0 || x >= s.Board.Cols() || y >= s.Board.Rows():
			err = fmt.Errorf("%w: %s at (%d,%d)", ErrOutOfBounds, s.Current.Kind, x, y)
		case s.Board.IsOccupied(x, y):
			err = fmt.Errorf("%w: %s at (%d,%d)", ErrOverlap, s.Current.Kind, x, y)
		}
	})
	return err
}

// Grid returns the board with the current piece drawn over it, as rows of
// cells. Sub-cells above the board are omitted.
func (s Snapshot) Grid() [][]Cell {
	grid := make([][]Cell, s.Board.Rows())
	for y := range grid {
		grid[y] = make([]Cell, s.Board.Cols())
		for x := range grid[y] {
			grid[y][x] = s.Board.Cell(x, y)
		}
	}
	if s.State == Active {
		cell := Filled(s.Current.Kind)
		s.Current.Cells(func(x, y int) {
			if y >= 0 && y < len(grid) && x >= 0 && x < len(grid[y]) {
				grid[y][x] = cell
			}
		})
	}
	return grid
}
