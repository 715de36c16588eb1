// Package tetris implements the game-state engine of a falling-block puzzle:
// board, tetrominoes, collision, line clears, scoring and level progression.
// The engine has no clock of its own; it advances when fed ticks and commands.
package tetris

import "time"

// State is the running state of a game.
type State uint8

const (
	Active State = iota
	Over
)

func (s State) String() string {
	if s == Over {
		return "over"
	}
	return "active"
}

// LockEvent describes one piece locking into the board.
type LockEvent struct {
	Kind        Kind
	RowsCleared int
	Points      int
	Score       int
	Lines       int
	LevelBefore int
	LevelAfter  int
	GameOver    bool
}

// Engine owns the board, the falling and next pieces, the counters and the
// drop timer. It is not safe for concurrent use; callers serialise commands
// and ticks, and read state between them.
type Engine struct {
	rules      Rules
	randomizer Randomizer
	board      *Board

	current Piece
	next    Piece
	hasNext bool

	score        int
	lines        int
	level        int
	dropInterval time.Duration
	dropElapsed  time.Duration
	state        State

	onLock []func(LockEvent)
}

// New starts a game under rules, spawning the first piece immediately.
func New(rules Rules, randomizer Randomizer) *Engine {
	e := &Engine{
		rules:      rules,
		randomizer: randomizer,
		board:      NewBoard(rules.Rows, rules.Cols),
		level:      1,
	}
	e.dropInterval = rules.IntervalFor(e.level)
	e.spawn()
	return e
}

// OnLock registers fn to be called after every lock, once scoring and the
// following spawn have been applied.
func (e *Engine) OnLock(fn func(LockEvent)) {
	e.onLock = append(e.onLock, fn)
}

// spawn promotes the preselected next piece (or draws one at game start),
// preselects a fresh next piece and centers the new current piece on row 0.
// A spawn that collides ends the game.
func (e *Engine) spawn() {
	if e.hasNext {
		e.current = e.next
	} else {
		e.current = newPiece(e.randomizer.Next())
	}
	e.next = newPiece(e.randomizer.Next())
	e.hasNext = true

	e.current.X = e.rules.Cols/2 - 1
	e.current.Y = 0

	if HasCollision(e.current.X, e.current.Y, e.current.Shape, e.board) {
		e.state = Over
	}
}

// MoveLeft shifts the current piece one column left if the target is free.
func (e *Engine) MoveLeft() bool {
	return e.shift(-1)
}

// MoveRight shifts the current piece one column right if the target is free.
func (e *Engine) MoveRight() bool {
	return e.shift(1)
}

func (e *Engine) shift(dx int) bool {
	if e.state != Active {
		return false
	}
	x := e.current.X + dx
	if HasCollision(x, e.current.Y, e.current.Shape, e.board) {
		return false
	}
	e.current.X = x
	return true
}

// Rotate turns the current piece clockwise in place. Blocked rotations
// leave the orientation unchanged; there are no wall kicks.
func (e *Engine) Rotate() bool {
	if e.state != Active {
		return false
	}
	rotated := RotateShape(e.current.Shape)
	if HasCollision(e.current.X, e.current.Y, rotated, e.board) {
		return false
	}
	e.current.Shape = rotated
	return true
}

// SoftDrop moves the current piece down one row, locking it when blocked.
// It reports whether state changed, which is always the case while Active.
func (e *Engine) SoftDrop() bool {
	if e.state != Active {
		return false
	}
	if !HasCollision(e.current.X, e.current.Y+1, e.current.Shape, e.board) {
		e.current.Y++
		return true
	}
	e.lock()
	return true
}

// HardDrop drops the current piece to its landing row and locks it.
func (e *Engine) HardDrop() bool {
	if e.state != Active {
		return false
	}
	e.current.Y = e.landingY()
	e.lock()
	return true
}

// Apply dispatches cmd to the matching operation.
func (e *Engine) Apply(cmd Command) bool {
	switch cmd {
	case MoveLeft:
		return e.MoveLeft()
	case MoveRight:
		return e.MoveRight()
	case Rotate:
		return e.Rotate()
	case SoftDrop:
		return e.SoftDrop()
	case HardDrop:
		return e.HardDrop()
	}
	return false
}

// Tick advances the drop timer by dt. When the accumulated time exceeds the
// current interval one soft drop is performed and the timer restarts from
// zero. It reports whether a drop happened.
func (e *Engine) Tick(dt time.Duration) bool {
	if e.state != Active {
		return false
	}
	e.dropElapsed += dt
	if e.dropElapsed <= e.dropInterval {
		return false
	}
	e.dropElapsed = 0
	return e.SoftDrop()
}

func (e *Engine) landingY() int {
	y := e.current.Y
	for !HasCollision(e.current.X, y+1, e.current.Shape, e.board) {
		y++
	}
	return y
}

func (e *Engine) lock() {
	locked := e.current.Kind
	e.board.lock(e.current)

	rows := e.board.ClearCompletedRows()
	levelBefore := e.level
	points := e.rules.Points(rows, e.level)
	if rows > 0 {
		e.score += points
		e.lines += rows
		e.level = e.rules.LevelFor(e.lines)
		e.dropInterval = e.rules.IntervalFor(e.level)
	}

	e.spawn()

	event := LockEvent{
		Kind:        locked,
		RowsCleared: rows,
		Points:      points,
		Score:       e.score,
		Lines:       e.lines,
		LevelBefore: levelBefore,
		LevelAfter:  e.level,
		GameOver:    e.state == Over,
	}
	for _, fn := range e.onLock {
		fn(event)
	}
}

// GhostY returns the row the current piece would land on if hard dropped.
func (e *Engine) GhostY() int {
	return e.landingY()
}

// Rules returns the rules the game was created with.
func (e *Engine) Rules() Rules {
	return e.rules
}

// State returns Active or Over.
func (e *Engine) State() State {
	return e.state
}

// Score returns the accumulated score.
func (e *Engine) Score() int {
	return e.score
}

// Lines returns the total rows cleared.
func (e *Engine) Lines() int {
	return e.lines
}

// Level returns the current level, starting at 1.
func (e *Engine) Level() int {
	return e.level
}

// DropInterval returns the current auto-drop interval.
func (e *Engine) DropInterval() time.Duration {
	return e.dropInterval
}

// Current returns a copy of the falling piece.
func (e *Engine) Current() Piece {
	return e.current.Clone()
}

// Next returns a copy of the preselected next piece.
func (e *Engine) Next() Piece {
	return e.next.Clone()
}

// Board returns a copy of the locked board.
func (e *Engine) Board() *Board {
	return e.board.Clone()
}
