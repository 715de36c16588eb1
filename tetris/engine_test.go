package tetris

import (
	"errors"
	"math/rand/v2"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fillRow(b *Board, y int, except ...int) {
	for x := range b.Cols() {
		if !slices.Contains(except, x) {
			b.SetCell(x, y, Filled(T))
		}
	}
}

func newTestEngine(t *testing.T, kinds ...Kind) *Engine {
	t.Helper()
	e := New(DefaultRules(), NewSequence(kinds...))
	require.Equal(t, Active, e.State())
	return e
}

func TestSpawnCentersFirstPiece(t *testing.T) {
	e := newTestEngine(t, T, S)

	assert.Equal(t, T, e.Current().Kind)
	assert.Equal(t, S, e.Next().Kind)
	assert.Equal(t, 4, e.Current().X)
	assert.Equal(t, 0, e.Current().Y)
	assert.Equal(t, 1, e.Level())
	assert.Equal(t, 500*time.Millisecond, e.DropInterval())
}

func TestSpawnPromotesNextPiece(t *testing.T) {
	e := newTestEngine(t, T, S, Z)
	e.HardDrop()

	assert.Equal(t, S, e.Current().Kind)
	assert.Equal(t, Z, e.Next().Kind)
	assert.Equal(t, 4, e.Current().X)
	assert.Equal(t, 0, e.Current().Y)
}

func TestMoveLeftStopsAtWall(t *testing.T) {
	e := newTestEngine(t, O)

	moved := 0
	for range 20 {
		if e.MoveLeft() {
			moved++
		}
		assert.GreaterOrEqual(t, e.Current().X, 0)
	}
	assert.Equal(t, 4, moved)
	assert.Equal(t, 0, e.Current().X)
}

func TestMoveRightStopsAtWall(t *testing.T) {
	e := newTestEngine(t, O)
	for range 20 {
		e.MoveRight()
	}
	assert.Equal(t, 8, e.Current().X)
}

func TestMoveBlockedByLockedCell(t *testing.T) {
	e := newTestEngine(t, O)
	e.board.SetCell(3, 1, Filled(Z))

	assert.False(t, e.MoveLeft())
	assert.Equal(t, 4, e.Current().X)
}

func TestEngineRotate(t *testing.T) {
	t.Run("commits a legal rotation", func(t *testing.T) {
		e := newTestEngine(t, I)
		require.True(t, e.Rotate())
		assert.Equal(t, 4, e.Current().Shape.Rows())
		assert.Equal(t, 1, e.Current().Shape.Cols())
	})

	t.Run("blocked by locked content", func(t *testing.T) {
		e := newTestEngine(t, I)
		e.board.SetCell(4, 2, Filled(O))
		before := e.Current()

		assert.False(t, e.Rotate())
		assert.Equal(t, before, e.Current())
	})

	t.Run("no wall kick", func(t *testing.T) {
		e := newTestEngine(t, I)
		require.True(t, e.Rotate())
		for range 10 {
			e.MoveRight()
		}
		require.Equal(t, 9, e.Current().X)

		assert.False(t, e.Rotate())
		assert.Equal(t, 9, e.Current().X)
		assert.Equal(t, 1, e.Current().Shape.Cols())
	})
}

func TestSoftDropLocksWhenBlocked(t *testing.T) {
	e := newTestEngine(t, I, O)

	for range 19 {
		require.True(t, e.SoftDrop())
		require.Equal(t, I, e.Current().Kind)
	}
	assert.Equal(t, 19, e.Current().Y)

	assert.True(t, e.SoftDrop())
	assert.Equal(t, O, e.Current().Kind)
	assert.Equal(t, 0, e.Current().Y)
	for x := 4; x < 8; x++ {
		assert.True(t, e.board.IsOccupied(x, 19))
	}
	assert.Equal(t, 4, e.board.FilledCount())
}

func TestSingleLineClear(t *testing.T) {
	e := newTestEngine(t, I, O)
	fillRow(e.board, 19, 0, 1, 2, 3)

	var events []LockEvent
	e.OnLock(func(ev LockEvent) { events = append(events, ev) })

	for range 4 {
		require.True(t, e.MoveLeft())
	}
	require.Equal(t, 19, e.GhostY())
	e.HardDrop()

	assert.Equal(t, 100, e.Score())
	assert.Equal(t, 1, e.Lines())
	assert.Equal(t, 1, e.Level())
	assert.Equal(t, 0, e.board.FilledCount())

	require.Len(t, events, 1)
	assert.Equal(t, LockEvent{
		Kind:        I,
		RowsCleared: 1,
		Points:      100,
		Score:       100,
		Lines:       1,
		LevelBefore: 1,
		LevelAfter:  1,
	}, events[0])
}

func TestTetrisBonus(t *testing.T) {
	e := newTestEngine(t, I, O)
	for y := 16; y < 20; y++ {
		fillRow(e.board, y, 0)
	}

	require.True(t, e.Rotate())
	for range 4 {
		require.True(t, e.MoveLeft())
	}
	e.HardDrop()

	assert.Equal(t, 800, e.Score(), "four rows at once score 800, not 4x100")
	assert.Equal(t, 4, e.Lines())
	assert.Equal(t, 0, e.board.FilledCount())
}

func TestLevelProgression(t *testing.T) {
	rules := DefaultRules()
	rules.LinesPerLevel = 1
	e := New(rules, NewSequence(I, O))

	fillRow(e.board, 19, 0, 1, 2, 3)
	for range 4 {
		e.MoveLeft()
	}
	e.HardDrop()

	assert.Equal(t, 100, e.Score())
	assert.Equal(t, 2, e.Level())
	assert.Equal(t, 450*time.Millisecond, e.DropInterval())

	// The O piece fills the gap in two rows; points use the level before
	// the clear.
	require.Equal(t, O, e.Current().Kind)
	fillRow(e.board, 19, 4, 5)
	fillRow(e.board, 18, 4, 5)
	e.HardDrop()

	assert.Equal(t, 100+300*2, e.Score())
	assert.Equal(t, 3, e.Lines())
	assert.Equal(t, 4, e.Level())
	assert.Equal(t, 350*time.Millisecond, e.DropInterval())
}

func TestGameOverOnBlockedSpawn(t *testing.T) {
	e := newTestEngine(t, I, O)
	for y := 2; y < 20; y++ {
		fillRow(e.board, y, 0)
	}

	var last LockEvent
	e.OnLock(func(ev LockEvent) { last = ev })

	e.HardDrop()
	require.Equal(t, Over, e.State())
	assert.True(t, last.GameOver)

	before := e.Snapshot()
	assert.False(t, e.MoveLeft())
	assert.False(t, e.MoveRight())
	assert.False(t, e.Rotate())
	assert.False(t, e.SoftDrop())
	assert.False(t, e.HardDrop())
	assert.False(t, e.Tick(time.Minute))
	assert.Equal(t, before, e.Snapshot())
}

func TestGameOverWhenTopCenterFilled(t *testing.T) {
	e := newTestEngine(t, T, O)
	fillRow(e.board, 0, 0)
	fillRow(e.board, 1, 0)

	e.spawn()

	assert.Equal(t, Over, e.State())
	x := e.Current().X
	assert.False(t, e.MoveLeft())
	assert.False(t, e.Rotate())
	assert.Equal(t, x, e.Current().X)
}

func TestTick(t *testing.T) {
	e := newTestEngine(t, T)

	assert.False(t, e.Tick(500*time.Millisecond), "interval must be exceeded")
	assert.Equal(t, 0, e.Current().Y)

	assert.True(t, e.Tick(time.Millisecond))
	assert.Equal(t, 1, e.Current().Y)

	assert.False(t, e.Tick(500*time.Millisecond), "accumulator restarts at zero")
	assert.True(t, e.Tick(10*time.Millisecond))
	assert.Equal(t, 2, e.Current().Y)
}

func TestTickIndependentOfManualDrops(t *testing.T) {
	e := newTestEngine(t, T)
	e.Tick(400 * time.Millisecond)
	e.SoftDrop()

	assert.True(t, e.Tick(101*time.Millisecond))
	assert.Equal(t, 2, e.Current().Y)
}

func TestApply(t *testing.T) {
	e := newTestEngine(t, T)

	assert.True(t, e.Apply(MoveLeft))
	assert.Equal(t, 3, e.Current().X)
	assert.True(t, e.Apply(MoveRight))
	assert.True(t, e.Apply(SoftDrop))
	assert.Equal(t, 1, e.Current().Y)
	assert.True(t, e.Apply(Rotate))
	assert.False(t, e.Apply(Command(0)))
	assert.True(t, e.Apply(HardDrop))
	assert.Equal(t, 4, e.board.FilledCount())
}

func TestSnapshotIsACopy(t *testing.T) {
	e := newTestEngine(t, T)
	snap := e.Snapshot()
	snap.Board.SetCell(0, 19, Filled(I))
	snap.Current.Shape[0][0] = true

	assert.False(t, e.board.IsOccupied(0, 19))
	assert.False(t, e.Current().Shape[0][0])
	assert.NoError(t, e.Snapshot().Validate())
}

func TestSnapshotValidate(t *testing.T) {
	e := newTestEngine(t, O)
	snap := e.Snapshot()

	snap.Board.SetCell(4, 0, Filled(I))
	assert.True(t, errors.Is(snap.Validate(), ErrOverlap))

	snap = e.Snapshot()
	snap.Current.X = -1
	assert.True(t, errors.Is(snap.Validate(), ErrOutOfBounds))
}

func TestSnapshotGrid(t *testing.T) {
	e := newTestEngine(t, O)
	e.board.SetCell(0, 19, Filled(Z))

	grid := e.Snapshot().Grid()
	require.Len(t, grid, 20)
	assert.Equal(t, Filled(O), grid[0][4])
	assert.Equal(t, Filled(O), grid[1][5])
	assert.Equal(t, Filled(Z), grid[19][0])
	assert.Equal(t, Empty, grid[19][1])
}

func TestRandomPlayKeepsInvariants(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	e := New(DefaultRules(), NewUniform(rng))
	commands := []Command{MoveLeft, MoveRight, Rotate, SoftDrop, HardDrop}

	lastScore, lastLevel, lastInterval := 0, 1, e.DropInterval()
	for step := 0; step < 5000 && e.State() == Active; step++ {
		if rng.IntN(4) == 0 {
			e.Tick(time.Duration(rng.IntN(600)) * time.Millisecond)
		} else {
			e.Apply(commands[rng.IntN(len(commands))])
		}

		require.NoError(t, e.Snapshot().Validate(), "step %d", step)
		require.GreaterOrEqual(t, e.Score(), lastScore)
		require.GreaterOrEqual(t, e.Level(), lastLevel)
		require.LessOrEqual(t, e.DropInterval(), lastInterval)
		require.Equal(t, 20, e.board.Rows())
		lastScore, lastLevel, lastInterval = e.Score(), e.Level(), e.DropInterval()
	}
}
