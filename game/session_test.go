package game_test

import (
	"bytes"
	"log"
	"testing"
	"time"

	"github.com/plus3/handtris/config"
	"github.com/plus3/handtris/game"
	"github.com/plus3/handtris/gesture"
	"github.com/plus3/handtris/sched"
	"github.com/plus3/handtris/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequence(kinds ...tetris.Kind) game.Option {
	return game.WithRandomizer(func() tetris.Randomizer {
		return tetris.NewSequence(kinds...)
	})
}

func smallBoard() config.Config {
	cfg := config.Default()
	cfg.Board = config.Board{Rows: 4, Cols: 6}
	return cfg
}

func newSession(t *testing.T, cfg config.Config, opts ...game.Option) *game.Session {
	t.Helper()
	s, err := game.NewSession(cfg, opts...)
	require.NoError(t, err)
	return s
}

func TestNewSessionRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Board.Cols = 0

	_, err := game.NewSession(cfg)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestKeyboardInput(t *testing.T) {
	s := newSession(t, config.Default(), sequence(tetris.O))
	require.Equal(t, 4, s.Engine().Current().X)

	for range 6 {
		s.Input.Push(tetris.MoveLeft)
	}
	assert.Equal(t, 6, s.Input.Len())

	s.Update(time.Millisecond)

	assert.Equal(t, 0, s.Input.Len())
	assert.Equal(t, 0, s.Engine().Current().X)
	tally := s.Tally()
	assert.Equal(t, 4, tally.Applied)
	assert.Equal(t, 2, tally.Ignored, "moves past the wall are no-ops")
}

func TestAutoDrop(t *testing.T) {
	s := newSession(t, config.Default(), sequence(tetris.T))

	s.Update(500 * time.Millisecond)
	assert.Equal(t, 0, s.Engine().Current().Y, "exactly one interval does not drop")

	s.Update(time.Millisecond)
	assert.Equal(t, 1, s.Engine().Current().Y)
}

func TestGestureInput(t *testing.T) {
	s := newSession(t, config.Default(),
		sequence(tetris.O),
		game.WithSource(gesture.Static{X: 0.5, Detected: true}),
	)

	for range 30 {
		s.Update(10 * time.Millisecond)
	}

	// Sampled every 30ms; the held gesture is accepted at 30ms and 210ms.
	assert.Equal(t, 2, s.Engine().Current().X)
	assert.Equal(t, 2, s.Tally().GestureCommands)
	assert.Equal(t, uint64(10), s.Controller.Stats().Samples)
	assert.Equal(t, uint64(8), s.Controller.Stats().Debounced)
}

func TestGestureSourceSwap(t *testing.T) {
	s := newSession(t, config.Default(), sequence(tetris.O))
	assert.Equal(t, gesture.None, s.Source())

	s.SetSource(gesture.Static{X: 9.5, Detected: true})
	for range 3 {
		s.Update(10 * time.Millisecond)
	}
	assert.Equal(t, 5, s.Engine().Current().X)

	s.SetSource(nil)
	assert.Equal(t, gesture.None, s.Source())
}

func TestLockEventsAreTallied(t *testing.T) {
	cfg := smallBoard()
	cfg.Debug.LogEvents = true

	var buf bytes.Buffer
	s := newSession(t, cfg, sequence(tetris.O), game.WithLogger(log.New(&buf, "[game] ", 0)))

	for _, cmd := range []tetris.Command{
		tetris.MoveLeft, tetris.MoveLeft, tetris.HardDrop,
		tetris.HardDrop,
		tetris.MoveRight, tetris.MoveRight, tetris.HardDrop,
	} {
		s.Input.Push(cmd)
	}
	s.Update(time.Millisecond)

	assert.Equal(t, 300, s.Engine().Score())
	tally := s.Tally()
	assert.Equal(t, 3, tally.Locks)
	assert.Equal(t, 2, tally.Lines)
	assert.Equal(t, 300, tally.BestScore)
	assert.Contains(t, buf.String(), "[game] O cleared 2 row(s): +300 score=300 lines=2")
}

func TestEventLoggingDisabledByConfig(t *testing.T) {
	var buf bytes.Buffer
	s := newSession(t, smallBoard(), sequence(tetris.O), game.WithLogger(log.New(&buf, "", 0)))

	s.Input.Push(tetris.HardDrop)
	s.Update(time.Millisecond)

	assert.Equal(t, 1, s.Tally().Locks)
	assert.Empty(t, buf.String())
}

func TestGameOverAndRestart(t *testing.T) {
	s := newSession(t, smallBoard(),
		sequence(tetris.O),
		game.WithSource(gesture.Static{X: 0, Detected: true}),
	)
	first := s.Engine()

	s.Input.Push(tetris.HardDrop)
	s.Input.Push(tetris.HardDrop)
	s.Update(time.Millisecond)

	require.Equal(t, tetris.Over, first.State())
	assert.Equal(t, 1, s.Tally().GamesOver)

	for range 10 {
		s.Update(30 * time.Millisecond)
	}
	assert.Equal(t, 0, s.Tally().GestureCommands, "gestures are ignored once the game is over")

	s.Input.Push(tetris.MoveLeft)
	s.Restart()

	assert.NotSame(t, first, s.Engine())
	assert.Same(t, s.Engine(), sched.Lookup[tetris.Engine](s.Scheduler))
	assert.Equal(t, tetris.Active, s.Engine().State())
	assert.Equal(t, 0, s.Input.Len(), "restart drops pending input")
	assert.Equal(t, 2, s.Tally().Games)

	s.Input.Push(tetris.MoveRight)
	s.Update(time.Millisecond)
	assert.Equal(t, 3, s.Engine().Current().X, "systems act on the new engine")
}

func TestSeededSessionsAgree(t *testing.T) {
	cfg := config.Default()
	cfg.Randomizer = config.RandomizerBag

	a := newSession(t, cfg, game.WithSeed(42))
	b := newSession(t, cfg, game.WithSeed(42))

	for range 20 {
		require.Equal(t, a.Engine().Current().Kind, b.Engine().Current().Kind)
		require.Equal(t, a.Engine().Next().Kind, b.Engine().Next().Kind)
		a.Input.Push(tetris.HardDrop)
		b.Input.Push(tetris.HardDrop)
		a.Update(time.Millisecond)
		b.Update(time.Millisecond)
	}
}

func TestRegisterRunsAfterGameSystems(t *testing.T) {
	s := newSession(t, config.Default(), sequence(tetris.O))

	var seen int
	s.Register(sched.SystemFunc(func(frame *sched.Frame) {
		seen = s.Engine().Current().X
	}))

	s.Input.Push(tetris.MoveRight)
	s.Update(time.Millisecond)
	assert.Equal(t, 5, seen)
}

func TestNewFeed(t *testing.T) {
	cfg := config.Default()
	cfg.Gesture.SourceWidth = 640

	feed := game.NewFeed(cfg, nil)
	assert.Equal(t, 640.0, feed.SourceWidth)
	assert.Equal(t, 10.0, feed.TargetWidth)
	assert.Equal(t, 250*time.Millisecond, feed.StaleAfter)
	assert.Nil(t, feed.Logger)
}
