package game_test

import (
	"sync"
	"testing"

	"github.com/plus3/handtris/game"
	"github.com/plus3/handtris/tetris"
	"github.com/stretchr/testify/assert"
)

func TestInputQueueOrder(t *testing.T) {
	q := game.NewInputQueue()
	q.Push(tetris.MoveLeft)
	q.Push(tetris.Rotate)
	q.Push(tetris.HardDrop)

	var got []tetris.Command
	n := q.Drain(func(cmd tetris.Command) {
		got = append(got, cmd)
	})

	assert.Equal(t, 3, n)
	assert.Equal(t, []tetris.Command{tetris.MoveLeft, tetris.Rotate, tetris.HardDrop}, got)
	assert.Equal(t, 0, q.Len())
}

func TestInputQueuePushDuringDrain(t *testing.T) {
	q := game.NewInputQueue()
	q.Push(tetris.MoveLeft)

	q.Drain(func(cmd tetris.Command) {
		q.Push(tetris.MoveRight)
	})

	assert.Equal(t, 1, q.Len(), "commands pushed while draining wait for the next frame")
}

func TestInputQueueConcurrentPush(t *testing.T) {
	q := game.NewInputQueue()

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				q.Push(tetris.SoftDrop)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 800, q.Len())
	q.Clear()
	assert.Equal(t, 0, q.Len())
}
