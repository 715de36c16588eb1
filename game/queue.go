package game

import (
	"sync"

	"github.com/plus3/handtris/tetris"
)

// InputQueue buffers commands pushed by input goroutines until the next
// frame drains them on the game loop.
type InputQueue struct {
	mu      sync.Mutex
	pending []tetris.Command
}

func NewInputQueue() *InputQueue {
	return &InputQueue{}
}

// Push appends cmd. It is safe to call from any goroutine.
func (q *InputQueue) Push(cmd tetris.Command) {
	q.mu.Lock()
	q.pending = append(q.pending, cmd)
	q.mu.Unlock()
}

// Len returns the number of queued commands.
func (q *InputQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Drain removes every queued command and calls fn for each in push order.
// fn runs without the lock held.
func (q *InputQueue) Drain(fn func(tetris.Command)) int {
	q.mu.Lock()
	pending := q.pending
	q.pending = nil
	q.mu.Unlock()

	for _, cmd := range pending {
		fn(cmd)
	}
	return len(pending)
}

// Clear drops every queued command.
func (q *InputQueue) Clear() {
	q.mu.Lock()
	q.pending = nil
	q.mu.Unlock()
}
