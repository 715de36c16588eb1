package gesture

import (
	"time"

	"github.com/kamstrup/intmap"
	"github.com/plus3/handtris/tetris"
)

// Debouncer enforces a minimum interval between two accepted commands of the
// same kind. Kinds are tracked independently, so a left move never delays a
// following right move.
type Debouncer struct {
	window time.Duration
	last   *intmap.Map[tetris.Command, time.Duration]
}

// NewDebouncer creates a debouncer with the given window.
func NewDebouncer(window time.Duration) *Debouncer {
	return &Debouncer{
		window: window,
		last:   intmap.New[tetris.Command, time.Duration](8),
	}
}

// Window returns the configured debounce window.
func (d *Debouncer) Window() time.Duration {
	return d.window
}

// Allow reports whether cmd may be emitted at now and, if so, records it.
// A command is accepted when it is the first of its kind or when strictly
// more than the window has passed since the last accepted one.
func (d *Debouncer) Allow(cmd tetris.Command, now time.Duration) bool {
	if last, ok := d.last.Get(cmd); ok && now-last <= d.window {
		return false
	}
	d.last.Put(cmd, now)
	return true
}

// Last returns the time cmd was last accepted.
func (d *Debouncer) Last(cmd tetris.Command) (time.Duration, bool) {
	return d.last.Get(cmd)
}

// Reset forgets every accepted command.
func (d *Debouncer) Reset() {
	d.last.Clear()
}
