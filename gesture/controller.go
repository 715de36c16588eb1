package gesture

import (
	"time"

	"github.com/plus3/handtris/tetris"
)

// Zone is the horizontal region a signal falls into.
type Zone uint8

const (
	NoSignal Zone = iota
	Left
	Centre
	Right
)

func (z Zone) String() string {
	switch z {
	case Left:
		return "left"
	case Centre:
		return "centre"
	case Right:
		return "right"
	default:
		return "none"
	}
}

// Stats counts how samples were translated.
type Stats struct {
	Samples   uint64
	Accepted  uint64
	Debounced uint64
	Idle      uint64
	NoSignal  uint64

	LastSignal  Signal
	LastZone    Zone
	LastCommand tetris.Command
}

// Controller translates gesture samples into move commands. A position left
// of centre by more than SideThreshold*Width yields MoveLeft, right of centre
// by the same margin yields MoveRight, anything in between yields nothing.
type Controller struct {
	Width         float64
	SideThreshold float64

	debouncer *Debouncer
	stats     Stats
}

// NewController creates a controller for a game space of the given width.
func NewController(width, sideThreshold float64, debounce time.Duration) *Controller {
	return &Controller{
		Width:         width,
		SideThreshold: sideThreshold,
		debouncer:     NewDebouncer(debounce),
	}
}

// Debouncer returns the controller's debouncer.
func (c *Controller) Debouncer() *Debouncer {
	return c.debouncer
}

// Zone classifies a signal without side effects.
func (c *Controller) Zone(sig Signal) Zone {
	if !sig.Valid(c.Width) {
		return NoSignal
	}
	middle := c.Width / 2
	margin := c.Width * c.SideThreshold
	switch {
	case sig.X < middle-margin:
		return Left
	case sig.X > middle+margin:
		return Right
	default:
		return Centre
	}
}

// Translate maps one sample taken at now to at most one command. The boolean
// is false when the sample produced nothing, including when the command was
// debounced.
func (c *Controller) Translate(sig Signal, now time.Duration) (tetris.Command, bool) {
	c.stats.Samples++
	c.stats.LastSignal = sig

	zone := c.Zone(sig)
	c.stats.LastZone = zone

	var cmd tetris.Command
	switch zone {
	case Left:
		cmd = tetris.MoveLeft
	case Right:
		cmd = tetris.MoveRight
	case Centre:
		c.stats.Idle++
		return 0, false
	default:
		c.stats.NoSignal++
		return 0, false
	}

	if !c.debouncer.Allow(cmd, now) {
		c.stats.Debounced++
		return 0, false
	}

	c.stats.Accepted++
	c.stats.LastCommand = cmd
	return cmd, true
}

// Stats returns a copy of the translation counters.
func (c *Controller) Stats() Stats {
	return c.stats
}

// Reset clears counters and debounce history.
func (c *Controller) Reset() {
	c.stats = Stats{}
	c.debouncer.Reset()
}
