// Package gesture turns a continuous hand-position signal into discrete
// movement commands.
//
// A Source reports where the tracked finger is, already normalized to game
// coordinates. A Controller maps the position against the board centre and a
// side threshold, and a Debouncer keeps a held gesture from repeating faster
// than its window allows.
package gesture

import "math"

// Signal is one reading of the hand tracker.
type Signal struct {
	X        float64 `json:"x"`
	Detected bool    `json:"isDetected"`
}

// Valid reports whether the signal carries a usable position inside
// [0, width].
func (s Signal) Valid(width float64) bool {
	if !s.Detected || math.IsNaN(s.X) || math.IsInf(s.X, 0) {
		return false
	}
	return s.X >= 0 && s.X <= width
}

// Source provides the most recent signal. Sample must not block.
type Source interface {
	Sample() Signal
}

// SourceFunc adapts a function to Source.
type SourceFunc func() Signal

func (f SourceFunc) Sample() Signal {
	return f()
}

// Static reports the same signal on every sample.
type Static Signal

func (s Static) Sample() Signal {
	return Signal(s)
}

// None is a source that never detects a hand.
var None Source = Static{}
