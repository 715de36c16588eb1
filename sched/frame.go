package sched

import "time"

// Frame carries the timing of one scheduler step.
type Frame struct {
	// DeltaTime is the time since the previous frame.
	DeltaTime time.Duration
	// Elapsed is the scheduler clock: the sum of every DeltaTime so far,
	// including this frame's.
	Elapsed  time.Duration
	Index    uint64
	Commands *Commands
}

func newFrame(dt, elapsed time.Duration, index uint64, commands *Commands) *Frame {
	return &Frame{
		DeltaTime: dt,
		Elapsed:   elapsed,
		Index:     index,
		Commands:  commands,
	}
}
