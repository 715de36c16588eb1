package sched

import "time"

// Periodic runs an inner system on its own fixed cadence, at most once per
// frame, independent of how often the scheduler ticks.
type Periodic struct {
	Period time.Duration
	System System

	accumulated time.Duration
}

// Every wraps system so it executes once per period of scheduler time.
func Every(period time.Duration, system System) *Periodic {
	return &Periodic{Period: period, System: system}
}

func (p *Periodic) Name() string {
	return "Every(" + p.Period.String() + ", " + systemName(p.System) + ")"
}

// Init forwards resource wiring to the wrapped system.
func (p *Periodic) Init(s *Scheduler) {
	s.wire(p.System)
}

func (p *Periodic) Execute(frame *Frame) {
	p.accumulated += frame.DeltaTime
	if p.accumulated < p.Period {
		return
	}
	p.accumulated -= p.Period
	if p.accumulated >= p.Period {
		// A long frame still yields a single run.
		p.accumulated = 0
	}
	p.System.Execute(frame)
}
