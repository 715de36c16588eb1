// Package sched drives game systems from an explicit tick source. Game time
// advances only by the deltas passed to Once; Run derives them from a
// ticker, tests pass synthetic ones.
package sched

import (
	"context"
	"reflect"
	"strings"
	"time"
)

// Stats provides statistics about scheduler execution.
type Stats struct {
	SystemCount int
	Frames      uint64
	Elapsed     time.Duration
	Systems     []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

// timing accumulates the durations of one registered system.
type timing struct {
	name  string
	runs  int64
	min   time.Duration
	max   time.Duration
	total time.Duration
	last  time.Duration
}

func (t *timing) add(d time.Duration) {
	if t.runs == 0 || d < t.min {
		t.min = d
	}
	t.max = max(t.max, d)
	t.runs++
	t.total += d
	t.last = d
}

func (t *timing) stats() SystemStats {
	s := SystemStats{
		Name:           t.name,
		ExecutionCount: t.runs,
		MinDuration:    t.min,
		MaxDuration:    t.max,
		LastDuration:   t.last,
		TotalDuration:  t.total,
	}
	if t.runs > 0 {
		s.AvgDuration = t.total / time.Duration(t.runs)
	}
	return s
}

// Namer lets a system report its own name in Stats.
type Namer interface {
	Name() string
}

// Scheduler executes registered systems in order, once per frame, and owns
// the resources they share.
type Scheduler struct {
	systems   []System
	timings   []*timing
	resources map[reflect.Type]*resourceEntry
	commands  *Commands

	frames  uint64
	elapsed time.Duration
}

// New creates an empty scheduler.
func New() *Scheduler {
	return &Scheduler{
		systems:   make([]System, 0),
		resources: make(map[reflect.Type]*resourceEntry),
		commands:  newCommands(),
	}
}

func (s *Scheduler) resourceEntry(t reflect.Type) *resourceEntry {
	entry, ok := s.resources[t]
	if !ok {
		entry = &resourceEntry{}
		s.resources[t] = entry
	}
	return entry
}

// initializer is implemented by wrappers that wire resources of the
// systems they contain.
type initializer interface {
	Init(s *Scheduler)
}

// Register adds a system to the scheduler and initializes its Resource fields.
func (s *Scheduler) Register(system System) {
	s.wire(system)
	s.systems = append(s.systems, system)
	s.timings = append(s.timings, &timing{name: systemName(system)})
}

// wire lets wrappers initialize what they contain and binds the Resource
// fields of plain systems.
func (s *Scheduler) wire(system System) {
	if w, ok := system.(initializer); ok {
		w.Init(s)
		return
	}
	s.initializeResources(system)
}

func systemName(system System) string {
	if n, ok := system.(Namer); ok {
		return n.Name()
	}
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	return systemType.Name()
}

// initializeResources binds every exported Resource[T] field of system.
func (s *Scheduler) initializeResources(system System) {
	v := reflect.ValueOf(system)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return
	}

	for i := range v.NumField() {
		field := v.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}
		if !strings.HasPrefix(field.Type().Name(), "Resource[") {
			continue
		}

		initFn := field.Addr().MethodByName("Init")
		if !initFn.IsValid() {
			panic("sched: Resource field " + v.Type().Field(i).Name + " has no Init method")
		}
		initFn.Call([]reflect.Value{reflect.ValueOf(s)})
	}
}

// Once executes all registered systems once with the given delta time, then
// flushes deferred commands.
func (s *Scheduler) Once(dt time.Duration) {
	s.frames++
	s.elapsed += dt
	frame := newFrame(dt, s.elapsed, s.frames, s.commands)

	for i, system := range s.systems {
		start := time.Now()
		system.Execute(frame)
		s.timings[i].add(time.Since(start))
	}

	s.commands.Flush()
}

// Run executes all systems repeatedly at the given interval until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime)
			lastTime = now
			s.Once(dt)
		}
	}
}

// Elapsed returns the scheduler clock.
func (s *Scheduler) Elapsed() time.Duration {
	return s.elapsed
}

// Stats returns statistics about system execution.
func (s *Scheduler) Stats() *Stats {
	stats := &Stats{
		SystemCount: len(s.systems),
		Frames:      s.frames,
		Elapsed:     s.elapsed,
		Systems:     make([]SystemStats, len(s.timings)),
	}
	for i, t := range s.timings {
		stats.Systems[i] = t.stats()
	}
	return stats
}
