package game

import (
	"log"

	"github.com/plus3/handtris/gesture"
	"github.com/plus3/handtris/sched"
	"github.com/plus3/handtris/tetris"
)

// GestureInput holds the source sampled by GestureSystem. Frontends swap the
// source at runtime through Session.SetSource.
type GestureInput struct {
	Source gesture.Source
}

// Events collects lock events raised by the engine during a frame.
type Events struct {
	Locks []tetris.LockEvent
}

// Tally accumulates counters across every game of a session.
type Tally struct {
	Games     int
	GamesOver int
	Locks     int
	Lines     int
	Tetrises  int
	BestScore int

	Applied         int
	Ignored         int
	GestureCommands int
}

// InputSystem applies queued keyboard commands.
type InputSystem struct {
	Engine sched.Resource[tetris.Engine]
	Queue  sched.Resource[InputQueue]
	Tally  sched.Resource[Tally]
}

func (s *InputSystem) Execute(frame *sched.Frame) {
	engine, queue := s.Engine.Get(), s.Queue.Get()
	if engine == nil || queue == nil {
		return
	}
	tally := s.Tally.Get()

	queue.Drain(func(cmd tetris.Command) {
		changed := engine.Apply(cmd)
		if tally == nil {
			return
		}
		if changed {
			tally.Applied++
		} else {
			tally.Ignored++
		}
	})
}

// GestureSystem samples the gesture source and applies at most one move per
// run. Register it wrapped in sched.Every to give it its own cadence.
type GestureSystem struct {
	Engine     sched.Resource[tetris.Engine]
	Controller sched.Resource[gesture.Controller]
	Input      sched.Resource[GestureInput]
	Tally      sched.Resource[Tally]
}

func (s *GestureSystem) Execute(frame *sched.Frame) {
	engine, controller, input := s.Engine.Get(), s.Controller.Get(), s.Input.Get()
	if engine == nil || controller == nil || input == nil || input.Source == nil {
		return
	}
	if engine.State() == tetris.Over {
		return
	}

	cmd, ok := controller.Translate(input.Source.Sample(), frame.Elapsed)
	if !ok {
		return
	}
	engine.Apply(cmd)
	if tally := s.Tally.Get(); tally != nil {
		tally.GestureCommands++
	}
}

// DropSystem advances the engine's drop timer by the frame delta.
type DropSystem struct {
	Engine sched.Resource[tetris.Engine]
}

func (s *DropSystem) Execute(frame *sched.Frame) {
	if engine := s.Engine.Get(); engine != nil {
		engine.Tick(frame.DeltaTime)
	}
}

// EventLogSystem drains lock events into the tally and, when Logger is set,
// logs them.
type EventLogSystem struct {
	Events sched.Resource[Events]
	Tally  sched.Resource[Tally]
	Logger *log.Logger
}

func (s *EventLogSystem) Execute(frame *sched.Frame) {
	events := s.Events.Get()
	if events == nil || len(events.Locks) == 0 {
		return
	}
	tally := s.Tally.Get()

	for _, ev := range events.Locks {
		if tally != nil {
			tally.Locks++
			tally.Lines += ev.RowsCleared
			if ev.RowsCleared == 4 {
				tally.Tetrises++
			}
			tally.BestScore = max(tally.BestScore, ev.Score)
			if ev.GameOver {
				tally.GamesOver++
			}
		}
		s.log(ev)
	}
	events.Locks = events.Locks[:0]
}

func (s *EventLogSystem) log(ev tetris.LockEvent) {
	if s.Logger == nil {
		return
	}
	if ev.RowsCleared > 0 {
		s.Logger.Printf("%s cleared %d row(s): +%d score=%d lines=%d", ev.Kind, ev.RowsCleared, ev.Points, ev.Score, ev.Lines)
	}
	if ev.LevelAfter > ev.LevelBefore {
		s.Logger.Printf("level up: %d -> %d", ev.LevelBefore, ev.LevelAfter)
	}
	if ev.GameOver {
		s.Logger.Printf("game over: score=%d lines=%d level=%d", ev.Score, ev.Lines, ev.LevelAfter)
	}
}
