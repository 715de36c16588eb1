// Package game wires the engine, the gesture controller and the input queue
// into a scheduler. A Session is the composition root shared by every
// frontend.
package game

import (
	"log"
	"math/rand/v2"
	"time"

	"github.com/plus3/handtris/config"
	"github.com/plus3/handtris/gesture"
	"github.com/plus3/handtris/sched"
	"github.com/plus3/handtris/tetris"
)

// Session owns one player's games. It is driven by Update from a single
// goroutine; only Input may be used concurrently.
type Session struct {
	Config     config.Config
	Scheduler  *sched.Scheduler
	Input      *InputQueue
	Controller *gesture.Controller

	logger        *log.Logger
	rng           *rand.Rand
	newRandomizer func() tetris.Randomizer

	engine  *tetris.Engine
	gesture *GestureInput
	events  *Events
	tally   *Tally
}

// Option configures a Session.
type Option func(*Session)

// WithLogger enables lock event logging when the configuration asks for it.
func WithLogger(logger *log.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithSeed makes piece selection reproducible.
func WithSeed(seed uint64) Option {
	return func(s *Session) {
		s.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithRandomizer overrides piece selection. fn is called for every new game.
func WithRandomizer(fn func() tetris.Randomizer) Option {
	return func(s *Session) {
		s.newRandomizer = fn
	}
}

// WithSource sets the initial gesture source.
func WithSource(source gesture.Source) Option {
	return func(s *Session) {
		s.gesture.Source = source
	}
}

// NewSession validates cfg, starts the first game and registers the game
// systems: keyboard input, gesture sampling, auto-drop and event logging, in
// that order.
func NewSession(cfg config.Config, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		Config:    cfg,
		Scheduler: sched.New(),
		Input:     NewInputQueue(),
		Controller: gesture.NewController(
			float64(cfg.Board.Cols),
			cfg.Gesture.SideThreshold,
			cfg.Gesture.Debounce.Std(),
		),
		gesture: &GestureInput{Source: gesture.None},
		events:  &Events{},
		tally:   &Tally{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if s.newRandomizer == nil {
		s.newRandomizer = s.defaultRandomizer
	}

	sched.Provide(s.Scheduler, s.Input)
	sched.Provide(s.Scheduler, s.Controller)
	sched.Provide(s.Scheduler, s.gesture)
	sched.Provide(s.Scheduler, s.events)
	sched.Provide(s.Scheduler, s.tally)
	s.newGame()

	var eventLogger *log.Logger
	if cfg.Debug.LogEvents {
		eventLogger = s.logger
	}

	s.Scheduler.Register(&InputSystem{})
	s.Scheduler.Register(sched.Every(cfg.Gesture.SamplePeriod.Std(), &GestureSystem{}))
	s.Scheduler.Register(&DropSystem{})
	s.Scheduler.Register(&EventLogSystem{Logger: eventLogger})

	return s, nil
}

func (s *Session) defaultRandomizer() tetris.Randomizer {
	if s.Config.Randomizer == config.RandomizerBag {
		return tetris.NewBag(s.rng)
	}
	return tetris.NewUniform(s.rng)
}

func (s *Session) newGame() {
	engine := tetris.New(s.Config.Rules(), s.newRandomizer())
	engine.OnLock(func(ev tetris.LockEvent) {
		s.events.Locks = append(s.events.Locks, ev)
	})
	s.engine = engine
	s.tally.Games++
	sched.Provide(s.Scheduler, engine)
}

// Restart abandons the current game and starts a new one. Pending input and
// gesture debounce history are discarded.
func (s *Session) Restart() {
	s.Input.Clear()
	s.Controller.Debouncer().Reset()
	s.events.Locks = s.events.Locks[:0]
	s.newGame()
}

// Update advances the session by dt.
func (s *Session) Update(dt time.Duration) {
	s.Scheduler.Once(dt)
}

// Register adds a system that runs after the game systems every frame.
func (s *Session) Register(system sched.System) {
	s.Scheduler.Register(system)
}

// SetSource replaces the gesture source.
func (s *Session) SetSource(source gesture.Source) {
	if source == nil {
		source = gesture.None
	}
	s.gesture.Source = source
}

// Source returns the current gesture source.
func (s *Session) Source() gesture.Source {
	return s.gesture.Source
}

// Engine returns the engine of the current game.
func (s *Session) Engine() *tetris.Engine {
	return s.engine
}

// Snapshot copies the state of the current game.
func (s *Session) Snapshot() tetris.Snapshot {
	return s.engine.Snapshot()
}

// Tally returns the session counters.
func (s *Session) Tally() Tally {
	return *s.tally
}
