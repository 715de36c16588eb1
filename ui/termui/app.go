// Package termui is the terminal frontend built on tcell. It renders a
// session, maps keys to commands and can use the mouse pointer as the
// gesture source.
package termui

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/handtris/game"
	"github.com/plus3/handtris/gesture"
	"github.com/plus3/handtris/tetris"
)

// MouseSource treats the mouse pointer over the board as the tracked finger.
// It is fed by the event loop and sampled by the session on the same
// goroutine.
type MouseSource struct {
	Layout Layout

	x, y int
	seen bool
}

// Move records the pointer position.
func (m *MouseSource) Move(x, y int) {
	m.x, m.y, m.seen = x, y, true
}

func (m *MouseSource) Sample() gesture.Signal {
	if !m.seen {
		return gesture.Signal{}
	}
	x, ok := m.Layout.BoardColumn(m.x, m.y)
	if !ok {
		return gesture.Signal{}
	}
	return gesture.Signal{X: x, Detected: true}
}

// App runs a session in a terminal.
type App struct {
	Session       *game.Session
	Screen        tcell.Screen
	Renderer      *Renderer
	Mouse         *MouseSource
	FrameInterval time.Duration
}

func NewApp(screen tcell.Screen, session *game.Session) *App {
	layout := Layout{
		Left: 1,
		Top:  0,
		Rows: session.Config.Board.Rows,
		Cols: session.Config.Board.Cols,
	}
	return &App{
		Session:       session,
		Screen:        screen,
		Renderer:      &Renderer{Screen: screen, Layout: layout},
		Mouse:         &MouseSource{Layout: layout},
		FrameInterval: 16 * time.Millisecond,
	}
}

// UseMouse enables mouse tracking and makes the pointer the gesture source.
func (a *App) UseMouse() {
	a.Screen.EnableMouse(tcell.MouseMotionEvents)
	a.Session.SetSource(a.Mouse)
}

// HandleEvent applies one terminal event. It returns false when the user
// asked to quit.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ActionForKey(ev) {
		case Quit:
			return false
		case Restart:
			if a.Session.Engine().State() == tetris.Over {
				a.Session.Restart()
			}
			return true
		}
		if cmd, ok := CommandForKey(ev); ok {
			a.Session.Input.Push(cmd)
		}
	case *tcell.EventMouse:
		a.Mouse.Move(ev.Position())
	case *tcell.EventResize:
		a.Screen.Sync()
	}
	return true
}

// Run drives the session from a ticker until ctx is cancelled or the user
// quits.
func (a *App) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	go a.Screen.ChannelEvents(events, quit)
	defer close(quit)

	ticker := time.NewTicker(a.FrameInterval)
	defer ticker.Stop()

	a.Renderer.Draw(a.Session.Snapshot())
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !a.HandleEvent(ev) {
				return nil
			}
		case now := <-ticker.C:
			a.Session.Update(now.Sub(last))
			last = now
			a.Renderer.Draw(a.Session.Snapshot())
		}
	}
}
