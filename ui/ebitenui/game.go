// Package ebitenui is the windowed frontend: it renders a session with ebiten,
// maps the keyboard to commands and can use the mouse cursor as the gesture
// source.
package ebitenui

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/handtris/debugui"
	debugui_ebiten "github.com/plus3/handtris/debugui/ebiten"
	"github.com/plus3/handtris/game"
	"github.com/plus3/handtris/sched"
	"github.com/plus3/handtris/tetris"
)

var (
	backgroundColor = color.RGBA{16, 16, 24, 255}
	emptyColor      = color.RGBA{34, 34, 46, 255}
)

// Game implements ebiten.Game for a session.
type Game struct {
	Session  *game.Session
	Geometry Layout
	Keys     *Keymap

	backend *debugui_ebiten.ImguiBackend
	overlay *debugui.Overlay
	input   *debugui.InputState
}

// NewGame creates the frontend. backend may be nil to run without the debug
// overlay.
func NewGame(session *game.Session, backend *debugui_ebiten.ImguiBackend) *Game {
	g := &Game{
		Session:  session,
		Geometry: NewLayout(session.Config.Board.Rows, session.Config.Board.Cols),
		Keys:     NewKeymap(),
		backend:  backend,
		input:    &debugui.InputState{},
	}

	if backend != nil {
		sched.Provide(session.Scheduler, g.input)
		g.overlay = debugui.NewOverlay(
			debugui.NewEngineWindow(session),
			debugui.NewSchedulerWindow(session.Scheduler, 120),
			debugui.NewGestureWindow(session),
		)
		g.overlay.Hidden = !session.Config.Debug.Overlay
		session.Register(g.overlay)
	}
	return g
}

// CursorSource returns a gesture source following the mouse over the board.
func (g *Game) CursorSource() *CursorSource {
	return &CursorSource{Layout: g.Geometry, Cursor: ebiten.CursorPosition}
}

// Run opens the window and blocks until it is closed.
func (g *Game) Run(title string) error {
	if g.backend == nil {
		w, h := g.Geometry.Size()
		ebiten.SetWindowSize(w, h)
		ebiten.SetWindowTitle(title)
	}
	return ebiten.RunGame(g)
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	if g.backend != nil {
		g.backend.Frame(g.step)
	} else {
		g.step()
	}
	return nil
}

func (g *Game) step() {
	if !g.input.WantCaptureKeyboard {
		if inpututil.IsKeyJustPressed(ebiten.KeyF1) && g.overlay != nil {
			g.overlay.Toggle()
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyR) && g.Session.Engine().State() == tetris.Over {
			g.Session.Restart()
		}
		for _, cmd := range g.Keys.Commands(inpututil.KeyPressDuration) {
			g.Session.Input.Push(cmd)
		}
	}

	g.Session.Update(time.Second / time.Duration(ebiten.TPS()))
}

func rgba(c tetris.Color, alpha uint8) color.RGBA {
	r, g, b := c.RGB()
	return color.RGBA{r, g, b, alpha}
}

func (g *Game) drawCell(screen *ebiten.Image, x, y int, clr color.Color) {
	p := g.Geometry.Cell(x, y)
	size := float32(g.Geometry.CellSize)
	vector.DrawFilledRect(screen, float32(p.X), float32(p.Y), size-1, size-1, clr, false)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	snap := g.Session.Snapshot()

	for y, row := range snap.Grid() {
		for x, cell := range row {
			clr := color.Color(emptyColor)
			if cell.IsFilled() {
				clr = rgba(cell.Color(), 255)
			}
			g.drawCell(screen, x, y, clr)
		}
	}

	if snap.State == tetris.Active && snap.GhostY > snap.Current.Y {
		ghost := snap.Current
		ghost.Y = snap.GhostY
		ghost.Cells(func(x, y int) {
			if y >= 0 {
				g.drawCell(screen, x, y, rgba(ghost.Color(), 70))
			}
		})
	}

	g.drawPanel(screen, snap)

	if g.backend != nil {
		g.backend.Draw(screen)
	}
}

func (g *Game) drawPanel(screen *ebiten.Image, snap tetris.Snapshot) {
	origin := g.Geometry.PanelOrigin()
	ebitenutil.DebugPrintAt(screen, "NEXT", origin.X, origin.Y)

	size := float32(g.Geometry.CellSize) * 0.6
	shape := snap.Next.Shape
	for r := range shape {
		for c, filled := range shape[r] {
			if !filled {
				continue
			}
			x := float32(origin.X) + float32(c)*size
			y := float32(origin.Y+20) + float32(r)*size
			vector.DrawFilledRect(screen, x, y, size-1, size-1, rgba(snap.Next.Color(), 255), false)
		}
	}

	stats := fmt.Sprintf("SCORE %d\nLINES %d\nLEVEL %d", snap.Score, snap.Lines, snap.Level)
	ebitenutil.DebugPrintAt(screen, stats, origin.X, origin.Y+90)

	if snap.State == tetris.Over {
		board := g.Geometry.Board()
		vector.DrawFilledRect(screen, float32(board.Min.X), float32(board.Min.Y+board.Dy()/2-20),
			float32(board.Dx()), 40, color.RGBA{0, 0, 0, 200}, false)
		ebitenutil.DebugPrintAt(screen, "GAME OVER - press R", board.Min.X+10, board.Min.Y+board.Dy()/2-8)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.backend != nil {
		g.backend.Layout(outsideWidth, outsideHeight)
		return outsideWidth, outsideHeight
	}
	return g.Geometry.Size()
}
