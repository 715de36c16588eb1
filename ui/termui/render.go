package termui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/handtris/gesture"
	"github.com/plus3/handtris/tetris"
)

// Each board cell is two terminal columns wide so blocks look square.
const cellWidth = 2

var (
	borderStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	textStyle   = tcell.StyleDefault
	overStyle   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

// Layout positions the board inside the terminal. The board's top-left
// cell is drawn at (Left+1, Top+1), inside a one-character border.
type Layout struct {
	Left int
	Top  int
	Rows int
	Cols int
}

// BoardColumn converts a terminal column into a board coordinate in
// [0, Cols]. ok is false when the column lies outside the board.
func (l Layout) BoardColumn(x, y int) (float64, bool) {
	minX := l.Left + 1
	maxX := minX + l.Cols*cellWidth
	if x < minX || x >= maxX || y < l.Top+1 || y >= l.Top+1+l.Rows {
		return 0, false
	}
	return gesture.Normalize(float64(x), float64(minX), float64(maxX), float64(l.Cols)), true
}

func (l Layout) panelX() int {
	return l.Left + 2 + l.Cols*cellWidth + 2
}

func colorOf(c tetris.Color) tcell.Color {
	r, g, b := c.RGB()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// Renderer draws snapshots onto a tcell screen.
type Renderer struct {
	Screen tcell.Screen
	Layout Layout
}

func (r *Renderer) text(x, y int, style tcell.Style, s string) {
	for i, ch := range []rune(s) {
		r.Screen.SetContent(x+i, y, ch, nil, style)
	}
}

func (r *Renderer) block(x, y int, style tcell.Style, glyph string) {
	l := r.Layout
	r.text(l.Left+1+x*cellWidth, l.Top+1+y, style, glyph)
}

// Draw renders the snapshot and shows the screen.
func (r *Renderer) Draw(snap tetris.Snapshot) {
	r.Screen.Clear()
	l := r.Layout

	right := l.Left + 1 + l.Cols*cellWidth
	bottom := l.Top + 1 + l.Rows
	for y := l.Top; y <= bottom; y++ {
		r.Screen.SetContent(l.Left, y, '│', nil, borderStyle)
		r.Screen.SetContent(right, y, '│', nil, borderStyle)
	}
	for x := l.Left; x <= right; x++ {
		r.Screen.SetContent(x, bottom, '─', nil, borderStyle)
	}
	r.Screen.SetContent(l.Left, bottom, '└', nil, borderStyle)
	r.Screen.SetContent(right, bottom, '┘', nil, borderStyle)

	if snap.State == tetris.Active && snap.GhostY > snap.Current.Y {
		ghost := snap.Current
		ghost.Y = snap.GhostY
		style := tcell.StyleDefault.Foreground(colorOf(ghost.Color()))
		ghost.Cells(func(x, y int) {
			if y >= 0 {
				r.block(x, y, style, "::")
			}
		})
	}

	for y, row := range snap.Grid() {
		for x, cell := range row {
			if cell.IsFilled() {
				r.block(x, y, tcell.StyleDefault.Background(colorOf(cell.Color())), "  ")
			}
		}
	}

	r.drawPanel(snap)
	r.Screen.Show()
}

func (r *Renderer) drawPanel(snap tetris.Snapshot) {
	px, py := r.Layout.panelX(), r.Layout.Top+1

	r.text(px, py, textStyle, "NEXT")
	style := tcell.StyleDefault.Background(colorOf(snap.Next.Color()))
	shape := snap.Next.Shape
	for row := range shape {
		for col, filled := range shape[row] {
			if filled {
				r.text(px+col*cellWidth, py+1+row, style, "  ")
			}
		}
	}

	r.text(px, py+4, textStyle, fmt.Sprintf("SCORE %d", snap.Score))
	r.text(px, py+5, textStyle, fmt.Sprintf("LINES %d", snap.Lines))
	r.text(px, py+6, textStyle, fmt.Sprintf("LEVEL %d", snap.Level))

	if snap.State == tetris.Over {
		r.text(px, py+8, overStyle, "GAME OVER")
		r.text(px, py+9, textStyle, "r: new game  q: quit")
	}
}
