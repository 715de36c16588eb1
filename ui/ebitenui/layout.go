package ebitenui

import (
	"image"

	"github.com/plus3/handtris/gesture"
)

// Layout positions the board and the side panel in screen pixels.
type Layout struct {
	Rows     int
	Cols     int
	CellSize int
	Margin   int
	Panel    int
}

func NewLayout(rows, cols int) Layout {
	return Layout{Rows: rows, Cols: cols, CellSize: 30, Margin: 20, Panel: 160}
}

// Board returns the board rectangle.
func (l Layout) Board() image.Rectangle {
	return image.Rect(l.Margin, l.Margin, l.Margin+l.Cols*l.CellSize, l.Margin+l.Rows*l.CellSize)
}

// Cell returns the top-left corner of board cell (x, y).
func (l Layout) Cell(x, y int) image.Point {
	return image.Pt(l.Margin+x*l.CellSize, l.Margin+y*l.CellSize)
}

// PanelOrigin returns the top-left corner of the side panel.
func (l Layout) PanelOrigin() image.Point {
	return image.Pt(l.Board().Max.X+l.Margin, l.Margin)
}

// Size returns the logical screen size.
func (l Layout) Size() (width, height int) {
	board := l.Board()
	return board.Max.X + l.Margin + l.Panel, board.Max.Y + l.Margin
}

// CursorSource treats the mouse cursor over the board as the tracked finger.
type CursorSource struct {
	Layout Layout
	Cursor func() (x, y int)
}

func (c *CursorSource) Sample() gesture.Signal {
	x, y := c.Cursor()
	board := c.Layout.Board()
	if !image.Pt(x, y).In(board) {
		return gesture.Signal{}
	}
	return gesture.Signal{
		X:        gesture.Normalize(float64(x), float64(board.Min.X), float64(board.Max.X), float64(c.Layout.Cols)),
		Detected: true,
	}
}
