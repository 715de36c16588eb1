package tetris

// Cell is either Empty or filled with the tag of the tetromino that locked
// into it.
type Cell uint8

// Empty is the zero cell.
const Empty Cell = 0

// Filled returns the cell tag for a locked cell of the given kind.
func Filled(kind Kind) Cell {
	return Cell(kind) + 1
}

// IsFilled reports whether the cell holds locked content.
func (c Cell) IsFilled() bool {
	return c != Empty
}

// Kind returns the tetromino that filled the cell. ok is false for Empty.
func (c Cell) Kind() (kind Kind, ok bool) {
	if c == Empty {
		return 0, false
	}
	return Kind(c - 1), true
}

// Color returns the color of a filled cell, or 0 for Empty.
func (c Cell) Color() Color {
	kind, ok := c.Kind()
	if !ok {
		return 0
	}
	return kind.Color()
}

// Board is a fixed-size grid of cells indexed [row][col], row 0 at the top.
type Board struct {
	rows, cols int
	cells      [][]Cell
}

// NewBoard creates an empty board. Dimensions never change afterwards.
func NewBoard(rows, cols int) *Board {
	b := &Board{
		rows:  rows,
		cols:  cols,
		cells: make([][]Cell, rows),
	}
	for y := range b.cells {
		b.cells[y] = make([]Cell, cols)
	}
	return b
}

// Rows returns the number of rows.
func (b *Board) Rows() int {
	return b.rows
}

// Cols returns the number of columns.
func (b *Board) Cols() int {
	return b.cols
}

// Cell returns the cell at (x, y). Coordinates outside the board read as
// Empty.
func (b *Board) Cell(x, y int) Cell {
	if !b.inside(x, y) {
		return Empty
	}
	return b.cells[y][x]
}

func (b *Board) inside(x, y int) bool {
	return x >= 0 && x < b.cols && y >= 0 && y < b.rows
}

// IsOccupied reports whether (x, y) holds locked content. Rows above the
// board (y < 0) are always unoccupied.
func (b *Board) IsOccupied(x, y int) bool {
	if y < 0 {
		return false
	}
	return b.Cell(x, y).IsFilled()
}

// SetCell fills (x, y). Writes above or outside the board are dropped.
func (b *Board) SetCell(x, y int, cell Cell) {
	if !b.inside(x, y) {
		return
	}
	b.cells[y][x] = cell
}

// IsRowComplete reports whether every cell of row y is filled.
func (b *Board) IsRowComplete(y int) bool {
	if y < 0 || y >= b.rows {
		return false
	}
	for _, cell := range b.cells[y] {
		if !cell.IsFilled() {
			return false
		}
	}
	return true
}

// ClearCompletedRows removes every complete row, inserting an empty row at
// the top for each one removed, and returns the number removed. Rows are
// scanned bottom to top; after a removal the same index is tested again
// because the row shifted into it may also be complete.
func (b *Board) ClearCompletedRows() int {
	cleared := 0
	for y := b.rows - 1; y >= 0; {
		if !b.IsRowComplete(y) {
			y--
			continue
		}
		b.removeRow(y)
		cleared++
	}
	return cleared
}

// removeRow drops row y and shifts everything above it down by one. The
// removed row's backing slice is reused as the new empty top row.
func (b *Board) removeRow(y int) {
	removed := b.cells[y]
	copy(b.cells[1:y+1], b.cells[:y])
	clear(removed)
	b.cells[0] = removed
}

// Clone deep-copies the board.
func (b *Board) Clone() *Board {
	out := &Board{
		rows:  b.rows,
		cols:  b.cols,
		cells: make([][]Cell, b.rows),
	}
	for y := range b.cells {
		out.cells[y] = make([]Cell, b.cols)
		copy(out.cells[y], b.cells[y])
	}
	return out
}

// FilledCount returns the number of filled cells.
func (b *Board) FilledCount() int {
	n := 0
	for _, row := range b.cells {
		for _, cell := range row {
			if cell.IsFilled() {
				n++
			}
		}
	}
	return n
}

// lock writes every occupied sub-cell of p into the board, skipping rows
// above the top edge.
func (b *Board) lock(p Piece) {
	cell := Filled(p.Kind)
	p.Cells(func(x, y int) {
		if y >= 0 {
			b.SetCell(x, y, cell)
		}
	})
}
