package tetris

import "fmt"

// Kind identifies one of the seven tetrominoes.
type Kind uint8

const (
	I Kind = iota
	O
	T
	L
	J
	S
	Z
)

// KindCount is the number of distinct tetrominoes.
const KindCount = 7

// Color is a 24-bit RGB value.
type Color uint32

// RGB splits the color into its channels.
func (c Color) RGB() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Shape is a rectangular occupancy matrix indexed [row][col].
type Shape [][]bool

type definition struct {
	name  string
	color Color
	shape [][]uint8
}

var definitions = [KindCount]definition{
	I: {"I", 0x00ffff, [][]uint8{{1, 1, 1, 1}}},
	O: {"O", 0xffff00, [][]uint8{{1, 1}, {1, 1}}},
	T: {"T", 0xff00ff, [][]uint8{{0, 1, 0}, {1, 1, 1}}},
	L: {"L", 0xff6600, [][]uint8{{1, 0, 0}, {1, 1, 1}}},
	J: {"J", 0x0066ff, [][]uint8{{0, 0, 1}, {1, 1, 1}}},
	S: {"S", 0x00ff00, [][]uint8{{0, 1, 1}, {1, 1, 0}}},
	Z: {"Z", 0xff0000, [][]uint8{{1, 1, 0}, {0, 1, 1}}},
}

// Kinds returns every tetromino in canonical order.
func Kinds() []Kind {
	return []Kind{I, O, T, L, J, S, Z}
}

func (k Kind) valid() bool {
	return k < KindCount
}

func (k Kind) String() string {
	if !k.valid() {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return definitions[k].name
}

// Color returns the display color of the tetromino.
func (k Kind) Color() Color {
	if !k.valid() {
		return 0
	}
	return definitions[k].color
}

// Shape returns a fresh copy of the base orientation. Callers own the
// result; mutating it never affects the canonical definition.
func (k Kind) Shape() Shape {
	if !k.valid() {
		return nil
	}
	def := definitions[k].shape
	shape := make(Shape, len(def))
	for row := range def {
		shape[row] = make([]bool, len(def[row]))
		for col, v := range def[row] {
			shape[row][col] = v == 1
		}
	}
	return shape
}

// Rows returns the height of the shape.
func (s Shape) Rows() int {
	return len(s)
}

// Cols returns the width of the shape.
func (s Shape) Cols() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// Clone deep-copies the shape.
func (s Shape) Clone() Shape {
	out := make(Shape, len(s))
	for row := range s {
		out[row] = make([]bool, len(s[row]))
		copy(out[row], s[row])
	}
	return out
}

// Equal reports whether two shapes have identical dimensions and cells.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for row := range s {
		if len(s[row]) != len(other[row]) {
			return false
		}
		for col := range s[row] {
			if s[row][col] != other[row][col] {
				return false
			}
		}
	}
	return true
}

// RotateShape returns the shape turned 90 degrees clockwise: column c of the
// input, read bottom to top, becomes row c of the output. The input is not
// modified and the result is not re-centered.
func RotateShape(shape Shape) Shape {
	rows, cols := shape.Rows(), shape.Cols()
	rotated := make(Shape, cols)
	for c := range cols {
		rotated[c] = make([]bool, rows)
		for i := range rows {
			rotated[c][i] = shape[rows-1-i][c]
		}
	}
	return rotated
}

// Piece is a tetromino placed on the board. X and Y locate the top-left
// corner of Shape in board coordinates.
type Piece struct {
	Kind  Kind
	Shape Shape
	X, Y  int
}

func newPiece(kind Kind) Piece {
	return Piece{Kind: kind, Shape: kind.Shape()}
}

// Color is shorthand for p.Kind.Color().
func (p Piece) Color() Color {
	return p.Kind.Color()
}

// Clone deep-copies the piece.
func (p Piece) Clone() Piece {
	p.Shape = p.Shape.Clone()
	return p
}

// Cells calls fn with the absolute board coordinates of every occupied
// sub-cell.
func (p Piece) Cells(fn func(x, y int)) {
	for row := range p.Shape {
		for col, filled := range p.Shape[row] {
			if filled {
				fn(p.X+col, p.Y+row)
			}
		}
	}
}
