package tetris

// HasCollision reports whether shape placed with its top-left corner at
// (x, y) leaves the board through a side or the floor, or overlaps locked
// content. Sub-cells above the top edge are legal. Every placement check in
// the engine goes through this one predicate.
func HasCollision(x, y int, shape Shape, board *Board) bool {
	for row := range shape {
		for col, filled := range shape[row] {
			if !filled {
				continue
			}

			bx := x + col
			by := y + row

			if bx < 0 || bx >= board.Cols() || by >= board.Rows() {
				return true
			}

			if by >= 0 && board.IsOccupied(bx, by) {
				return true
			}
		}
	}

	return false
}
