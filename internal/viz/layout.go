package viz

// Layout places a grid on a screen: the top-left cell starts at (X, Y) and
// every cell is CellW by CellH screen units. Terminal frontends use
// characters as units, window frontends pixels.
type Layout struct {
	X, Y         int
	CellW, CellH int
	Rows, Cols   int
}

// Cell maps a screen coordinate to the grid cell under it.
func (l Layout) Cell(x, y int) (row, col int, ok bool) {
	if l.CellW <= 0 || l.CellH <= 0 {
		return 0, 0, false
	}
	dx, dy := x-l.X, y-l.Y
	if dx < 0 || dy < 0 {
		return 0, 0, false
	}
	row, col = dy/l.CellH, dx/l.CellW
	if row >= l.Rows || col >= l.Cols {
		return 0, 0, false
	}
	return row, col, true
}

// Origin returns the screen coordinate of the top-left corner of a cell.
func (l Layout) Origin(row, col int) (x, y int) {
	return l.X + col*l.CellW, l.Y + row*l.CellH
}

func (l Layout) Width() int  { return l.Cols * l.CellW }
func (l Layout) Height() int { return l.Rows * l.CellH }
