package life

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
)

const (
	Dead  uint8 = 0
	Alive uint8 = 1
)

var (
	// ErrOutOfBounds indicates a coordinate outside the grid.
	ErrOutOfBounds = errors.New("life: coordinate out of bounds")

	// ErrInvalidPattern indicates a pattern row with an unknown cell symbol.
	ErrInvalidPattern = errors.New("life: invalid pattern")
)

// offsets lists the eight neighbour displacements, excluding (0, 0).
var offsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Grid is an R×C board of cells stored row-major.
// The zero value is an empty 0×0 grid; use New, Clear or Randomize.
type Grid struct {
	rows  int
	cols  int
	cells []uint8
}

// New returns an all-dead grid. It panics on non-positive dimensions.
func New(rows, cols int) Grid {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("life: invalid grid size %dx%d", rows, cols))
	}
	return Grid{rows: rows, cols: cols, cells: make([]uint8, rows*cols)}
}

// Clear returns a grid of all-dead cells.
func Clear(rows, cols int) Grid { return New(rows, cols) }

// Randomize returns a grid where each cell is alive with probability 0.5.
func Randomize(rows, cols int, rng *rand.Rand) Grid {
	g := New(rows, cols)
	for i := range g.cells {
		g.cells[i] = uint8(rng.IntN(2))
	}
	return g
}

// NewRNG returns a deterministic PCG-backed source for Randomize.
func NewRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0))
}

// Parse builds a grid from text rows. '#', 'O', '*' and '1' are alive;
// '.', '0', ' ' and '_' are dead. Short rows are padded with dead cells.
func Parse(lines []string) (Grid, error) {
	if len(lines) == 0 {
		return Grid{}, fmt.Errorf("%w: no rows", ErrInvalidPattern)
	}
	cols := 0
	for _, l := range lines {
		if len(l) > cols {
			cols = len(l)
		}
	}
	if cols == 0 {
		return Grid{}, fmt.Errorf("%w: no columns", ErrInvalidPattern)
	}
	g := New(len(lines), cols)
	for r, l := range lines {
		for c, ch := range l {
			switch ch {
			case '#', 'O', '*', '1':
				g.cells[r*cols+c] = Alive
			case '.', '0', ' ', '_':
			default:
				return Grid{}, fmt.Errorf("%w: row %d col %d: %q", ErrInvalidPattern, r, c, ch)
			}
		}
	}
	return g, nil
}

func (g Grid) Rows() int { return g.rows }
func (g Grid) Cols() int { return g.cols }

// InBounds reports whether (row, col) addresses a cell of g.
func (g Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// At returns the cell state, 0 or 1. It panics outside the grid.
func (g Grid) At(row, col int) uint8 {
	if !g.InBounds(row, col) {
		panic(fmt.Sprintf("life: At(%d, %d) outside %dx%d grid", row, col, g.rows, g.cols))
	}
	return g.cells[row*g.cols+col]
}

func (g Grid) Alive(row, col int) bool { return g.At(row, col) == Alive }

// Cells returns a copy of the row-major cell slice.
func (g Grid) Cells() []uint8 {
	c := make([]uint8, len(g.cells))
	copy(c, g.cells)
	return c
}

// Population counts the live cells.
func (g Grid) Population() int {
	n := 0
	for _, c := range g.cells {
		n += int(c)
	}
	return n
}

// Equal reports whether both grids have the same size and cell states.
func (g Grid) Equal(o Grid) bool {
	if g.rows != o.rows || g.cols != o.cols {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Key returns a comparable fingerprint of the cell states. Two grids of the
// same size have equal keys exactly when they are Equal.
func (g Grid) Key() string {
	return string(g.cells)
}

func (g Grid) String() string {
	var b strings.Builder
	b.Grow(g.rows * (g.cols + 1))
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if g.cells[r*g.cols+c] == Alive {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (g Grid) clone() Grid {
	return Grid{rows: g.rows, cols: g.cols, cells: g.Cells()}
}

// Toggle returns a copy of g with the cell at (row, col) flipped.
func Toggle(g Grid, row, col int) (Grid, error) {
	if !g.InBounds(row, col) {
		return g, fmt.Errorf("%w: (%d, %d) in %dx%d grid", ErrOutOfBounds, row, col, g.rows, g.cols)
	}
	n := g.clone()
	n.cells[row*n.cols+col] ^= 1
	return n, nil
}

// CountNeighbours returns the number of live cells among the eight
// neighbours of (row, col), wrapping at the edges.
func CountNeighbours(g Grid, row, col int) int {
	n := 0
	for _, d := range offsets {
		r := (row + d[0] + g.rows) % g.rows
		c := (col + d[1] + g.cols) % g.cols
		n += int(g.cells[r*g.cols+c])
	}
	return n
}

// Step computes the next generation. Every neighbour count is taken from g,
// which is never written.
func Step(g Grid) Grid {
	next := Grid{rows: g.rows, cols: g.cols, cells: make([]uint8, len(g.cells))}
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			idx := r*g.cols + c
			next.cells[idx] = Rule(g.cells[idx], CountNeighbours(g, r, c))
		}
	}
	return next
}

// Rule maps a cell state and its live-neighbour count to the next state.
func Rule(cell uint8, neighbours int) uint8 {
	switch {
	case neighbours < 2 || neighbours > 3:
		return Dead
	case cell == Dead && neighbours == 3:
		return Alive
	default:
		return cell
	}
}
