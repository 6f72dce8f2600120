package model

import (
	"strings"

	"github.com/pkg/errors"
)

// Grid is a dense rows x cols board of cell states.
// Coordinates outside [0, rows) x [0, cols) read as Dead; there is no wraparound.
type Grid struct {
	rows    int
	cols    int
	cells   [][]CellState
	history []string // Store recent grid hashes for cycle detection

	// Bounding box of living cells, recomputed lazily
	activeBounds struct {
		minRow, maxRow, minCol, maxCol int
		valid                          bool
	}
}

// NewGrid creates an all-dead grid with the given dimensions and marks every
// coordinate in alive as Alive
func NewGrid(rows, cols int, alive ...Coord) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, errors.Wrapf(ErrInvalidDimensions, "[NewGrid] rows=%d cols=%d", rows, cols)
	}

	g := newGrid(rows, cols)
	for _, c := range alive {
		if err := g.Set(c.Row, c.Col, Alive); err != nil {
			return nil, errors.Wrap(err, "[NewGrid] initial pattern")
		}
	}
	return g, nil
}

func newGrid(rows, cols int) *Grid {
	cells := make([][]CellState, rows)
	for i := range cells {
		cells[i] = make([]CellState, cols)
	}
	return &Grid{
		rows:  rows,
		cols:  cols,
		cells: cells,
	}
}

// Rows returns the number of rows in the grid
func (g *Grid) Rows() int {
	return g.rows
}

// Cols returns the number of columns in the grid
func (g *Grid) Cols() int {
	return g.cols
}

// reset reuses g for a rows x cols all-dead grid; only the pool may change dimensions
func (g *Grid) reset(rows, cols int) {
	g.rows = rows
	g.cols = cols
	g.history = nil
	g.activeBounds.valid = false

	// Resize cells if needed
	if len(g.cells) != rows {
		g.cells = make([][]CellState, rows)
	}
	for i := range g.cells {
		if len(g.cells[i]) != cols {
			g.cells[i] = make([]CellState, cols)
		} else {
			clear(g.cells[i])
		}
	}
}

// Clear kills every cell and forgets the history
func (g *Grid) Clear() {
	for row := range g.rows {
		clear(g.cells[row])
	}
	g.history = nil
	g.activeBounds.valid = false
}

func (g *Grid) inBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// Set overwrites the state of a cell
func (g *Grid) Set(row, col int, state CellState) error {
	if !g.inBounds(row, col) {
		return errors.Wrapf(ErrOutOfBounds, "[Set] (%d, %d) outside %dx%d grid", row, col, g.rows, g.cols)
	}
	if !state.Valid() {
		return errors.Wrapf(ErrInvalidState, "[Set] %v at (%d, %d)", state, row, col)
	}
	g.cells[row][col] = state
	g.activeBounds.valid = false
	return nil
}

// Get returns the state of a cell, Dead for anything off the grid
func (g *Grid) Get(row, col int) CellState {
	if !g.inBounds(row, col) {
		return Dead
	}
	return g.cells[row][col]
}

// CountAliveNeighbors counts the living cells among the 8 surrounding coordinates
func (g *Grid) CountAliveNeighbors(row, col int) int {
	count := 0

	// Clamp the 3x3 window to the grid; anything outside counts as dead
	minRow := max(0, row-1)
	maxRow := min(g.rows-1, row+1)
	minCol := max(0, col-1)
	maxCol := min(g.cols-1, col+1)

	for nr := minRow; nr <= maxRow; nr++ {
		for nc := minCol; nc <= maxCol; nc++ {
			if nr == row && nc == col {
				continue // Skip the cell itself
			}
			if g.cells[nr][nc] == Alive {
				count++
			}
		}
	}

	return count
}

// Equals reports whether other has the same dimensions and the same state at every coordinate
func (g *Grid) Equals(other *Grid) bool {
	if other == nil || g.rows != other.rows || g.cols != other.cols {
		return false
	}
	for row := range g.rows {
		for col := range g.cols {
			if g.cells[row][col] != other.cells[row][col] {
				return false
			}
		}
	}
	return true
}

// Clone returns an independent copy of the cell states
func (g *Grid) Clone() *Grid {
	c := newGrid(g.rows, g.cols)
	for row := range g.rows {
		copy(c.cells[row], g.cells[row])
	}
	return c
}

// Swap exchanges the cell states of g and next, so g holds the new generation
// and next holds the old one. History stays with g.
func (g *Grid) Swap(next *Grid) error {
	if next == nil || g.rows != next.rows || g.cols != next.cols {
		return errors.Wrap(ErrInvalidDimensions, "[Swap] grids differ in size")
	}
	g.cells, next.cells = next.cells, g.cells
	g.activeBounds, next.activeBounds = next.activeBounds, g.activeBounds
	return nil
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() (count int) {
	for row := range g.rows {
		for col := range g.cols {
			if g.cells[row][col] == Alive {
				count++
			}
		}
	}
	return
}

// HasLife reports whether at least one cell is alive
func (g *Grid) HasLife() bool {
	for row := range g.rows {
		for col := range g.cols {
			if g.cells[row][col] == Alive {
				return true
			}
		}
	}
	return false
}

// AliveCells lists living coordinates in row-major order
func (g *Grid) AliveCells() []Coord {
	var alive []Coord
	for row := range g.rows {
		for col := range g.cols {
			if g.cells[row][col] == Alive {
				alive = append(alive, Coord{Row: row, Col: col})
			}
		}
	}
	return alive
}

// calculateActiveBounds calculates the bounding box of living cells
func (g *Grid) calculateActiveBounds() {
	g.activeBounds.valid = false

	for row := range g.rows {
		for col := range g.cols {
			if g.cells[row][col] != Alive {
				continue
			}
			if !g.activeBounds.valid {
				g.activeBounds.minRow, g.activeBounds.maxRow = row, row
				g.activeBounds.minCol, g.activeBounds.maxCol = col, col
				g.activeBounds.valid = true
				continue
			}
			g.activeBounds.minRow = min(g.activeBounds.minRow, row)
			g.activeBounds.maxRow = max(g.activeBounds.maxRow, row)
			g.activeBounds.minCol = min(g.activeBounds.minCol, col)
			g.activeBounds.maxCol = max(g.activeBounds.maxCol, col)
		}
	}
}

// GetBoundingBoxSize returns the size of the active region
func (g *Grid) GetBoundingBoxSize() int {
	if !g.activeBounds.valid {
		g.calculateActiveBounds()
	}
	if !g.activeBounds.valid {
		return 0
	}
	return (g.activeBounds.maxRow - g.activeBounds.minRow + 1) *
		(g.activeBounds.maxCol - g.activeBounds.minCol + 1)
}

// String dumps the grid row by row, '#' for alive and '.' for dead
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow(g.rows * (g.cols + 1))
	for row := range g.rows {
		for col := range g.cols {
			if g.cells[row][col] == Alive {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
