package model

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrOutOfBounds is returned when a coordinate lies outside the grid
	ErrOutOfBounds = errors.New("coordinate out of bounds")
	// ErrInvalidDimensions is returned when a grid is built with rows or cols <= 0
	ErrInvalidDimensions = errors.New("invalid grid dimensions")
	// ErrInvalidState is returned when a cell is set to something other than Dead or Alive
	ErrInvalidState = errors.New("invalid cell state")
)

// CellState is the binary state of a single cell
type CellState uint8

const (
	Dead CellState = iota
	Alive
)

func (s CellState) String() string {
	switch s {
	case Dead:
		return "DEAD"
	case Alive:
		return "ALIVE"
	default:
		return fmt.Sprintf("CellState(%d)", uint8(s))
	}
}

// Valid reports whether s is one of Dead or Alive
func (s CellState) Valid() bool {
	return s == Dead || s == Alive
}

// Coord identifies a grid position by row and column
type Coord struct {
	Row int
	Col int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d, %d)", c.Row, c.Col)
}
