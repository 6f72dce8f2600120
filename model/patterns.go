package model

import (
	"math/rand/v2"

	"github.com/sheikhrachel/go-conway/utils"
)

var (
	gliderPattern  = []Coord{{0, 1}, {1, 2}, {2, 0}, {2, 1}, {2, 2}}
	blinkerPattern = []Coord{{0, 0}, {0, 1}, {0, 2}}
	blockPattern   = []Coord{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
)

// paint marks pattern cells alive relative to (startRow, startCol), clipping
// whatever falls off the grid
func (g *Grid) paint(pattern []Coord, startRow, startCol int) {
	for _, c := range pattern {
		row, col := startRow+c.Row, startCol+c.Col
		if g.inBounds(row, col) {
			g.cells[row][col] = Alive
		}
	}
	g.activeBounds.valid = false
}

// AddGlider adds a glider pattern at the specified position
func (g *Grid) AddGlider(startRow, startCol int) {
	g.paint(gliderPattern, startRow, startCol)
}

// AddBlinker adds a horizontal blinker oscillator pattern
func (g *Grid) AddBlinker(startRow, startCol int) {
	g.paint(blinkerPattern, startRow, startCol)
}

// AddBlock adds a 2x2 block still life
func (g *Grid) AddBlock(startRow, startCol int) {
	g.paint(blockPattern, startRow, startCol)
}

// NewRand returns a deterministic generator for seed, or a randomly seeded
// one when seed is zero
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(uint64(seed), 0))
}

// Randomize brings cells to life with the given probability; existing life is kept
func (g *Grid) Randomize(density float64, rng *rand.Rand) {
	for row := range g.rows {
		for col := range g.cols {
			if rng.Float64() < density {
				g.cells[row][col] = Alive
			}
		}
	}
	g.activeBounds.valid = false
}

// ResetWithInterestingPatterns clears the grid and adds various interesting patterns
func (g *Grid) ResetWithInterestingPatterns(config utils.Config, rng *rand.Rand) {
	g.Clear()

	if g.rows >= 10 && g.cols >= 10 {
		g.AddGlider(1, 1)
		if g.rows >= 15 && g.cols >= 20 {
			g.AddGlider(1, g.cols-5)
		}

		g.AddBlinker(g.rows/2, g.cols/4)
		if g.cols >= 30 {
			g.AddBlinker(3*g.rows/4, 3*g.cols/4)
		}
	}

	// Add random life using configurable density
	g.Randomize(config.RandomDensity, rng)
}
