package model

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-conway/rules"
	"github.com/sheikhrachel/go-conway/utils"
)

// nextState applies the rules to one cell of the current generation
func (g *Grid) nextState(row, col int) CellState {
	if rules.ApplyConwayRules(g.CountAliveNeighbors(row, col), g.cells[row][col] == Alive) {
		return Alive
	}
	return Dead
}

func (g *Grid) emptyNext(pool *GridPool) *Grid {
	if pool != nil {
		return pool.Get(g.rows, g.cols)
	}
	return newGrid(g.rows, g.cols)
}

// NextGenerationParallel calculates the next generation using parallel processing.
// Workers only read g and write disjoint rows of the returned grid.
// The bool is true when no cell changed.
func (g *Grid) NextGenerationParallel(pool *GridPool) (*Grid, bool) {
	next := g.emptyNext(pool)

	var (
		eg            errgroup.Group
		numWorkers    = min(runtime.NumCPU(), g.rows)
		rowsPerWorker = (g.rows + numWorkers - 1) / numWorkers // Ceiling division
		changed       = make([]bool, numWorkers)
	)

	for i := range numWorkers {
		var (
			startRow = i * rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, g.rows)
		)
		if startRow >= g.rows {
			break
		}

		eg.Go(func() error {
			for row := startRow; row < endRow; row++ {
				for col := range g.cols {
					state := g.nextState(row, col)
					next.cells[row][col] = state
					if state != g.cells[row][col] {
						changed[i] = true
					}
				}
			}
			return nil
		})
	}

	// workers never fail
	_ = eg.Wait()

	for _, c := range changed {
		if c {
			return next, false
		}
	}
	return next, true
}

// NextGenerationBounded calculates next generation only in the active region.
// Cells further than one step from any living cell stay dead.
func (g *Grid) NextGenerationBounded(pool *GridPool) (*Grid, bool) {
	if !g.activeBounds.valid {
		g.calculateActiveBounds()
	}

	next := g.emptyNext(pool)

	// If no active cells, nothing can be born
	if !g.activeBounds.valid {
		return next, true
	}

	// Process only the active region + 1 margin
	minRow := max(0, g.activeBounds.minRow-1)
	maxRow := min(g.rows-1, g.activeBounds.maxRow+1)
	minCol := max(0, g.activeBounds.minCol-1)
	maxCol := min(g.cols-1, g.activeBounds.maxCol+1)

	stale := true
	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			state := g.nextState(row, col)
			next.cells[row][col] = state
			if state != g.cells[row][col] {
				stale = false
			}
		}
	}

	next.calculateActiveBounds()
	return next, stale
}

// NextGeneration calculates the next generation based on configuration.
// g is left untouched; the caller decides whether to apply the result.
func (g *Grid) NextGeneration(config utils.Config, pool *GridPool) (*Grid, bool) {
	if config.UseBoundedGrid {
		return g.NextGenerationBounded(pool)
	}
	return g.NextGenerationParallel(pool)
}
