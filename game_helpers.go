package main

import (
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/sheikhrachel/go-conway/engine"
	"github.com/sheikhrachel/go-conway/model"
	"github.com/sheikhrachel/go-conway/utils"
)

const (
	statusActive      = "Active"
	statusOscillating = "Oscillating"
	statusEquilibrium = "Reached Equilibrium"
	statusExtinct     = "Extinct"
)

// initializeGame sets up the initial game state
func initializeGame(config utils.Config) (*model.Grid, *engine.Loop, *rand.Rand, error) {
	grid, err := model.NewGrid(config.Rows, config.Cols)
	if err != nil {
		return nil, nil, nil, err
	}

	rng := model.NewRand(config.Seed)
	grid.ResetWithInterestingPatterns(config, rng)

	return grid, engine.NewLoop(config), rng, nil
}

// displayGameInfo shows the initial game information
func displayGameInfo(w io.Writer, config utils.Config, grid *model.Grid) {
	fmt.Fprintf(w, "Features: Memory Pool: %v, Bounded: %v\n",
		config.UseMemoryPool, config.UseBoundedGrid)
	fmt.Fprintf(w, "Grid: %dx%d | Initial living cells: %d\n",
		grid.Rows(), grid.Cols(), grid.CountLivingCells())
	fmt.Fprintln(w, "Press Ctrl+C to exit gracefully")
	fmt.Fprintln(w)
}

// gameStatus returns the living cell count, density and a status label for a generation
func gameStatus(gen engine.Generation) (int, float64, string) {
	grid := gen.Grid
	livingCells := grid.CountLivingCells()
	density := float64(livingCells) / float64(grid.Rows()*grid.Cols()) * 100

	grid.UpdateHistory()

	status := statusActive
	switch {
	case livingCells == 0:
		status = statusExtinct
	case gen.IsStale:
		status = statusEquilibrium
	case grid.IsCycling():
		status = statusOscillating
	}

	return livingCells, density, status
}

// displayGameStatus shows the current game status
func displayGameStatus(
	w io.Writer,
	gen engine.Generation,
	config utils.Config,
	stats utils.Stats,
	restarts int,
) {
	livingCells, density, status := gameStatus(gen)

	// Show bounding box info for bounded grids
	boundingInfo := ""
	if config.UseBoundedGrid {
		boundingInfo = fmt.Sprintf(" | Bounding box: %d cells", stats.BoundingBoxSize)
	}

	fmt.Fprintf(w, "Gen: %d | Living: %d | Density: %.1f%% | Status: %s%s\n",
		gen.Number, livingCells, density, status, boundingInfo)
	fmt.Fprintf(w, "Performance: %.1f gen/sec | Avg Pop: %.1f | Runtime: %.1fs\n",
		stats.GenerationsPerSecond, stats.AveragePopulation, stats.Runtime().Seconds())
	if restarts > 0 {
		fmt.Fprintf(w, "Restarts: %d\n", restarts)
	}
	fmt.Fprintln(w)
}

// checkRestartConditions determines if the game should restart after a run ended
// Hitting the generation limit always ends the game, even on a stale generation.
func checkRestartConditions(outcome engine.Outcome, livingCells int, limitReached bool, config utils.Config) (bool, string) {
	if limitReached || !config.AutoRestart || outcome != engine.OutcomeEquilibrium {
		return false, ""
	}
	if livingCells == 0 {
		return true, "extinction"
	}
	return true, "equilibrium"
}

// restartGame handles the game restart logic
func restartGame(w io.Writer, grid *model.Grid, config utils.Config, rng *rand.Rand, pause time.Duration) {
	fmt.Fprintf(w, "\n🔄 Restarting...\n")
	time.Sleep(pause)

	grid.ResetWithInterestingPatterns(config, rng)

	fmt.Fprintf(w, "✨ New patterns loaded! Living cells: %d\n", grid.CountLivingCells())
	time.Sleep(pause)
}

// displayFinalStats prints the summary shown on exit
func displayFinalStats(w io.Writer, total int, stats utils.Stats) {
	fmt.Fprintf(w, "Final stats: %d generations in %.1f seconds\n",
		total, stats.Runtime().Seconds())
	fmt.Fprintf(w, "Average: %.1f gen/sec, %.1f avg population\n",
		stats.GenerationsPerSecond, stats.AveragePopulation)
}
