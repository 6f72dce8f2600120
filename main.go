package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sheikhrachel/go-conway/engine"
	"github.com/sheikhrachel/go-conway/model"
	"github.com/sheikhrachel/go-conway/utils"
)

const (
	configFile   = "config.json"
	restartPause = time.Second
)

func main() {
	// Load configuration - fallback to defaults if file doesn't exist
	config, err := utils.LoadConfig(configFile)
	if err != nil {
		fmt.Printf("Using default configuration (%v)\n", err)
		config = utils.DefaultConfig()
	}

	grid, loop, rng, err := initializeGame(config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize game: %+v\n", err)
		os.Exit(1)
	}
	renderer := &model.TerminalRenderer{Out: os.Stdout}
	displayGameInfo(os.Stdout, config, grid)

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		total    = 0
		restarts = 0
		stats    utils.Stats
	)

	for {
		limitReached := false
		outcome, err := loop.Run(ctx, grid, config.FrameRate, func(gen engine.Generation) {
			if gen.WasCancelled {
				return
			}
			total++

			renderer.Clear()
			displayGameStatus(os.Stdout, gen, config, loop.Stats(), restarts)
			renderer.Display(gen.Grid)

			// Check for max generations limit
			if config.MaxGenerations > 0 && total >= config.MaxGenerations {
				limitReached = true
				loop.Cancel()
			}
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "simulation failed: %+v\n", err)
			os.Exit(1)
		}
		stats = loop.Stats()

		switch {
		case outcome == engine.OutcomeNoLife:
			fmt.Println("\nNo living cells, nothing to play")
		case limitReached:
			fmt.Printf("\n🏁 Reached maximum generations limit (%d)\n", config.MaxGenerations)
		case ctx.Err() != nil:
			fmt.Println("\n🛑 Shutting down gracefully...")
		case outcome == engine.OutcomeEquilibrium:
			fmt.Println("\nReached Equilibrium")
		}

		shouldRestart, reason := checkRestartConditions(outcome, grid.CountLivingCells(), limitReached, config)
		if !shouldRestart || ctx.Err() != nil {
			break
		}

		fmt.Printf("🔄 Restarting due to %s...\n", reason)
		restartGame(os.Stdout, grid, config, rng, restartPause)
		restarts++
	}

	displayFinalStats(os.Stdout, total, stats)
}
