// Package engine drives a model.Grid through repeated generations until it
// reaches equilibrium or the caller cancels.
//
// A Loop owns the grid it is running: between Run calls the caller may paint
// cells with Grid.Set, but while Run is in flight only the loop mutates it.
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-conway/model"
	"github.com/sheikhrachel/go-conway/utils"
)

var (
	// ErrLoopRunning is returned by Run while another run is in flight on the same Loop
	ErrLoopRunning = errors.New("simulation loop already running")
	// ErrNilGrid is returned by Run when no grid is supplied
	ErrNilGrid = errors.New("nil grid")
)

// Outcome describes why a run stopped
type Outcome int

const (
	// OutcomeNoLife means the grid had no living cells and the loop never started
	OutcomeNoLife Outcome = iota
	// OutcomeEquilibrium means the last applied generation changed no cell
	OutcomeEquilibrium
	// OutcomeCancelled means a cancel was observed and the pending generation discarded
	OutcomeCancelled
	// OutcomePaused means a pause was observed after the pending generation was applied
	OutcomePaused
)

// afterStep runs between computing a generation and deciding whether to apply it
var afterStep = func(next *model.Grid) {}

func (o Outcome) String() string {
	switch o {
	case OutcomeNoLife:
		return "no life"
	case OutcomeEquilibrium:
		return "equilibrium"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// Generation is reported to the caller once per applied generation and once
// more when a run is cancelled.
//
// Grid is the live grid owned by the loop; copy it with Clone to keep it past
// the callback. On a cancelled report it holds the last applied generation.
type Generation struct {
	Grid         *model.Grid
	Number       int
	IsStale      bool
	WasCancelled bool
}

// GenerationFunc receives generation reports on the goroutine calling Run
type GenerationFunc func(Generation)

// Loop repeatedly steps a grid. The zero value is not usable; use NewLoop.
type Loop struct {
	config utils.Config
	pool   *model.GridPool

	mu     sync.Mutex
	cancel chan struct{} // single slot, non-nil while a run is in flight
	paused bool
	stats  *utils.Stats
}

// NewLoop builds a loop stepping grids with the strategy chosen in config
func NewLoop(config utils.Config) *Loop {
	l := &Loop{
		config: config,
		stats:  utils.NewStats(),
	}
	if config.UseMemoryPool {
		l.pool = model.NewGridPool()
	}
	return l
}

// Running reports whether a run is in flight
func (l *Loop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cancel != nil
}

// Cancel asks the in-flight run to stop before applying its next generation.
// It never blocks; repeated calls collapse into one request. Without a run in
// flight it does nothing.
func (l *Loop) Cancel() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel == nil {
		return
	}
	select {
	case l.cancel <- struct{}{}:
	default:
	}
}

// Pause asks the in-flight run to stop after applying its pending generation.
// A cancel requested before that generation is applied still discards it.
// Without a run in flight it does nothing.
func (l *Loop) Pause() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.paused = true
	}
}

func (l *Loop) pauseRequested() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.paused
}

// Stats returns a snapshot of the statistics gathered so far
func (l *Loop) Stats() utils.Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return *l.stats
}

// Run advances grid one generation per delay until a generation changes no
// cell, the loop is cancelled or paused, or ctx is done. onGeneration may be nil.
//
// A grid without living cells is left alone and OutcomeNoLife is returned.
func (l *Loop) Run(ctx context.Context, grid *model.Grid, delay time.Duration, onGeneration GenerationFunc) (Outcome, error) {
	if grid == nil {
		return OutcomeNoLife, errors.Wrap(ErrNilGrid, "[Run]")
	}
	cancel, err := l.start()
	if err != nil {
		return OutcomeNoLife, err
	}
	defer l.stop()

	if !grid.HasLife() {
		return OutcomeNoLife, nil
	}
	if onGeneration == nil {
		onGeneration = func(Generation) {}
	}

	var timer *time.Timer
	if delay > 0 {
		timer = time.NewTimer(delay)
		defer timer.Stop()
	}

	last := time.Now()
	for number := 1; ; number++ {
		if !wait(ctx, cancel, timer, delay) {
			onGeneration(Generation{Grid: grid, Number: number, WasCancelled: true})
			return OutcomeCancelled, nil
		}

		next, stale := grid.NextGeneration(l.config, l.pool)
		afterStep(next)

		if cancelRequested(ctx, cancel) {
			model.GridToPool(next, l.pool)
			onGeneration(Generation{Grid: grid, Number: number, WasCancelled: true})
			return OutcomeCancelled, nil
		}

		if err := grid.Swap(next); err != nil {
			return OutcomeCancelled, errors.Wrap(err, "[Run]")
		}
		model.GridToPool(next, l.pool)
		l.recordStats(number, grid, time.Since(last))
		last = time.Now()

		onGeneration(Generation{Grid: grid, Number: number, IsStale: stale})
		if stale {
			return OutcomeEquilibrium, nil
		}
		if l.pauseRequested() {
			return OutcomePaused, nil
		}
	}
}

func (l *Loop) start() (<-chan struct{}, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		return nil, errors.Wrap(ErrLoopRunning, "[Run]")
	}
	l.cancel = make(chan struct{}, 1)
	l.paused = false
	l.stats = utils.NewStats()
	return l.cancel, nil
}

func (l *Loop) stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cancel = nil
	l.paused = false
}

// wait sleeps for delay and reports false if the run was cancelled meanwhile
func wait(ctx context.Context, cancel <-chan struct{}, timer *time.Timer, delay time.Duration) bool {
	if timer == nil {
		return !cancelRequested(ctx, cancel)
	}
	timer.Reset(delay)
	select {
	case <-cancel:
		return false
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func cancelRequested(ctx context.Context, cancel <-chan struct{}) bool {
	select {
	case <-cancel:
		return true
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

func (l *Loop) recordStats(number int, grid *model.Grid, took time.Duration) {
	population := grid.CountLivingCells()
	box := grid.GetBoundingBoxSize()

	l.mu.Lock()
	defer l.mu.Unlock()
	l.stats.Update(number, population, box, took)
}
