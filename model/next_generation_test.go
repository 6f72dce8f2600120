package model

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-conway/utils"
)

type stepFunc func(g *Grid, pool *GridPool) (*Grid, bool)

var strategies = map[string]stepFunc{
	"parallel": (*Grid).NextGenerationParallel,
	"bounded":  (*Grid).NextGenerationBounded,
}

func forEachStrategy(t *testing.T, fn func(t *testing.T, step stepFunc, pool *GridPool)) {
	for name, step := range strategies {
		for _, pooled := range []bool{false, true} {
			var pool *GridPool
			if pooled {
				pool = NewGridPool()
			}
			t.Run(fmt.Sprintf("%s/pool=%v", name, pooled), func(t *testing.T) {
				fn(t, step, pool)
			})
		}
	}
}

func TestStepAllDeadIsStale(t *testing.T) {
	forEachStrategy(t, func(t *testing.T, step stepFunc, pool *GridPool) {
		g := mustGrid(t, 6, 7)
		next, stale := step(g, pool)
		if !stale {
			t.Fatal("all-dead step not stale")
		}
		if next.HasLife() {
			t.Fatalf("life appeared from nothing:\n%s", next)
		}
	})
}

func TestStepBlockStillLife(t *testing.T) {
	forEachStrategy(t, func(t *testing.T, step stepFunc, pool *GridPool) {
		g := mustGrid(t, 4, 4)
		g.AddBlock(1, 1)
		before := g.Clone()

		next, stale := step(g, pool)
		if !next.Equals(before) {
			t.Fatalf("block changed:\n%s", next)
		}
		if !stale {
			t.Fatal("block step not stale")
		}
		if !g.Equals(before) {
			t.Fatal("step mutated its input")
		}
	})
}

func TestStepBlinkerOscillates(t *testing.T) {
	forEachStrategy(t, func(t *testing.T, step stepFunc, pool *GridPool) {
		horizontal := mustGrid(t, 3, 3, Coord{1, 0}, Coord{1, 1}, Coord{1, 2})
		vertical := mustGrid(t, 3, 3, Coord{0, 1}, Coord{1, 1}, Coord{2, 1})

		first, stale := step(horizontal, pool)
		if stale {
			t.Fatal("first blinker step reported stale")
		}
		if !first.Equals(vertical) {
			t.Fatalf("after one step got\n%swant\n%s", first, vertical)
		}

		second, stale := step(first, pool)
		if stale {
			t.Fatal("second blinker step reported stale")
		}
		if !second.Equals(horizontal) {
			t.Fatalf("after two steps got\n%swant\n%s", second, horizontal)
		}
	})
}

func TestStepUnderpopulationAndOvercrowding(t *testing.T) {
	forEachStrategy(t, func(t *testing.T, step stepFunc, pool *GridPool) {
		// A lone cell dies; the center of a plus sign has 4 neighbors and dies
		g := mustGrid(t, 7, 7, Coord{0, 6}, Coord{3, 3}, Coord{2, 3}, Coord{4, 3}, Coord{3, 2}, Coord{3, 4})
		next, stale := step(g, pool)
		if stale {
			t.Fatal("expected changes")
		}
		if next.Get(0, 6) != Dead {
			t.Fatal("isolated cell survived")
		}
		if next.Get(3, 3) != Dead {
			t.Fatal("overcrowded cell survived")
		}
		// Corners of the plus have exactly 3 neighbors and are born
		for _, c := range []Coord{{2, 2}, {2, 4}, {4, 2}, {4, 4}} {
			if next.Get(c.Row, c.Col) != Alive {
				t.Fatalf("cell %v not born:\n%s", c, next)
			}
		}
	})
}

func TestStepDeterministicAndStrategiesAgree(t *testing.T) {
	g := mustGrid(t, 20, 25)
	g.ResetWithInterestingPatterns(utils.Config{RandomDensity: 0.3}, NewRand(42))

	want, wantStale := g.NextGenerationParallel(nil)
	again, againStale := g.NextGenerationParallel(nil)
	if !want.Equals(again) || wantStale != againStale {
		t.Fatal("parallel step is not deterministic")
	}

	got, gotStale := g.NextGenerationBounded(NewGridPool())
	if !got.Equals(want) || gotStale != wantStale {
		t.Fatalf("bounded and parallel disagree:\n%s\n%s", got, want)
	}
}

func TestNextGenerationDispatch(t *testing.T) {
	g := mustGrid(t, 5, 5, Coord{2, 1}, Coord{2, 2}, Coord{2, 3})
	for _, bounded := range []bool{false, true} {
		next, stale := g.NextGeneration(utils.Config{UseBoundedGrid: bounded}, nil)
		if stale || next.Get(1, 2) != Alive || next.Get(2, 1) != Dead {
			t.Fatalf("bounded=%v: unexpected result\n%s", bounded, next)
		}
	}
}

func TestStepSingleRowGrid(t *testing.T) {
	forEachStrategy(t, func(t *testing.T, step stepFunc, pool *GridPool) {
		g := mustGrid(t, 1, 5, Coord{0, 1}, Coord{0, 2}, Coord{0, 3})
		next, stale := step(g, pool)
		if stale {
			t.Fatal("expected changes")
		}
		// The middle cell keeps 2 neighbors; the ends have only 1
		if got := next.AliveCells(); len(got) != 1 || got[0] != (Coord{0, 2}) {
			t.Fatalf("alive = %v", got)
		}
	})
}

func TestHistoryDetectsCycles(t *testing.T) {
	g := mustGrid(t, 5, 5, Coord{2, 1}, Coord{2, 2}, Coord{2, 3})
	g.UpdateHistory()
	if g.IsCycling() {
		t.Fatal("single entry cannot cycle")
	}

	for range 2 {
		next, _ := g.NextGenerationParallel(nil)
		if err := g.Swap(next); err != nil {
			t.Fatalf("Swap: %v", err)
		}
		g.UpdateHistory()
	}
	if !g.IsCycling() {
		t.Fatal("blinker period not detected")
	}

	g.Clear()
	if g.IsCycling() {
		t.Fatal("Clear did not reset history")
	}
}

func TestGridPoolReturnsClearedGrids(t *testing.T) {
	pool := NewGridPool()
	g := pool.Get(3, 3)
	_ = g.Set(1, 1, Alive)
	GridToPool(g, pool)

	again := pool.Get(4, 2)
	if again.Rows() != 4 || again.Cols() != 2 || again.HasLife() {
		t.Fatalf("pooled grid not reset: %dx%d\n%s", again.Rows(), again.Cols(), again)
	}
	GridToPool(again, nil)
}

func TestGridPoolResizesReusedGrids(t *testing.T) {
	pool := NewGridPool()
	small := pool.Get(2, 9)
	_ = small.Set(1, 8, Alive)
	pool.Put(small)

	for _, dims := range [][2]int{{5, 3}, {2, 9}, {7, 7}} {
		g := pool.Get(dims[0], dims[1])
		if g.Rows() != dims[0] || g.Cols() != dims[1] || g.HasLife() {
			t.Fatalf("Get(%d, %d) = %dx%d grid\n%s", dims[0], dims[1], g.Rows(), g.Cols(), g)
		}
		last := Coord{dims[0] - 1, dims[1] - 1}
		if err := g.Set(last.Row, last.Col, Alive); err != nil {
			t.Fatalf("Set%v on resized grid: %v", last, err)
		}
		if err := g.Set(dims[0], 0, Alive); !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("Set past resized rows err = %v", err)
		}
		if next, stale := g.NextGenerationParallel(pool); stale || next.HasLife() {
			t.Fatalf("lone cell on resized grid: stale=%v\n%s", stale, next)
		}
		pool.Put(g)
	}
}
