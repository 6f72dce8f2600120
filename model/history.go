package model

import (
	"crypto/md5"
	"fmt"
)

const historySize = 5

// GetGridHash returns an MD5 hash of the current grid state
func (g *Grid) GetGridHash() string {
	h := md5.New()
	row := make([]byte, g.cols)
	for r := range g.rows {
		for c := range g.cols {
			row[c] = byte(g.cells[r][c])
		}
		h.Write(row)
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// UpdateHistory adds current state to history and maintains size
func (g *Grid) UpdateHistory() {
	g.history = append(g.history, g.GetGridHash())

	if len(g.history) > historySize {
		g.history = g.history[1:]
	}
}

// IsCycling reports whether the latest recorded state repeats one of the
// three states before it, i.e. the grid is static or oscillating with period <= 3
func (g *Grid) IsCycling() bool {
	n := len(g.history)
	if n < 2 {
		return false
	}

	latest := g.history[n-1]
	for back := 2; back <= 4 && back <= n; back++ {
		if g.history[n-back] == latest {
			return true
		}
	}
	return false
}
