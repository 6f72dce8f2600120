package model

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
)

const (
	gridPosBlock = "██"
	gridPosEmpty = "  "

	clearCmd        = "clear"
	ansiClearScreen = "\033[H\033[2J"
)

// TerminalRenderer draws grids as block characters on a terminal
type TerminalRenderer struct {
	Out io.Writer
}

func (r *TerminalRenderer) out() io.Writer {
	if r.Out == nil {
		return os.Stdout
	}
	return r.Out
}

// Display renders the grid to the terminal
func (r *TerminalRenderer) Display(g *Grid) {
	w := bufio.NewWriter(r.out())
	for row := range g.rows {
		for col := range g.cols {
			if g.cells[row][col] == Alive {
				w.WriteString(gridPosBlock)
			} else {
				w.WriteString(gridPosEmpty)
			}
		}
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		fmt.Fprintln(os.Stderr, "Error rendering grid:", err)
	}
}

// Clear clears the terminal screen, falling back to an ANSI escape
func (r *TerminalRenderer) Clear() {
	cmd := exec.Command(clearCmd)
	cmd.Stdout = r.out()
	if err := cmd.Run(); err != nil {
		fmt.Fprint(r.out(), ansiClearScreen)
	}
}
