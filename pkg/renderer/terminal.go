package renderer

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alban-care/snake-game/pkg/config"
	"github.com/alban-care/snake-game/pkg/game"
)

// TerminalRenderer handles terminal-based rendering
type TerminalRenderer struct {
	out    io.Writer
	clear  bool
	board  [][]int
	buffer strings.Builder
}

// Cell types for the board
const (
	cellEmpty = iota
	cellWall
	cellHead
	cellBody
	cellFood
	cellCrash
)

// NewTerminalRenderer creates a renderer for a gridSize board drawn to stdout.
func NewTerminalRenderer(gridSize int) *TerminalRenderer {
	return newTerminalRenderer(os.Stdout, gridSize, true)
}

func newTerminalRenderer(out io.Writer, gridSize int, clear bool) *TerminalRenderer {
	// One wall cell on each side; a head that left the grid is drawn on the wall.
	side := gridSize + 2
	board := make([][]int, side)
	for i := range board {
		board[i] = make([]int, side)
	}

	return &TerminalRenderer{
		out:   out,
		clear: clear,
		board: board,
	}
}

// ShowCursor shows the cursor (call on exit)
func (r *TerminalRenderer) ShowCursor() {
	fmt.Fprint(r.out, "\033[?25h")
}

// HideCursor hides the cursor (call on start)
func (r *TerminalRenderer) HideCursor() {
	fmt.Fprint(r.out, "\033[?25l")
}

// Render draws the frame.
func (r *TerminalRenderer) Render(f game.Frame) {
	r.buffer.Reset()
	if r.clear {
		r.buffer.WriteString("\033[H\033[2J\033[3J")
	}

	side := len(r.board)
	for y := range r.board {
		for x := range r.board[y] {
			if x == 0 || y == 0 || x == side-1 || y == side-1 {
				r.board[y][x] = cellWall
			} else {
				r.board[y][x] = cellEmpty
			}
		}
	}

	r.set(f.Food, cellFood)
	for i := len(f.Snake) - 1; i >= 0; i-- {
		if i == 0 {
			r.set(f.Snake[i], cellHead)
		} else {
			r.set(f.Snake[i], cellBody)
		}
	}
	if f.Status == game.Lost.String() && len(f.Snake) > 0 {
		r.set(f.Snake[0], cellCrash)
	}

	r.buffer.WriteString("\n  SNAKE\n")
	r.buffer.WriteString(fmt.Sprintf("  Score: %d  |  High score: %d  |  Speed: %dms\n\n", f.Score, f.HighScore, f.SpeedMillis))

	for _, row := range r.board {
		r.buffer.WriteString("  ")
		for _, cell := range row {
			switch cell {
			case cellEmpty:
				r.buffer.WriteString(config.CharEmpty)
			case cellWall:
				r.buffer.WriteString(config.CharWall)
			case cellHead:
				r.buffer.WriteString(config.CharHead)
			case cellBody:
				r.buffer.WriteString(config.CharBody)
			case cellFood:
				r.buffer.WriteString(config.CharFood)
			case cellCrash:
				r.buffer.WriteString("XX")
			}
		}
		r.buffer.WriteString("\n")
	}

	r.buffer.WriteString(fmt.Sprintf("\n  Press SPACE to %s, arrows or WASD to move, Q to quit\n", f.Instruction))

	fmt.Fprint(r.out, r.buffer.String())
}

// set marks p, shifted past the wall. Cells beyond the wall are dropped.
func (r *TerminalRenderer) set(p game.Point, cell int) {
	x, y := p.X+1, p.Y+1
	if y < 0 || y >= len(r.board) || x < 0 || x >= len(r.board[y]) {
		return
	}
	r.board[y][x] = cell
}
