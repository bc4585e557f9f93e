// Package gui is a desktop window renderer built on ebiten.
package gui

import (
	"fmt"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/alban-care/snake-game/pkg/game"
)

const (
	cellPixels  = 20
	panelPixels = 40
)

var (
	bgColor    = color.RGBA{24, 24, 28, 255}
	gridColor  = color.RGBA{40, 40, 48, 255}
	headColor  = color.RGBA{80, 220, 120, 255}
	bodyColor  = color.RGBA{60, 180, 100, 255}
	foodColor  = color.RGBA{230, 70, 70, 255}
	crashColor = color.RGBA{250, 200, 60, 255}
)

// GUI is a desktop window. It renders the latest frame handed to Render and
// forwards key presses to onEvent. Ebiten drives Update and Draw on its own
// goroutine, so the frame is guarded.
type GUI struct {
	gridSize int
	onEvent  func(game.Event)
	closed   <-chan struct{}

	mu    sync.Mutex
	frame game.Frame
}

// NewGUI creates a window renderer for a gridSize board.
func NewGUI(gridSize int, onEvent func(game.Event)) *GUI {
	return &GUI{
		gridSize: gridSize,
		onEvent:  onEvent,
		frame:    game.Frame{GridSize: gridSize, Instruction: game.Idle.Instruction()},
	}
}

// CloseWhen closes the window once done is closed, e.g. when the game loop
// stops on its own.
func (g *GUI) CloseWhen(done <-chan struct{}) {
	g.closed = done
}

// Render stores f for the next Draw.
func (g *GUI) Render(f game.Frame) {
	f.Snake = append([]game.Point(nil), f.Snake...)
	g.mu.Lock()
	g.frame = f
	g.mu.Unlock()
}

// Update polls the keyboard. Escape closes the window.
func (g *GUI) Update() error {
	select {
	case <-g.closed:
		return ebiten.Termination
	default:
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.onEvent(game.ActivateEvent())
	}

	keys := []struct {
		primary, alt ebiten.Key
		dir          game.Direction
	}{
		{ebiten.KeyArrowUp, ebiten.KeyW, game.Up},
		{ebiten.KeyArrowDown, ebiten.KeyS, game.Down},
		{ebiten.KeyArrowLeft, ebiten.KeyA, game.Left},
		{ebiten.KeyArrowRight, ebiten.KeyD, game.Right},
	}
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k.primary) || inpututil.IsKeyJustPressed(k.alt) {
			g.onEvent(game.TurnEvent(k.dir))
		}
	}
	return nil
}

// Draw paints the board and the score panel.
func (g *GUI) Draw(screen *ebiten.Image) {
	g.mu.Lock()
	f := g.frame
	g.mu.Unlock()

	screen.Fill(bgColor)

	side := float32(g.gridSize * cellPixels)
	for i := 0; i <= g.gridSize; i++ {
		pos := float32(i * cellPixels)
		vector.StrokeLine(screen, pos, panelPixels, pos, panelPixels+side, 1, gridColor, false)
		vector.StrokeLine(screen, 0, panelPixels+pos, side, panelPixels+pos, 1, gridColor, false)
	}

	g.drawCell(screen, f.Food, foodColor)
	for i := len(f.Snake) - 1; i >= 0; i-- {
		c := bodyColor
		if i == 0 {
			c = headColor
			if f.Status == game.Lost.String() {
				c = crashColor
			}
		}
		g.drawCell(screen, f.Snake[i], c)
	}

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Score: %d   High score: %d", f.Score, f.HighScore), 8, 4)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("SPACE to %s", f.Instruction), 8, 20)
}

func (g *GUI) drawCell(screen *ebiten.Image, p game.Point, c color.Color) {
	if p.X < 0 || p.Y < 0 || p.X >= g.gridSize || p.Y >= g.gridSize {
		return
	}
	x := float32(p.X*cellPixels) + 1
	y := float32(panelPixels+p.Y*cellPixels) + 1
	vector.DrawFilledRect(screen, x, y, cellPixels-2, cellPixels-2, c, false)
}

// Layout keeps a fixed logical size; ebiten scales it to the window.
func (g *GUI) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.WindowSize()
}

// WindowSize returns the logical screen size in pixels.
func (g *GUI) WindowSize() (int, int) {
	return g.gridSize * cellPixels, g.gridSize*cellPixels + panelPixels
}
