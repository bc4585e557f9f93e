package game

import (
	"fmt"
	"time"
)

// Point represents a coordinate on the game board
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns p offset by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Direction is one of the four movement directions.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

// Delta returns the one-cell offset for d. Up decreases Y.
func (d Direction) Delta() Point {
	switch d {
	case Left:
		return Point{X: -1, Y: 0}
	case Right:
		return Point{X: 1, Y: 0}
	case Up:
		return Point{X: 0, Y: -1}
	case Down:
		return Point{X: 0, Y: 1}
	}
	return Point{}
}

// Opposite returns the reverse of d.
func (d Direction) Opposite() Direction {
	switch d {
	case Left:
		return Right
	case Right:
		return Left
	case Up:
		return Down
	default:
		return Up
	}
}

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	}
	return "unknown"
}

// ParseDirection parses "left", "right", "up" or "down".
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "left":
		return Left, true
	case "right":
		return Right, true
	case "up":
		return Up, true
	case "down":
		return Down, true
	}
	return Left, false
}

// Status is the game's lifecycle state. Exactly one is active at a time.
type Status int

const (
	Idle Status = iota
	Running
	Paused
	Lost
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Lost:
		return "lost"
	}
	return "unknown"
}

// Instruction is the hint shown for the activate key in each status.
func (s Status) Instruction() string {
	switch s {
	case Running:
		return "pause"
	case Paused:
		return "resume"
	case Lost:
		return "restart"
	default:
		return "start"
	}
}

// EventKind distinguishes the two input classes.
type EventKind int

const (
	Activate EventKind = iota // Start, pause, resume or restart
	Turn                      // Change direction
)

// Event is a single actionable input.
type Event struct {
	Kind EventKind
	Dir  Direction // Only meaningful for Turn
}

// ActivateEvent returns the activate action.
func ActivateEvent() Event { return Event{Kind: Activate} }

// TurnEvent returns a direction change to d.
func TurnEvent(d Direction) Event { return Event{Kind: Turn, Dir: d} }

// Frame is a snapshot of the game for renderers.
type Frame struct {
	Snake       []Point `json:"snake"`
	Food        Point   `json:"food"`
	GridSize    int     `json:"gridSize"`
	Score       int     `json:"score"`
	HighScore   int     `json:"highScore"`
	Status      string  `json:"status"`
	Instruction string  `json:"instruction"`
	Direction   string  `json:"direction"`
	SpeedMillis int64   `json:"speedMs"`
}

// Renderer draws frames. It must not call back into the game.
type Renderer interface {
	Render(f Frame)
}

// RenderFunc adapts a function to Renderer.
type RenderFunc func(Frame)

// Render calls f(frame).
func (f RenderFunc) Render(frame Frame) { f(frame) }

// RoundResult describes a finished round.
type RoundResult struct {
	ID        string
	Score     int
	FoodEaten int
	Ticks     int
	StartedAt time.Time
	EndedAt   time.Time
	GridSize  int
}

// Duration returns how long the round ran, pauses included.
func (r RoundResult) Duration() time.Duration {
	return r.EndedAt.Sub(r.StartedAt)
}
