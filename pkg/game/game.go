package game

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alban-care/snake-game/pkg/config"
)

// Outcome is what a tick did.
type Outcome int

const (
	Skipped Outcome = iota // Not running, nothing changed
	Moved
	Ate
	Died
)

func (o Outcome) String() string {
	switch o {
	case Moved:
		return "moved"
	case Ate:
		return "ate"
	case Died:
		return "died"
	}
	return "skipped"
}

// TickResult reports a tick. Round is set only when the tick ended a round.
type TickResult struct {
	Outcome Outcome
	Round   *RoundResult
}

// Game is the complete state of one player's session. It is not safe for
// concurrent use; Loop serializes access.
type Game struct {
	grid    Grid
	spawner *Spawner

	status    Status
	snake     Snake
	food      Point
	direction Direction
	score     int
	highScore int // Survives restarts
	speed     time.Duration

	roundID   string
	startedAt time.Time
	ticks     int
	foodEaten int
}

// NewGame creates an Idle game on a gridSize board. seed feeds the food RNG.
func NewGame(gridSize int, seed uint64) (*Game, error) {
	grid := Grid{Size: gridSize}
	g := &Game{
		grid:    grid,
		spawner: NewSpawner(grid, seed),
	}
	if err := g.reset(); err != nil {
		return nil, err
	}
	return g, nil
}

// reset starts a fresh round in Idle. The high score is kept.
func (g *Game) reset() error {
	snake := NewSnake(Point{X: config.StartX, Y: config.StartY})
	food, err := g.spawner.Spawn(snake.Occupied())
	if err != nil {
		return fmt.Errorf("placing initial food: %w", err)
	}

	g.status = Idle
	g.snake = snake
	g.food = food
	g.direction = Left
	g.score = 0
	g.speed = config.InitialSpeed
	g.roundID = uuid.New().String()
	g.startedAt = time.Time{}
	g.ticks = 0
	g.foodEaten = 0
	return nil
}

// Activate applies the activate action:
// Idle -> Running, Running -> Paused, Paused -> Running, Lost -> fresh Running.
func (g *Game) Activate(now time.Time) (Status, error) {
	switch g.status {
	case Idle:
		g.status = Running
		g.startedAt = now
	case Running:
		g.status = Paused
	case Paused:
		g.status = Running
	case Lost:
		if err := g.reset(); err != nil {
			return g.status, err
		}
		g.status = Running
		g.startedAt = now
	}
	return g.status, nil
}

// Turn changes direction. It is ignored unless the game is running, and a
// turn straight back onto the current direction is rejected.
func (g *Game) Turn(d Direction) bool {
	if g.status != Running {
		return false
	}
	if d == g.direction.Opposite() {
		return false
	}
	g.direction = d
	return true
}

// Tick advances the game one step. Eating wins over dying: when the head
// lands on food the game-over check is skipped for that tick.
func (g *Game) Tick(now time.Time) (TickResult, error) {
	if g.status != Running {
		return TickResult{Outcome: Skipped}, nil
	}

	g.ticks++
	g.snake = g.snake.Move(g.direction)

	if HeadOnFood(g.snake, g.food) {
		g.snake = g.snake.Grow()
		food, err := g.spawner.Spawn(g.snake.Occupied())
		if err != nil {
			return TickResult{}, err
		}
		g.food = food
		g.score++
		g.foodEaten++
		g.speed = NextSpeed(g.speed, g.score)
		return TickResult{Outcome: Ate}, nil
	}

	if IsGameOver(g.grid, g.snake) {
		g.snake = g.snake.TrimTail()
		g.status = Lost
		round := g.finishRound(now)
		return TickResult{Outcome: Died, Round: &round}, nil
	}

	return TickResult{Outcome: Moved}, nil
}

func (g *Game) finishRound(now time.Time) RoundResult {
	round := RoundResult{
		ID:        g.roundID,
		Score:     g.score,
		FoodEaten: g.foodEaten,
		Ticks:     g.ticks,
		StartedAt: g.startedAt,
		EndedAt:   now,
		GridSize:  g.grid.Size,
	}
	if g.score > g.highScore {
		g.highScore = g.score
	}
	g.score = 0
	return round
}

// NextSpeed returns the interval after reaching score. Every positive
// multiple of config.SpeedUpEvery removes config.SpeedStep, never going below
// config.MinSpeed.
func NextSpeed(speed time.Duration, score int) time.Duration {
	if score <= 0 || score%config.SpeedUpEvery != 0 {
		return speed
	}
	return max(speed-config.SpeedStep, config.MinSpeed)
}

// Status returns the lifecycle state.
func (g *Game) Status() Status { return g.status }

// Snake returns a copy of the body, head first.
func (g *Game) Snake() Snake { return append(Snake(nil), g.snake...) }

// Food returns the food cell.
func (g *Game) Food() Point { return g.food }

// Direction returns the current heading.
func (g *Game) Direction() Direction { return g.direction }

// Score returns the current round's score.
func (g *Game) Score() int { return g.score }

// HighScore returns the best score of this process.
func (g *Game) HighScore() int { return g.highScore }

// Speed returns the tick interval.
func (g *Game) Speed() time.Duration { return g.speed }

// Grid returns the board.
func (g *Game) Grid() Grid { return g.grid }

// RoundID identifies the current round.
func (g *Game) RoundID() string { return g.roundID }

// Frame returns a snapshot for renderers.
func (g *Game) Frame() Frame {
	return Frame{
		Snake:       g.Snake(),
		Food:        g.food,
		GridSize:    g.grid.Size,
		Score:       g.score,
		HighScore:   g.highScore,
		Status:      g.status.String(),
		Instruction: g.status.Instruction(),
		Direction:   g.direction.String(),
		SpeedMillis: g.speed.Milliseconds(),
	}
}
