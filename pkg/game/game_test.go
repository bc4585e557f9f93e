package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alban-care/snake-game/pkg/config"
)

var epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func newRunningGame(t *testing.T) *Game {
	t.Helper()
	g, err := NewGame(config.GridSize, 42)
	require.NoError(t, err)
	_, err = g.Activate(epoch)
	require.NoError(t, err)
	return g
}

// feed places food directly in front of the head and ticks once.
func feed(t *testing.T, g *Game) TickResult {
	t.Helper()
	g.food = g.snake.Head().Add(g.direction.Delta())
	res, err := g.Tick(epoch)
	require.NoError(t, err)
	return res
}

func TestNewGameStartsIdle(t *testing.T) {
	g, err := NewGame(config.GridSize, 1)
	require.NoError(t, err)

	assert.Equal(t, Idle, g.Status())
	assert.Equal(t, Snake{{X: 10, Y: 10}}, g.Snake())
	assert.Equal(t, Left, g.Direction())
	assert.Equal(t, config.InitialSpeed, g.Speed())
	assert.NotEqual(t, Point{X: 10, Y: 10}, g.Food())
	assert.NotEmpty(t, g.RoundID())
	assert.Equal(t, "start", g.Frame().Instruction)
}

func TestTickMovesWithoutFood(t *testing.T) {
	g := newRunningGame(t)
	g.food = Point{X: 1, Y: 1}

	for i := 0; i < 3; i++ {
		res, err := g.Tick(epoch)
		require.NoError(t, err)
		assert.Equal(t, Moved, res.Outcome)
	}

	assert.Equal(t, Point{X: 7, Y: 10}, g.Snake().Head())
	assert.Equal(t, 1, g.Snake().Len())
}

func TestTickIgnoredUnlessRunning(t *testing.T) {
	g, err := NewGame(config.GridSize, 1)
	require.NoError(t, err)

	res, err := g.Tick(epoch)
	require.NoError(t, err)
	assert.Equal(t, Skipped, res.Outcome)
	assert.Equal(t, Point{X: 10, Y: 10}, g.Snake().Head())
}

func TestTurn(t *testing.T) {
	t.Run("reverse rejected", func(t *testing.T) {
		g := newRunningGame(t)
		assert.False(t, g.Turn(Right))
		assert.Equal(t, Left, g.Direction())
	})

	t.Run("perpendicular accepted", func(t *testing.T) {
		g := newRunningGame(t)
		assert.True(t, g.Turn(Up))
		assert.Equal(t, Up, g.Direction())
	})

	t.Run("ignored while idle", func(t *testing.T) {
		g, err := NewGame(config.GridSize, 1)
		require.NoError(t, err)
		assert.False(t, g.Turn(Up))
		assert.Equal(t, Left, g.Direction())
	})

	t.Run("ignored while paused", func(t *testing.T) {
		g := newRunningGame(t)
		_, err := g.Activate(epoch)
		require.NoError(t, err)
		assert.False(t, g.Turn(Down))
		assert.Equal(t, Left, g.Direction())
	})
}

func TestActivateTransitions(t *testing.T) {
	g, err := NewGame(config.GridSize, 1)
	require.NoError(t, err)

	steps := []struct {
		want        Status
		instruction string
	}{
		{Running, "pause"},
		{Paused, "resume"},
		{Running, "pause"},
	}
	for _, step := range steps {
		got, err := g.Activate(epoch)
		require.NoError(t, err)
		assert.Equal(t, step.want, got)
		assert.Equal(t, step.instruction, g.Frame().Instruction)
	}
}

func TestEatGrowsScoresAndRespawns(t *testing.T) {
	g := newRunningGame(t)

	res := feed(t, g)
	assert.Equal(t, Ate, res.Outcome)
	assert.Equal(t, 1, g.Score())
	assert.Equal(t, Snake{{X: 9, Y: 10}, {X: 9, Y: 10}}, g.Snake())
	assert.False(t, g.Snake().Contains(g.Food()))

	g.food = Point{X: 1, Y: 1}
	_, err := g.Tick(epoch)
	require.NoError(t, err)
	assert.Equal(t, Snake{{X: 8, Y: 10}, {X: 9, Y: 10}}, g.Snake())
}

func TestEatingWinsOverDying(t *testing.T) {
	g := newRunningGame(t)
	g.snake = Snake{{X: 0, Y: 5}}
	g.food = Point{X: -1, Y: 5}

	res, err := g.Tick(epoch)
	require.NoError(t, err)
	assert.Equal(t, Ate, res.Outcome)
	assert.Equal(t, Running, g.Status())
	assert.Equal(t, 1, g.Score())
}

func TestDyingOnWall(t *testing.T) {
	g := newRunningGame(t)
	g.food = Point{X: 15, Y: 15}
	g.snake = Snake{{X: 0, Y: 10}, {X: 1, Y: 10}, {X: 2, Y: 10}}
	g.score = 3

	res, err := g.Tick(epoch.Add(time.Minute))
	require.NoError(t, err)

	assert.Equal(t, Died, res.Outcome)
	assert.Equal(t, Lost, g.Status())
	assert.Equal(t, Snake{{X: -1, Y: 10}, {X: 0, Y: 10}}, g.Snake())
	assert.Equal(t, 0, g.Score())
	assert.Equal(t, 3, g.HighScore())
	assert.Equal(t, "restart", g.Frame().Instruction)

	require.NotNil(t, res.Round)
	assert.Equal(t, 3, res.Round.Score)
	assert.Equal(t, time.Minute, res.Round.Duration())
	assert.Equal(t, g.RoundID(), res.Round.ID)
}

func TestDyingOnSelf(t *testing.T) {
	g := newRunningGame(t)
	g.food = Point{X: 1, Y: 1}
	g.snake = Snake{{X: 5, Y: 5}, {X: 6, Y: 5}, {X: 6, Y: 6}, {X: 5, Y: 6}, {X: 4, Y: 6}}
	g.direction = Down

	res, err := g.Tick(epoch)
	require.NoError(t, err)
	assert.Equal(t, Died, res.Outcome)
	assert.Equal(t, 4, g.Snake().Len())
}

func TestHighScoreNeverDecreases(t *testing.T) {
	g := newRunningGame(t)
	feed(t, g)
	feed(t, g)
	die(t, g)
	assert.Equal(t, 2, g.HighScore())
	firstRound := g.RoundID()

	status, err := g.Activate(epoch)
	require.NoError(t, err)
	assert.Equal(t, Running, status)
	assert.NotEqual(t, firstRound, g.RoundID())
	assert.Equal(t, Snake{{X: 10, Y: 10}}, g.Snake())
	assert.Equal(t, config.InitialSpeed, g.Speed())

	feed(t, g)
	die(t, g)
	assert.Equal(t, 2, g.HighScore())

	status, err = g.Activate(epoch)
	require.NoError(t, err)
	assert.Equal(t, Running, status)
	for i := 0; i < 3; i++ {
		feed(t, g)
	}
	die(t, g)
	assert.Equal(t, 3, g.HighScore())
}

func die(t *testing.T, g *Game) {
	t.Helper()
	g.snake = Snake{{X: 0, Y: 10}}
	g.direction = Left
	g.food = Point{X: 15, Y: 15}
	res, err := g.Tick(epoch)
	require.NoError(t, err)
	require.Equal(t, Died, res.Outcome)
}

func TestSpeedDropsEveryFivePoints(t *testing.T) {
	g := newRunningGame(t)
	for i := 1; i <= 4; i++ {
		feed(t, g)
		assert.Equal(t, config.InitialSpeed, g.Speed(), "score %d", i)
	}
	feed(t, g)
	assert.Equal(t, 190*time.Millisecond, g.Speed())
}

func TestNextSpeed(t *testing.T) {
	cases := []struct {
		speed time.Duration
		score int
		want  time.Duration
	}{
		{200 * time.Millisecond, 0, 200 * time.Millisecond},
		{200 * time.Millisecond, 4, 200 * time.Millisecond},
		{200 * time.Millisecond, 5, 190 * time.Millisecond},
		{190 * time.Millisecond, 10, 180 * time.Millisecond},
		{60 * time.Millisecond, 15, 50 * time.Millisecond},
		{50 * time.Millisecond, 20, 50 * time.Millisecond},
		{55 * time.Millisecond, 25, 50 * time.Millisecond},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NextSpeed(tc.speed, tc.score), "speed %v score %d", tc.speed, tc.score)
	}

	speed := config.InitialSpeed
	for score := 1; score <= 200; score++ {
		speed = NextSpeed(speed, score)
		require.GreaterOrEqual(t, speed, config.MinSpeed)
	}
	assert.Equal(t, config.MinSpeed, speed)
}
