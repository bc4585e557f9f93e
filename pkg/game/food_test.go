package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestRandomPointRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		p := RandomPoint(rng, 1, 20)
		require.GreaterOrEqual(t, p.X, 1)
		require.Less(t, p.X, 20)
		require.GreaterOrEqual(t, p.Y, 1)
		require.Less(t, p.Y, 20)
	}
}

func TestSpawnAvoidsOccupied(t *testing.T) {
	grid := Grid{Size: 20}
	s := NewSpawner(grid, 1)
	occupied := map[Point]struct{}{}
	for x := 1; x < 20; x++ {
		occupied[Point{X: x, Y: 10}] = struct{}{}
	}

	for i := 0; i < 500; i++ {
		p, err := s.Spawn(occupied)
		require.NoError(t, err)
		_, taken := occupied[p]
		require.False(t, taken, "spawned on %s", p)
		require.GreaterOrEqual(t, p.X, 1)
		require.GreaterOrEqual(t, p.Y, 1)
	}
}

func TestSpawnFindsLastFreeCell(t *testing.T) {
	grid := Grid{Size: 5}
	s := NewSpawner(grid, 3)
	free := Point{X: 3, Y: 2}
	occupied := map[Point]struct{}{}
	for y := 1; y < 5; y++ {
		for x := 1; x < 5; x++ {
			if p := (Point{X: x, Y: y}); p != free {
				occupied[p] = struct{}{}
			}
		}
	}

	p, err := s.Spawn(occupied)
	require.NoError(t, err)
	assert.Equal(t, free, p)
}

func TestSpawnBoardFull(t *testing.T) {
	grid := Grid{Size: 3}
	s := NewSpawner(grid, 3)
	occupied := map[Point]struct{}{
		{X: 1, Y: 1}: {}, {X: 2, Y: 1}: {},
		{X: 1, Y: 2}: {}, {X: 2, Y: 2}: {},
	}

	_, err := s.Spawn(occupied)
	assert.ErrorIs(t, err, ErrBoardFull)
}
