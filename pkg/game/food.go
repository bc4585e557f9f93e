package game

import (
	"errors"
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/alban-care/snake-game/pkg/config"
)

// ErrBoardFull is returned when no free cell is left for food.
var ErrBoardFull = errors.New("no free cell for food")

// Spawner places food on cells in [config.FoodMin, Size) that the snake does
// not occupy.
type Spawner struct {
	grid        Grid
	rng         *rand.Rand
	maxAttempts int
}

// NewSpawner returns a spawner seeded with seed.
func NewSpawner(grid Grid, seed uint64) *Spawner {
	return &Spawner{
		grid:        grid,
		rng:         rand.New(rand.NewSource(seed)),
		maxAttempts: config.MaxSpawnAttempts,
	}
}

// Spawn returns a free cell. It tries random draws first; once those are
// exhausted it picks uniformly among the remaining free cells.
func (s *Spawner) Spawn(occupied map[Point]struct{}) (Point, error) {
	for attempts := 0; attempts < s.maxAttempts; attempts++ {
		p := RandomPoint(s.rng, config.FoodMin, s.grid.Size)
		if _, taken := occupied[p]; !taken {
			return p, nil
		}
	}

	free := s.freeCells(occupied)
	if len(free) == 0 {
		return Point{}, fmt.Errorf("spawning food on %dx%d grid: %w", s.grid.Size, s.grid.Size, ErrBoardFull)
	}
	return free[s.rng.Intn(len(free))], nil
}

func (s *Spawner) freeCells(occupied map[Point]struct{}) []Point {
	var free []Point
	for y := config.FoodMin; y < s.grid.Size; y++ {
		for x := config.FoodMin; x < s.grid.Size; x++ {
			p := Point{X: x, Y: y}
			if _, taken := occupied[p]; !taken {
				free = append(free, p)
			}
		}
	}
	return free
}
