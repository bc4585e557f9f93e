package game

import "golang.org/x/exp/rand"

// Grid is a square board of Size cells per side.
type Grid struct {
	Size int
}

// InBounds reports whether 0 <= x < Size and 0 <= y < Size.
func (g Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.Size && p.Y >= 0 && p.Y < g.Size
}

// RandomPoint draws each axis uniformly from [min, max).
func RandomPoint(rng *rand.Rand, min, max int) Point {
	return Point{
		X: rng.Intn(max-min) + min,
		Y: rng.Intn(max-min) + min,
	}
}
