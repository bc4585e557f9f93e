package game

// Snake is the ordered body, head first. It always has at least one segment.
type Snake []Point

// NewSnake returns a one-segment snake at head.
func NewSnake(head Point) Snake {
	return Snake{head}
}

// Head returns the first segment.
func (s Snake) Head() Point { return s[0] }

// Tail returns the last segment.
func (s Snake) Tail() Point { return s[len(s)-1] }

// Len returns the number of segments.
func (s Snake) Len() int { return len(s) }

// Move returns a new snake with a head one cell towards dir and the last
// segment dropped. Length is unchanged.
func (s Snake) Move(dir Direction) Snake {
	moved := make(Snake, 0, len(s))
	moved = append(moved, s.Head().Add(dir.Delta()))
	moved = append(moved, s[:len(s)-1]...)
	return moved
}

// Grow returns a new snake with the tail duplicated. The duplicate is consumed
// by the next Move, so the visible length catches up one tick later.
func (s Snake) Grow() Snake {
	grown := make(Snake, len(s), len(s)+1)
	copy(grown, s)
	return append(grown, s.Tail())
}

// TrimTail drops the last segment, keeping at least one.
func (s Snake) TrimTail() Snake {
	if len(s) <= 1 {
		return s
	}
	return s[:len(s)-1]
}

// HitSelf reports whether any segment after the head shares its cell.
func (s Snake) HitSelf() bool {
	head := s.Head()
	for _, p := range s[1:] {
		if p == head {
			return true
		}
	}
	return false
}

// Contains reports whether p is any segment.
func (s Snake) Contains(p Point) bool {
	for _, part := range s {
		if part == p {
			return true
		}
	}
	return false
}

// Occupied returns the body as a set.
func (s Snake) Occupied() map[Point]struct{} {
	set := make(map[Point]struct{}, len(s))
	for _, p := range s {
		set[p] = struct{}{}
	}
	return set
}
