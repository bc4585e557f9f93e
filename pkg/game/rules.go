package game

// OutOfBounds reports whether the snake's head has left the grid.
func OutOfBounds(grid Grid, s Snake) bool {
	return !grid.InBounds(s.Head())
}

// IsGameOver reports whether the head is off the grid or on the body.
func IsGameOver(grid Grid, s Snake) bool {
	return OutOfBounds(grid, s) || s.HitSelf()
}

// HeadOnFood reports whether the head is on the food.
func HeadOnFood(s Snake, food Point) bool {
	return s.Head() == food
}
