package config

import "time"

// Board defaults
const (
	GridSize = 20 // Cells per side
	StartX   = 10 // Initial head column
	StartY   = 10 // Initial head row

	// Food is drawn from [FoodMin, GridSize) on both axes, so the 0 row and
	// column never hold food.
	FoodMin = 1

	// Rejection-sampling attempts before the spawner falls back to scanning
	// the free cells.
	MaxSpawnAttempts = 256
)

// Speed curve. Speed is the tick interval: lower is faster.
const (
	InitialSpeed = 200 * time.Millisecond
	SpeedStep    = 10 * time.Millisecond // Removed every SpeedUpEvery points
	MinSpeed     = 50 * time.Millisecond // Floor
	SpeedUpEvery = 5
)

// ThrottleWindow is the input throttle window. It is bound once to the
// starting speed and does not follow later speed changes.
const ThrottleWindow = InitialSpeed

// Characters for terminal rendering
const (
	CharEmpty = " ."
	CharWall  = "##"
	CharHead  = "@@"
	CharBody  = "oo"
	CharFood  = "<>"
)

// Binary defaults
const (
	DefaultAddr    = ":8080"
	DefaultLogFile = "snake.log"
)
