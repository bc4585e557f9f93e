package server

import "github.com/alban-care/snake-game/pkg/game"

// ServerMessage is written to the browser. The first message of a session
// has type "config", every later one has type "state".
type ServerMessage struct {
	Type   string      `json:"type"`
	Config *GameConfig `json:"config,omitempty"`
	State  *game.Frame `json:"state,omitempty"`
}

// GameConfig describes the board of a session.
type GameConfig struct {
	SessionID string `json:"sessionId"`
	GridSize  int    `json:"gridSize"`
}

// ClientMessage is read from the browser.
type ClientMessage struct {
	Action string `json:"action"`
}

const (
	messageConfig = "config"
	messageState  = "state"
)
