package input

import (
	"github.com/eiannone/keyboard"

	"github.com/alban-care/snake-game/pkg/game"
)

// KeyboardHandler handles keyboard input
type KeyboardHandler struct {
	inputChan chan KeyInput
}

// KeyInput represents a keyboard input event
type KeyInput struct {
	Char rune
	Key  keyboard.Key
}

// NewKeyboardHandler creates a new keyboard input handler
func NewKeyboardHandler() *KeyboardHandler {
	return &KeyboardHandler{
		inputChan: make(chan KeyInput),
	}
}

// Start puts the terminal in raw mode and begins forwarding keys.
func (h *KeyboardHandler) Start() error {
	if err := keyboard.Open(); err != nil {
		return err
	}

	go func() {
		for {
			char, key, err := keyboard.GetKey()
			if err != nil {
				close(h.inputChan)
				return
			}
			h.inputChan <- KeyInput{Char: char, Key: key}
		}
	}()

	return nil
}

// Stop restores the terminal.
func (h *KeyboardHandler) Stop() {
	keyboard.Close()
}

// GetInputChan returns the input channel. It is closed if reading fails.
func (h *KeyboardHandler) GetInputChan() <-chan KeyInput {
	return h.inputChan
}

// ParseKey maps a key to a game event. Space activates; arrows and WASD turn.
func ParseKey(input KeyInput) (game.Event, bool) {
	switch input.Key {
	case keyboard.KeySpace:
		return game.ActivateEvent(), true
	case keyboard.KeyArrowUp:
		return game.TurnEvent(game.Up), true
	case keyboard.KeyArrowDown:
		return game.TurnEvent(game.Down), true
	case keyboard.KeyArrowLeft:
		return game.TurnEvent(game.Left), true
	case keyboard.KeyArrowRight:
		return game.TurnEvent(game.Right), true
	}

	switch input.Char {
	case ' ':
		return game.ActivateEvent(), true
	case 'w', 'W':
		return game.TurnEvent(game.Up), true
	case 's', 'S':
		return game.TurnEvent(game.Down), true
	case 'a', 'A':
		return game.TurnEvent(game.Left), true
	case 'd', 'D':
		return game.TurnEvent(game.Right), true
	}

	return game.Event{}, false
}

// IsQuit checks if the input is a quit command
func IsQuit(input KeyInput) bool {
	return input.Char == 'q' || input.Char == 'Q' ||
		input.Key == keyboard.KeyEsc || input.Key == keyboard.KeyCtrlC
}

// ParseAction maps a textual action ("activate", "left", ...) to an event.
func ParseAction(action string) (game.Event, bool) {
	if action == "activate" {
		return game.ActivateEvent(), true
	}
	if d, ok := game.ParseDirection(action); ok {
		return game.TurnEvent(d), true
	}
	return game.Event{}, false
}
