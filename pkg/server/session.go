package server

import (
	"context"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/alban-care/snake-game/pkg/game"
	"github.com/alban-care/snake-game/pkg/input"
)

// wsRenderer writes frames to a websocket connection. A failed write ends
// the session.
type wsRenderer struct {
	conn   *websocket.Conn
	cancel context.CancelFunc
	logger *slog.Logger

	writeMu sync.Mutex
}

func (r *wsRenderer) safeWriteJSON(v any) error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()
	return r.conn.WriteJSON(v)
}

func (r *wsRenderer) Render(frame game.Frame) {
	if err := r.safeWriteJSON(ServerMessage{Type: messageState, State: &frame}); err != nil {
		r.logger.Debug("Write error, closing session.", "error", err)
		r.cancel()
	}
}

func (r *wsRenderer) close(code int, reason string) {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()
	r.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason))
}

// readActions feeds client actions through the throttler until the
// connection fails, then cancels the session.
func readActions(conn *websocket.Conn, throttle *input.Throttler[game.Event], cancel context.CancelFunc, logger *slog.Logger) {
	defer cancel()

	for {
		var msg ClientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("Read error.", "error", err)
			}
			return
		}
		ev, ok := input.ParseAction(msg.Action)
		if !ok {
			logger.Debug("Ignored unknown action.", "action", msg.Action)
			continue
		}
		throttle.Call(ev)
	}
}
