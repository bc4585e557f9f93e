// Package server hosts snake games for browsers. Every websocket connection
// plays its own game.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/alban-care/snake-game/pkg/clock"
	"github.com/alban-care/snake-game/pkg/config"
	"github.com/alban-care/snake-game/pkg/ctxlog"
	"github.com/alban-care/snake-game/pkg/game"
	"github.com/alban-care/snake-game/pkg/input"
	"github.com/alban-care/snake-game/pkg/stats"
)

const recentRounds = 10

// Server serves the websocket game and the ledger API.
type Server struct {
	settings config.Settings
	ledger   *stats.Ledger
	logger   *slog.Logger
	clock    clock.Clock
	upgrader websocket.Upgrader
}

// Option configures a Server.
type Option func(*Server)

// WithLogger replaces slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithClock replaces the real clock for every session.
func WithClock(c clock.Clock) Option {
	return func(s *Server) { s.clock = c }
}

// New creates a Server. Finished rounds of every session go to ledger.
func New(settings config.Settings, ledger *stats.Ledger, opts ...Option) *Server {
	s := &Server{
		settings: settings,
		ledger:   ledger,
		logger:   slog.Default(),
		clock:    clock.Real{},
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins for development
			},
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler builds the gin router.
func (s *Server) Handler() http.Handler {
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())

	router.GET("/healthz", s.health)
	api := router.Group("/api")
	{
		api.GET("/session", s.session)
	}
	router.GET("/ws", s.handleWebSocket)

	return router
}

// Run listens on the configured address until ctx is cancelled. Open game
// sessions are cancelled along with ctx.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:        s.settings.Addr,
		Handler:     s.Handler(),
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Web server listening.", "addr", s.settings.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listening on %s: %w", s.settings.Addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("Request served.",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"elapsed", time.Since(start),
		)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) session(c *gin.Context) {
	ctx := c.Request.Context()

	summary, err := s.ledger.Summary(ctx)
	if err != nil {
		s.logger.Error("Failed to summarize rounds.", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error while reading rounds"})
		return
	}
	recent, err := s.ledger.Recent(ctx, recentRounds)
	if err != nil {
		s.logger.Error("Failed to list rounds.", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error while reading rounds"})
		return
	}
	if recent == nil {
		recent = []stats.Round{}
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary, "recent": recent})
}

func (s *Server) handleWebSocket(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warn("Upgrade error.", "error", err)
		return
	}
	defer conn.Close()

	sessionID := uuid.NewString()
	logger := s.logger.With("session", sessionID, "remote", c.Request.RemoteAddr)
	logger.Info("New websocket connection.")

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()
	ctx = ctxlog.WithLogger(ctx, logger)

	g, err := game.NewGame(s.settings.GridSize, s.settings.RandomSeed())
	if err != nil {
		logger.Error("Failed to create game.", "error", err)
		return
	}

	out := &wsRenderer{conn: conn, cancel: cancel, logger: logger}
	if err := out.safeWriteJSON(ServerMessage{
		Type:   messageConfig,
		Config: &GameConfig{SessionID: sessionID, GridSize: g.Grid().Size},
	}); err != nil {
		logger.Warn("Write error.", "error", err)
		return
	}

	loop := game.NewLoop(g, out, game.WithClock(s.clock), game.WithRecorder(s.ledger))
	throttle := input.NewThrottler(s.clock, config.ThrottleWindow, loop.Submit)
	defer throttle.Stop()

	go readActions(conn, throttle, cancel, logger)

	if err := loop.Run(ctx); err != nil {
		logger.Error("Game stopped.", "error", err)
		out.close(websocket.CloseInternalServerErr, "game stopped")
		return
	}
	out.close(websocket.CloseNormalClosure, "")
	logger.Info("Websocket connection closed.")
}
