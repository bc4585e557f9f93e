package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/alban-care/snake-game/pkg/config"
	"github.com/alban-care/snake-game/pkg/ctxlog"
	"github.com/alban-care/snake-game/pkg/server"
	"github.com/alban-care/snake-game/pkg/stats"
)

func main() {
	settings, exit, err := config.ParseFlags("webserver", os.Args[1:], os.Stderr)
	if exit {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(2)
	}

	logger, closer, err := ctxlog.New(settings, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(2)
	}
	defer closer.Close()
	slog.SetDefault(logger)

	if level, _ := settings.Level(); level > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ledger, err := stats.Open(ctx)
	if err != nil {
		logger.Error("Failed to open ledger.", "error", err)
		closer.Close()
		os.Exit(1)
	}
	defer ledger.Close()

	fmt.Printf("🚀 Snake Game Web Server starting on http://localhost%s\n", settings.Addr)

	srv := server.New(settings, ledger, server.WithLogger(logger))
	if err := srv.Run(ctx); err != nil {
		logger.Error("Server stopped.", "error", err)
		ledger.Close()
		closer.Close()
		os.Exit(1)
	}
	logger.Info("Server stopped.")
}
