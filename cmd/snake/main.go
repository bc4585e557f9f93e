package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/alban-care/snake-game/pkg/clock"
	"github.com/alban-care/snake-game/pkg/config"
	"github.com/alban-care/snake-game/pkg/ctxlog"
	"github.com/alban-care/snake-game/pkg/game"
	"github.com/alban-care/snake-game/pkg/input"
	"github.com/alban-care/snake-game/pkg/renderer"
	"github.com/alban-care/snake-game/pkg/stats"
)

func main() {
	settings, exit, err := config.ParseFlags("snake", os.Args[1:], os.Stderr)
	if exit {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(2)
	}

	// The board owns the terminal, so logs always go to a file.
	if settings.LogFile == "" {
		settings.LogFile = config.DefaultLogFile
	}
	logger, closer, err := ctxlog.New(settings, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(2)
	}
	defer closer.Close()

	summary, err := run(settings, logger)
	if err != nil {
		logger.Error("Game stopped.", "error", err)
		fmt.Fprintln(os.Stderr, "\nError:", err)
		closer.Close()
		os.Exit(1)
	}

	fmt.Printf("\n  Rounds: %d  |  Best: %d  |  Average: %.1f\n", summary.Rounds, summary.BestScore, summary.AverageScore)
	fmt.Println("  Thanks for playing! 👋")
}

func run(settings config.Settings, logger *slog.Logger) (stats.Summary, error) {
	ctx, cancel := context.WithCancel(ctxlog.WithLogger(context.Background(), logger))
	defer cancel()

	ledger, err := stats.Open(ctx)
	if err != nil {
		return stats.Summary{}, err
	}
	defer ledger.Close()

	g, err := game.NewGame(settings.GridSize, settings.RandomSeed())
	if err != nil {
		return stats.Summary{}, err
	}

	// Initialize input handler
	inputHandler := input.NewKeyboardHandler()
	if err := inputHandler.Start(); err != nil {
		return stats.Summary{}, fmt.Errorf("opening keyboard: %w", err)
	}
	defer inputHandler.Stop()

	render := renderer.NewTerminalRenderer(settings.GridSize)
	render.HideCursor()
	defer render.ShowCursor()

	var out game.Renderer = render
	if settings.TraceFile != "" {
		tracer, err := renderer.CreateTracer(settings.TraceFile)
		if err != nil {
			return stats.Summary{}, err
		}
		defer tracer.Close()
		out = renderer.Multi(render, tracer)
	}

	loop := game.NewLoop(g, out, game.WithRecorder(ledger))
	throttle := input.NewThrottler(clock.Real{}, config.ThrottleWindow, loop.Submit)
	defer throttle.Stop()

	errCh := make(chan error, 1)
	go func() { errCh <- loop.Run(ctx) }()

	inputChan := inputHandler.GetInputChan()

	// Main input loop
	for {
		select {
		case err := <-errCh:
			return stats.Summary{}, err
		case key, ok := <-inputChan:
			if !ok {
				cancel()
				<-errCh
				return stats.Summary{}, errors.New("keyboard input closed")
			}
			if input.IsQuit(key) {
				cancel()
				if err := <-errCh; err != nil {
					return stats.Summary{}, err
				}
				return ledger.Summary(context.Background())
			}
			if ev, ok := input.ParseKey(key); ok {
				throttle.Call(ev)
			}
		}
	}
}
