package main

import (
	"context"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/alban-care/snake-game/pkg/clock"
	"github.com/alban-care/snake-game/pkg/config"
	"github.com/alban-care/snake-game/pkg/ctxlog"
	"github.com/alban-care/snake-game/pkg/game"
	"github.com/alban-care/snake-game/pkg/input"
	"github.com/alban-care/snake-game/pkg/renderer"
	"github.com/alban-care/snake-game/pkg/renderer/gui"
	"github.com/alban-care/snake-game/pkg/stats"
)

func main() {
	settings, exit, err := config.ParseFlags("snake-gui", os.Args[1:], os.Stderr)
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

	if err := run(ctxlog.WithLogger(context.Background(), logger), settings); err != nil {
		logger.Error("Game stopped.", "error", err)
		closer.Close()
		os.Exit(1)
	}
}

func run(ctx context.Context, settings config.Settings) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	logger := ctxlog.FromContext(ctx)

	ledger, err := stats.Open(ctx)
	if err != nil {
		return err
	}
	defer ledger.Close()

	g, err := game.NewGame(settings.GridSize, settings.RandomSeed())
	if err != nil {
		return err
	}

	var throttle *input.Throttler[game.Event]
	window := gui.NewGUI(settings.GridSize, func(ev game.Event) { throttle.Call(ev) })

	var out game.Renderer = window
	if settings.TraceFile != "" {
		tracer, err := renderer.CreateTracer(settings.TraceFile)
		if err != nil {
			return err
		}
		defer tracer.Close()
		out = renderer.Multi(window, tracer)
	}

	loop := game.NewLoop(g, out, game.WithRecorder(ledger))
	throttle = input.NewThrottler(clock.Real{}, config.ThrottleWindow, loop.Submit)
	defer throttle.Stop()

	errCh := make(chan error, 1)
	go func() { errCh <- loop.Run(ctx) }()

	window.CloseWhen(loop.Done())
	ebiten.SetWindowSize(window.WindowSize())
	ebiten.SetWindowTitle("Snake")
	runErr := ebiten.RunGame(window)

	cancel()
	if err := <-errCh; err != nil {
		return err
	}
	if runErr != nil {
		return fmt.Errorf("running window: %w", runErr)
	}

	summary, err := ledger.Summary(context.Background())
	if err != nil {
		return err
	}
	logger.Info("Window closed.", "rounds", summary.Rounds, "best", summary.BestScore)
	return nil
}
