package game

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alban-care/snake-game/pkg/clock"
	"github.com/alban-care/snake-game/pkg/ctxlog"
)

// RoundRecorder receives finished rounds.
type RoundRecorder interface {
	Record(ctx context.Context, r RoundResult) error
}

// Loop owns a Game and applies input events and timer ticks to it one at a
// time on the goroutine running Run.
type Loop struct {
	game     *Game
	renderer Renderer
	clock    clock.Clock
	recorder RoundRecorder

	events chan Event
	ticks  chan uint64
	done   chan struct{}

	// Only touched by the Run goroutine.
	timer clock.Timer
	gen   uint64
}

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithClock replaces the real clock.
func WithClock(c clock.Clock) LoopOption {
	return func(l *Loop) { l.clock = c }
}

// WithRecorder reports every finished round to r.
func WithRecorder(r RoundRecorder) LoopOption {
	return func(l *Loop) { l.recorder = r }
}

// NewLoop wires g to renderer.
func NewLoop(g *Game, renderer Renderer, opts ...LoopOption) *Loop {
	l := &Loop{
		game:     g,
		renderer: renderer,
		clock:    clock.Real{},
		events:   make(chan Event, 16),
		ticks:    make(chan uint64, 1),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Submit queues an event. It is safe from any goroutine and returns
// immediately once the loop has stopped.
func (l *Loop) Submit(ev Event) {
	select {
	case l.events <- ev:
	case <-l.done:
	}
}

// Done is closed when Run returns.
func (l *Loop) Done() <-chan struct{} { return l.done }

// Run renders the initial frame and processes events and ticks until ctx is
// cancelled or the game hits a fatal error.
func (l *Loop) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	defer close(l.done)
	defer l.disarm()

	logger.Debug("Game loop started.", "round", l.game.RoundID(), "grid", l.game.Grid().Size)
	l.renderer.Render(l.game.Frame())

	for {
		select {
		case <-ctx.Done():
			logger.Debug("Game loop stopped.")
			return nil
		case ev := <-l.events:
			if err := l.handleEvent(ctx, ev); err != nil {
				return err
			}
		case gen := <-l.ticks:
			if err := l.handleTick(ctx, gen); err != nil {
				return err
			}
		}
	}
}

func (l *Loop) handleEvent(ctx context.Context, ev Event) error {
	logger := ctxlog.FromContext(ctx)

	switch ev.Kind {
	case Activate:
		prev := l.game.Status()
		next, err := l.game.Activate(l.clock.Now())
		if err != nil {
			return fmt.Errorf("activating from %s: %w", prev, err)
		}
		logger.Info("Status changed.", "from", prev, "to", next, "round", l.game.RoundID())
		l.syncTimer()
		l.renderer.Render(l.game.Frame())
	case Turn:
		if l.game.Turn(ev.Dir) {
			logger.Debug("Direction changed.", "direction", ev.Dir)
		}
	}
	return nil
}

func (l *Loop) handleTick(ctx context.Context, gen uint64) error {
	logger := ctxlog.FromContext(ctx)

	if gen != l.gen {
		logger.Debug("Dropped stale tick.", "gen", gen, "current", l.gen)
		return nil
	}
	l.timer = nil

	res, err := l.game.Tick(l.clock.Now())
	if err != nil {
		return fmt.Errorf("tick: %w", err)
	}

	switch res.Outcome {
	case Ate:
		logger.Debug("Food eaten.", "score", l.game.Score(), "speed", l.game.Speed())
	case Died:
		logger.Info("Round lost.",
			slog.String("round", res.Round.ID),
			slog.Int("score", res.Round.Score),
			slog.Int("highScore", l.game.HighScore()),
			slog.Int("ticks", res.Round.Ticks),
		)
		if l.recorder != nil {
			if err := l.recorder.Record(ctx, *res.Round); err != nil {
				logger.Error("Failed to record round.", "round", res.Round.ID, "error", err)
			}
		}
	}

	l.syncTimer()
	l.renderer.Render(l.game.Frame())
	return nil
}

// syncTimer arms a one-shot tick at the current speed while running and
// cancels any pending tick otherwise.
func (l *Loop) syncTimer() {
	if l.game.Status() == Running {
		l.arm()
		return
	}
	l.disarm()
}

func (l *Loop) arm() {
	l.disarm()
	gen := l.gen
	l.timer = l.clock.AfterFunc(l.game.Speed(), func() {
		select {
		case l.ticks <- gen:
		case <-l.done:
		}
	})
}

// disarm stops the pending timer and bumps the generation so a tick that
// already fired but is still queued gets dropped.
func (l *Loop) disarm() {
	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
	l.gen++
}
