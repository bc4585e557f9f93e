package renderer

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/alban-care/snake-game/pkg/game"
)

// TraceRecord is one line of a frame trace.
type TraceRecord struct {
	Seq   int        `json:"seq"`
	At    time.Time  `json:"at"`
	Frame game.Frame `json:"frame"`
}

// Tracer writes every rendered frame as a JSON line on a background
// goroutine so the game loop never waits on the disk.
type Tracer struct {
	closer  io.Closer
	writer  *bufio.Writer
	records chan TraceRecord
	now     func() time.Time
	wg      sync.WaitGroup

	mu      sync.Mutex
	closed  bool
	seq     int
	dropped int
}

// NewTracer traces frames to w.
func NewTracer(w io.Writer) *Tracer {
	t := &Tracer{
		writer:  bufio.NewWriter(w),
		records: make(chan TraceRecord, 1000), // Buffer up to 1000 frames
		now:     time.Now,
	}
	t.wg.Add(1)
	go t.writeLoop()
	return t
}

// CreateTracer truncates path and traces frames into it.
func CreateTracer(path string) (*Tracer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace file: %w", err)
	}
	t := NewTracer(f)
	t.closer = f
	return t, nil
}

// Render queues f. It never blocks; frames are dropped while the buffer is
// full.
func (t *Tracer) Render(f game.Frame) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}

	t.seq++
	rec := TraceRecord{Seq: t.seq, At: t.now(), Frame: f}
	select {
	case t.records <- rec:
	default:
		t.dropped++
	}
}

// Dropped returns how many frames did not fit in the buffer.
func (t *Tracer) Dropped() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dropped
}

// Close flushes queued frames and closes the file opened by CreateTracer.
func (t *Tracer) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	t.mu.Unlock()

	close(t.records)
	t.wg.Wait()

	err := t.writer.Flush()
	if t.closer != nil {
		if cerr := t.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func (t *Tracer) writeLoop() {
	defer t.wg.Done()

	encoder := json.NewEncoder(t.writer)
	for rec := range t.records {
		if err := encoder.Encode(rec); err != nil {
			fmt.Fprintf(os.Stderr, "Error tracing frame: %v\n", err)
		}
	}
}

// Multi fans each frame out to every renderer in order.
func Multi(renderers ...game.Renderer) game.Renderer {
	return game.RenderFunc(func(f game.Frame) {
		for _, r := range renderers {
			r.Render(f)
		}
	})
}
