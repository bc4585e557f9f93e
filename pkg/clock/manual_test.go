package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManualFiresInDeadlineOrder(t *testing.T) {
	start := time.Unix(0, 0)
	c := NewManual(start)

	var fired []string
	c.AfterFunc(30*time.Millisecond, func() { fired = append(fired, "c") })
	c.AfterFunc(10*time.Millisecond, func() { fired = append(fired, "a") })
	c.AfterFunc(20*time.Millisecond, func() { fired = append(fired, "b") })

	c.Advance(15 * time.Millisecond)
	assert.Equal(t, []string{"a"}, fired)
	assert.Equal(t, start.Add(15*time.Millisecond), c.Now())

	c.Advance(15 * time.Millisecond)
	assert.Equal(t, []string{"a", "b", "c"}, fired)
	assert.Zero(t, c.Pending())
}

func TestManualStopPreventsCallback(t *testing.T) {
	c := NewManual(time.Unix(0, 0))
	called := false
	timer := c.AfterFunc(time.Second, func() { called = true })

	require.True(t, timer.Stop())
	assert.False(t, timer.Stop())

	c.Advance(2 * time.Second)
	assert.False(t, called)
}

func TestManualCallbackCanReschedule(t *testing.T) {
	c := NewManual(time.Unix(0, 0))
	var at []time.Duration
	start := c.Now()

	var tick func()
	tick = func() {
		at = append(at, c.Now().Sub(start))
		if len(at) < 3 {
			c.AfterFunc(10*time.Millisecond, tick)
		}
	}
	c.AfterFunc(10*time.Millisecond, tick)

	c.Advance(100 * time.Millisecond)
	assert.Equal(t, []time.Duration{10 * time.Millisecond, 20 * time.Millisecond, 30 * time.Millisecond}, at)
}
