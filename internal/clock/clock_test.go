package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealClock_AfterFunc(t *testing.T) {
	c := &RealClock{}
	done := make(chan struct{})

	c.AfterFunc(time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("AfterFunc callback did not fire")
	}
}

func TestFakeClock_Now(t *testing.T) {
	fixed := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	c := NewFakeClock(fixed)

	assert.True(t, c.Now().Equal(fixed))

	c.Advance(time.Hour)
	assert.True(t, c.Now().Equal(fixed.Add(time.Hour)))

	later := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	c.Set(later)
	assert.True(t, c.Now().Equal(later))
}

func TestFakeClock_AdvanceFiresDueTimersInOrder(t *testing.T) {
	c := NewFakeClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	var fired []string

	c.AfterFunc(300*time.Millisecond, func() { fired = append(fired, "slow") })
	c.AfterFunc(100*time.Millisecond, func() { fired = append(fired, "fast") })
	c.AfterFunc(100*time.Millisecond, func() { fired = append(fired, "fast-2") })

	c.Advance(50 * time.Millisecond)
	assert.Empty(t, fired)
	assert.Equal(t, 3, c.Pending())

	c.Advance(100 * time.Millisecond)
	assert.Equal(t, []string{"fast", "fast-2"}, fired)

	c.Advance(time.Second)
	assert.Equal(t, []string{"fast", "fast-2", "slow"}, fired)
	assert.Equal(t, 0, c.Pending())
}

func TestFakeClock_Stop(t *testing.T) {
	c := NewFakeClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	called := false
	timer := c.AfterFunc(time.Second, func() { called = true })

	require.True(t, timer.Stop())
	require.False(t, timer.Stop())

	c.Advance(2 * time.Second)
	assert.False(t, called)

	fired := c.AfterFunc(time.Second, func() {})
	c.Advance(time.Second)
	assert.False(t, fired.Stop(), "Stop after firing reports false")
}

func TestFakeClock_CallbackMayScheduleTimers(t *testing.T) {
	c := NewFakeClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	count := 0

	c.AfterFunc(time.Second, func() {
		count++
		c.AfterFunc(time.Second, func() { count++ })
	})

	c.Advance(time.Second)
	assert.Equal(t, 1, count)

	c.Advance(time.Second)
	assert.Equal(t, 2, count)
}
