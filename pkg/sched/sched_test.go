package sched_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"souk/pkg/sched"
)

func TestAfterFiresOnAdvance(t *testing.T) {
	clock := sched.NewManualClock()
	s := sched.New(clock)

	fired := false
	s.After(500*time.Millisecond, func() { fired = true })

	clock.Advance(499 * time.Millisecond)
	assert.False(t, fired)

	clock.Advance(1 * time.Millisecond)
	assert.True(t, fired)
	assert.Zero(t, s.Pending())
}

func TestCancelPreventsFire(t *testing.T) {
	clock := sched.NewManualClock()
	s := sched.New(clock)

	fired := false
	cancel := s.After(time.Second, func() { fired = true })
	cancel()

	clock.Advance(2 * time.Second)
	assert.False(t, fired)
	assert.Zero(t, s.Pending())

	// Cancelling again is a no-op.
	assert.NotPanics(t, func() { cancel() })
}

func TestTimersFireInDeadlineOrder(t *testing.T) {
	clock := sched.NewManualClock()
	s := sched.New(clock)

	var order []int
	s.After(3*time.Second, func() { order = append(order, 3) })
	s.After(1*time.Second, func() { order = append(order, 1) })
	s.After(2*time.Second, func() { order = append(order, 2) })

	clock.Advance(5 * time.Second)
	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestCallbackMayScheduleFurtherTimers(t *testing.T) {
	clock := sched.NewManualClock()
	s := sched.New(clock)

	var order []string
	s.After(time.Second, func() {
		order = append(order, "first")
		s.After(time.Second, func() { order = append(order, "chained") })
	})

	clock.Advance(2 * time.Second)
	assert.Equal(t, []string{"first", "chained"}, order)
}

func TestStopCancelsEverything(t *testing.T) {
	clock := sched.NewManualClock()
	s := sched.New(clock)

	fired := 0
	s.After(time.Second, func() { fired++ })
	s.After(2*time.Second, func() { fired++ })

	s.Stop()
	clock.Advance(5 * time.Second)

	assert.Zero(t, fired)
	assert.Zero(t, s.Pending())

	// Scheduling after Stop is inert.
	cancel := s.After(time.Second, func() { fired++ })
	clock.Advance(5 * time.Second)
	assert.Zero(t, fired)
	assert.NotPanics(t, func() { cancel() })
}
