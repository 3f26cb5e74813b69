package expiringmap_test

import (
	"testing"
	"time"

	expiringmap "github.com/aicacia/go-expiring-map"
)

func TestSchedulerFunc_Schedule(t *testing.T) {
	t.Parallel()

	var gotDelay time.Duration
	scheduler := expiringmap.SchedulerFunc(func(d time.Duration, f func()) expiringmap.Timer {
		gotDelay = d
		f()
		return unstoppableTimer{}
	})

	called := false
	scheduler.Schedule(time.Second, func() { called = true })
	if gotDelay != time.Second {
		t.Errorf("delay = %v, want 1s", gotDelay)
	}
	if !called {
		t.Error("scheduled function was not invoked")
	}
}

func TestSystemScheduler(t *testing.T) {
	t.Parallel()

	t.Run("fires after the delay", func(t *testing.T) {
		t.Parallel()

		fired := make(chan struct{})
		expiringmap.SystemScheduler.Schedule(time.Millisecond, func() { close(fired) })

		// Timing is best effort on the system scheduler, so use a wide margin.
		select {
		case <-fired:
		case <-time.After(5 * time.Second):
			t.Fatal("scheduled call did not fire")
		}
	})

	t.Run("stopped call does not fire", func(t *testing.T) {
		t.Parallel()

		fired := make(chan struct{})
		timer := expiringmap.SystemScheduler.Schedule(time.Hour, func() { close(fired) })
		if !timer.Stop() {
			t.Fatal("Stop must prevent a far-future call")
		}

		select {
		case <-fired:
			t.Fatal("stopped call fired")
		case <-time.After(50 * time.Millisecond):
		}
	})
}
