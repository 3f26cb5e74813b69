// maptest package provides test helpers for expiring map behavior.
//
// FakeClock implements both expiringmap.Clock and expiringmap.Scheduler with
// manually controlled time, so expiration tests run deterministically without
// sleeping. The generic Test and Benchmark functions are reusable behavioral
// suites for any configured map.
package maptest

import (
	"slices"
	"sync"
	"testing"
	"time"

	expiringmap "github.com/aicacia/go-expiring-map"
	"golang.org/x/sync/errgroup"
)

// FakeClock is a manually advanced time source.
// It implements expiringmap.Clock and expiringmap.Scheduler: scheduled calls
// fire during Advance, in deadline order, as the fake time passes them.
type FakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

var (
	_ expiringmap.Clock     = (*FakeClock)(nil)
	_ expiringmap.Scheduler = (*FakeClock)(nil)
)

// NewFakeClock creates a FakeClock starting at the given time.
func NewFakeClock(now time.Time) *FakeClock {
	return &FakeClock{now: now}
}

// Now returns the current fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Schedule registers f to fire once the fake time reaches now+d.
func (c *FakeClock) Schedule(d time.Duration, f func()) expiringmap.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := &fakeTimer{clock: c, deadline: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the fake time forward by d, firing every scheduled call whose
// deadline is passed, in deadline order. Each call runs with the fake time set
// to its own deadline and without the clock's lock held, so it may schedule or
// stop other timers.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	for {
		t := c.popDueLocked(target)
		if t == nil {
			c.now = target
			c.mu.Unlock()
			return
		}
		if t.deadline.After(c.now) {
			c.now = t.deadline
		}
		c.mu.Unlock()
		t.f()
		c.mu.Lock()
	}
}

// popDueLocked removes and returns the earliest unfired timer with a deadline
// at or before target, or nil when none remains.
func (c *FakeClock) popDueLocked(target time.Time) *fakeTimer {
	best := -1
	for i, t := range c.timers {
		if t.deadline.After(target) {
			continue
		}
		if best == -1 || t.deadline.Before(c.timers[best].deadline) {
			best = i
		}
	}
	if best == -1 {
		return nil
	}
	t := c.timers[best]
	t.fired = true
	c.timers = slices.Delete(c.timers, best, best+1)
	return t
}

type fakeTimer struct {
	clock    *FakeClock
	deadline time.Time
	f        func()
	fired    bool
	stopped  bool
}

// Stop cancels the pending call.
// It reports whether it prevented the call from running.
func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()

	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	t.clock.timers = slices.DeleteFunc(t.clock.timers, func(other *fakeTimer) bool {
		return other == t
	})
	return true
}

// TestBasicOperations exercises the insert/read/remove contract of the map.
// The map must be empty and must use a TTL long enough that no entry expires
// while the suite runs.
func TestBasicOperations[K expiringmap.KeyConstraint, V expiringmap.ValueConstraint](t *testing.T, m *expiringmap.Map[K, V], key K, value V) {
	t.Helper()

	if m.Has(key) {
		t.Errorf("key %v must be absent before insertion", key)
	}
	if got := m.Len(); got != 0 {
		t.Errorf("unexpected initial length: %d", got)
	}

	m.Set(key, value)
	if !m.Has(key) {
		t.Errorf("key %v must be present after insertion", key)
	}
	if _, ok := m.Get(key); !ok {
		t.Errorf("value for key %v must be readable after insertion", key)
	}
	if got := m.Len(); got != 1 {
		t.Errorf("unexpected length after insertion: %d", got)
	}

	if !m.Delete(key) {
		t.Errorf("deleting present key %v must report true", key)
	}
	if m.Delete(key) {
		t.Errorf("deleting absent key %v must report false", key)
	}
	if m.Has(key) {
		t.Errorf("key %v must be absent after deletion", key)
	}
}

// TestConcurrentAccess hammers the map from multiple goroutines to shake out
// data races under the race detector. The map must use a TTL long enough that
// no entry expires while the suite runs.
func TestConcurrentAccess[K expiringmap.KeyConstraint, V expiringmap.ValueConstraint](t *testing.T, m *expiringmap.Map[K, V], keys []K, value V) {
	t.Helper()

	const workers = 8
	var eg errgroup.Group
	for w := 0; w < workers; w++ {
		w := w
		eg.Go(func() error {
			for i, key := range keys {
				switch (i + w) % 4 {
				case 0:
					m.Set(key, value)
				case 1:
					m.Get(key)
				case 2:
					m.Has(key)
				case 3:
					m.Delete(key)
				}
			}
			for range m.All() {
				break
			}
			m.Len()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		t.Errorf("concurrent access failed: %v", err)
	}

	for _, key := range keys {
		if _, ok := m.Get(key); ok {
			if !m.Has(key) {
				t.Errorf("key %v readable but not reported present", key)
			}
		}
	}
}

// BenchmarkSet benchmarks the Set method of the map.
func BenchmarkSet[K expiringmap.KeyConstraint, V expiringmap.ValueConstraint](b *testing.B, m *expiringmap.Map[K, V], keys []K, value V) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Set(keys[i%len(keys)], value)
	}
}

// BenchmarkGet benchmarks the Get method of the map against pre-inserted keys.
func BenchmarkGet[K expiringmap.KeyConstraint, V expiringmap.ValueConstraint](b *testing.B, m *expiringmap.Map[K, V], keys []K, value V) {
	for _, key := range keys {
		m.Set(key, value)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, ok := m.Get(keys[i%len(keys)]); !ok {
			b.Fatalf("key %v must be present", keys[i%len(keys)])
		}
	}
}
