// Package expiringmap provides a generic key-value map whose entries expire
// automatically after a configurable time-to-live.
//
// Expiration is enforced by one of two interchangeable strategies.
// Under eager eviction (the default), every insertion schedules a deferred
// call that removes the entry when its TTL elapses, independent of any
// subsequent access. Under lazy eviction, no call is scheduled; instead every
// read, existence check and enumeration first checks the entry's deadline
// against the clock and evicts it on the spot when it has passed.
package expiringmap

import (
	"errors"
	"iter"
	"slices"
	"sync"
	"time"

	"github.com/aicacia/go-expiring-map/expiration"
	"github.com/aicacia/go-expiring-map/internal/iterutil"
	"github.com/aicacia/go-expiring-map/internal/panicutil"
)

// ErrInvalidConfiguration is returned by New when the default TTL is not positive.
var ErrInvalidConfiguration = errors.New("expiringmap: default TTL must be positive")

// record is the internal per-key slot.
// value and expiresAt are immutable for the life of the record; replacing a
// key builds a fresh record rather than mutating the stored one in place.
type record[K KeyConstraint, V ValueConstraint] struct {
	value     V
	expiresAt time.Time
	timer     Timer // scheduled eviction, eager mode only
	index     int   // position in Map.order
}

// Map is a key-value map whose entries expire after a time-to-live measured
// from insertion. It is safe for concurrent use by multiple goroutines.
//
// The expiration handler, if configured, is always invoked outside the map's
// internal lock, so it may call back into the map.
type Map[K KeyConstraint, V ValueConstraint] struct {
	defaultTTL time.Duration
	lazy       bool
	onExpire   ExpirationHandler[K, V]
	onPanic    func(error)
	clock      Clock
	scheduler  Scheduler
	policy     expiration.Policy
	cloner     ValueCloner[V]

	mu      sync.Mutex
	records map[K]*record[K, V]
	order   []K
}

// New creates an empty map in which entries live for defaultTTL unless an
// insertion overrides it. It returns ErrInvalidConfiguration when defaultTTL
// is not positive.
func New[K KeyConstraint, V ValueConstraint](defaultTTL time.Duration, opts ...Option[K, V]) (*Map[K, V], error) {
	if defaultTTL <= 0 {
		return nil, ErrInvalidConfiguration
	}

	options := defaultOptions[K, V]()
	for _, opt := range opts {
		opt.apply(&options)
	}

	return &Map[K, V]{
		defaultTTL: defaultTTL,
		lazy:       options.lazy,
		onExpire:   options.onExpire,
		onPanic:    options.onPanic,
		clock:      options.clock,
		scheduler:  options.scheduler,
		policy:     options.policy,
		cloner:     options.cloner,
		records:    map[K]*record[K, V]{},
	}, nil
}

// Set stores value under key with the map's default TTL, replacing any
// existing entry for the key. It returns the map to support call chaining.
func (m *Map[K, V]) Set(key K, value V) *Map[K, V] {
	return m.SetTTL(key, value, m.defaultTTL)
}

// SetTTL stores value under key with an explicit TTL, replacing any existing
// entry for the key. A non-positive ttl falls back to the default TTL.
// It returns the map to support call chaining.
//
// Replacing a key cancels the prior entry's scheduled eviction as part of the
// same operation, so a stale timer can never evict the newer value. The
// replaced value is not reported to the expiration handler.
func (m *Map[K, V]) SetTTL(key K, value V, ttl time.Duration) *Map[K, V] {
	if ttl <= 0 {
		ttl = m.defaultTTL
	}
	value = m.cloner.CloneValue(value)

	m.mu.Lock()
	rec := &record[K, V]{value: value, expiresAt: m.clock.Now().Add(ttl)}
	if m.lazy {
		m.removeLocked(key)
		m.appendLocked(key, rec)
	} else if prev, ok := m.records[key]; ok {
		prev.timer.Stop()
		rec.index = prev.index
		m.records[key] = rec
	} else {
		m.appendLocked(key, rec)
	}
	if !m.lazy {
		rec.timer = m.scheduler.Schedule(ttl, func() { m.expire(key, rec) })
	}
	m.mu.Unlock()
	return m
}

// Get returns the value stored under key.
// Under lazy eviction an expired entry is removed, reported to the expiration
// handler, and treated as absent; under eager eviction presence alone decides.
func (m *Map[K, V]) Get(key K) (V, bool) {
	rec, ok := m.lookup(key)
	if !ok {
		var zero V
		return zero, false
	}
	return m.cloner.CloneValue(rec.value), true
}

// Has reports whether key is present, with the same expiration check and
// eviction side effect as Get.
func (m *Map[K, V]) Has(key K) bool {
	_, ok := m.lookup(key)
	return ok
}

// ExpiresAt returns the deadline of the entry stored under key, with the same
// expiration check and eviction side effect as Get.
func (m *Map[K, V]) ExpiresAt(key K) (time.Time, bool) {
	rec, ok := m.lookup(key)
	if !ok {
		return time.Time{}, false
	}
	return rec.expiresAt, true
}

// Delete removes the entry stored under key and cancels its scheduled
// eviction. It reports whether an entry was actually removed.
// The expiration handler is never invoked for a deleted entry.
func (m *Map[K, V]) Delete(key K) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.removeLocked(key) != nil
}

// Clear removes every entry and cancels every scheduled eviction.
// The expiration handler is never invoked for entries removed this way.
func (m *Map[K, V]) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, rec := range m.records {
		if rec.timer != nil {
			rec.timer.Stop()
		}
	}
	clear(m.records)
	m.order = m.order[:0]
}

// Len returns the number of live entries.
// Under lazy eviction it first sweeps every key through the expiration check,
// evicting and reporting each expired entry, so the count never includes
// stale entries.
func (m *Map[K, V]) Len() int {
	if !m.lazy {
		m.mu.Lock()
		defer m.mu.Unlock()
		return len(m.records)
	}

	n, expired := m.sweep()
	for _, e := range expired {
		m.notify(e.Key, e.Value)
	}
	return n
}

// Keys returns a single-pass sequence over the keys of live entries in
// insertion order. Each key is re-checked for expiration immediately before
// it is produced.
func (m *Map[K, V]) Keys() iter.Seq[K] {
	return iterutil.Map(m.Entries(), func(e Entry[K, V]) K { return e.Key })
}

// Values returns a single-pass sequence over the values of live entries in
// insertion order. Each entry is re-checked for expiration immediately before
// its value is produced.
func (m *Map[K, V]) Values() iter.Seq[V] {
	return iterutil.Map(m.Entries(), func(e Entry[K, V]) V { return e.Value })
}

// Entries returns a single-pass sequence over the live entries in insertion
// order. The set of keys is captured when iteration starts, but each entry is
// re-checked for expiration immediately before it is produced, so an entry
// that expires mid-traversal is skipped (and, under lazy eviction, evicted
// and reported) rather than yielded stale.
func (m *Map[K, V]) Entries() iter.Seq[Entry[K, V]] {
	return func(yield func(Entry[K, V]) bool) {
		iterutil.FilterMap(slices.Values(m.snapshotKeys()), m.take)(yield)
	}
}

// All returns a key-value sequence over the live entries, equivalent to
// Entries. It is the form meant for use with range.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for e := range m.Entries() {
			if !yield(e.Key, e.Value) {
				return
			}
		}
	}
}

// ForEach calls f once per live entry, in the same order as Entries.
func (m *Map[K, V]) ForEach(f func(key K, value V)) {
	for key, value := range m.All() {
		f(key, value)
	}
}

// expire is the scheduled eviction callback for rec.
// The record identity check makes a late-firing timer a no-op when the slot
// was deleted or replaced after the timer was scheduled.
func (m *Map[K, V]) expire(key K, rec *record[K, V]) {
	m.mu.Lock()
	if m.records[key] != rec {
		m.mu.Unlock()
		return
	}
	m.removeLocked(key)
	m.mu.Unlock()
	m.notify(key, rec.value)
}

// lookup returns the live record for key, applying the lazy expiration check
// first. A lazily-detected expired entry is removed and reported before
// lookup returns absent.
func (m *Map[K, V]) lookup(key K) (*record[K, V], bool) {
	m.mu.Lock()
	rec, ok := m.records[key]
	if !ok {
		m.mu.Unlock()
		return nil, false
	}
	if m.lazy && m.policy.IsExpired(m.clock.Now(), rec.expiresAt) {
		m.removeLocked(key)
		m.mu.Unlock()
		m.notify(key, rec.value)
		return nil, false
	}
	m.mu.Unlock()
	return rec, true
}

// take re-validates the slot for key and produces it as an Entry.
func (m *Map[K, V]) take(key K) (Entry[K, V], bool) {
	rec, ok := m.lookup(key)
	if !ok {
		return Entry[K, V]{}, false
	}
	return Entry[K, V]{Key: key, Value: m.cloner.CloneValue(rec.value)}, true
}

// sweep removes every expired entry and returns the live count together with
// the evicted entries in insertion order, for notification outside the lock.
func (m *Map[K, V]) sweep() (int, []Entry[K, V]) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock.Now()
	var expired []Entry[K, V]
	for i := 0; i < len(m.order); {
		key := m.order[i]
		rec := m.records[key]
		if m.policy.IsExpired(now, rec.expiresAt) {
			m.removeLocked(key)
			expired = append(expired, Entry[K, V]{Key: key, Value: rec.value})
			continue // removeLocked shifted the next key into position i
		}
		i++
	}
	return len(m.records), expired
}

func (m *Map[K, V]) snapshotKeys() []K {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.order)
}

// removeLocked unlinks the record for key, cancelling its scheduled eviction.
// It returns the removed record, or nil when the key is absent.
func (m *Map[K, V]) removeLocked(key K) *record[K, V] {
	rec, ok := m.records[key]
	if !ok {
		return nil
	}
	if rec.timer != nil {
		rec.timer.Stop()
	}
	delete(m.records, key)

	i := rec.index
	m.order = slices.Delete(m.order, i, i+1)
	for j := i; j < len(m.order); j++ {
		m.records[m.order[j]].index = j
	}
	return rec
}

func (m *Map[K, V]) appendLocked(key K, rec *record[K, V]) {
	rec.index = len(m.order)
	m.order = append(m.order, key)
	m.records[key] = rec
}

// notify reports an expired entry to the expiration handler.
// A panic raised by the handler is recovered; it is passed to the configured
// panic handler as an error, or discarded when none is configured.
func (m *Map[K, V]) notify(key K, value V) {
	if m.onExpire == nil {
		return
	}
	if err := panicutil.Call(func() { m.onExpire(key, value) }); err != nil && m.onPanic != nil {
		m.onPanic(err)
	}
}
