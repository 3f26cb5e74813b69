package expiringmap

import (
	"github.com/aicacia/go-expiring-map/expiration"
)

// Option is the interface for the options of the map.
type Option[K KeyConstraint, V ValueConstraint] interface {
	apply(*options[K, V])
}

type optionFunc[K KeyConstraint, V ValueConstraint] func(*options[K, V])

func (f optionFunc[K, V]) apply(o *options[K, V]) {
	f(o)
}

// WithLazyEviction selects lazy eviction: no eviction is scheduled at
// insertion time, and expired entries are detected and removed only when
// they are read, checked, counted or enumerated.
func WithLazyEviction[K KeyConstraint, V ValueConstraint]() Option[K, V] {
	return optionFunc[K, V](func(o *options[K, V]) {
		o.lazy = true
	})
}

// WithExpirationHandler sets the callback invoked exactly once per entry
// expiration, whether timer-driven or access-detected. The handler is never
// invoked for entries removed by Delete or Clear, and is always called
// outside the map's internal lock.
func WithExpirationHandler[K KeyConstraint, V ValueConstraint](handler ExpirationHandler[K, V]) Option[K, V] {
	return optionFunc[K, V](func(o *options[K, V]) {
		o.onExpire = handler
	})
}

// WithPanicHandler sets the function that receives panics recovered from the
// expiration handler, converted to errors. Without it recovered panics are
// discarded.
func WithPanicHandler[K KeyConstraint, V ValueConstraint](handler func(error)) Option[K, V] {
	return optionFunc[K, V](func(o *options[K, V]) {
		o.onPanic = handler
	})
}

// WithClock sets the clock consulted by lazy expiration checks.
func WithClock[K KeyConstraint, V ValueConstraint](clock Clock) Option[K, V] {
	return optionFunc[K, V](func(o *options[K, V]) {
		o.clock = clock
	})
}

// WithScheduler sets the scheduler used by eager eviction to defer the
// per-entry eviction call.
func WithScheduler[K KeyConstraint, V ValueConstraint](scheduler Scheduler) Option[K, V] {
	return optionFunc[K, V](func(o *options[K, V]) {
		o.scheduler = scheduler
	})
}

// WithExpirationPolicy sets the staleness predicate used by lazy expiration
// checks. The default considers an entry expired once the current time
// reaches its deadline.
func WithExpirationPolicy[K KeyConstraint, V ValueConstraint](policy expiration.Policy) Option[K, V] {
	return optionFunc[K, V](func(o *options[K, V]) {
		o.policy = policy
	})
}

// WithCloner sets the value cloner applied when values are stored and
// produced. The default does not clone.
func WithCloner[K KeyConstraint, V ValueConstraint](cloner ValueCloner[V]) Option[K, V] {
	return optionFunc[K, V](func(o *options[K, V]) {
		o.cloner = cloner
	})
}

type options[K KeyConstraint, V ValueConstraint] struct {
	lazy      bool
	onExpire  ExpirationHandler[K, V]
	onPanic   func(error)
	clock     Clock
	scheduler Scheduler
	policy    expiration.Policy
	cloner    ValueCloner[V]
}

func defaultOptions[K KeyConstraint, V ValueConstraint]() options[K, V] {
	return options[K, V]{
		clock:     SystemClock,
		scheduler: SystemScheduler,
		policy:    expiration.General{},
		cloner:    NopValueCloner[V]{},
	}
}
