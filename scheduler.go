package expiringmap

import "time"

// Timer is an opaque handle to a scheduled call.
// It is used to cancel a pending eviction when the entry that scheduled it
// is removed or replaced before the call fires.
type Timer interface {
	// Stop cancels the pending call.
	// It reports whether it prevented the call from running.
	Stop() bool
}

// Scheduler is an interface for scheduling a deferred function call.
type Scheduler interface {
	// Schedule arranges for f to be called after at least d has elapsed
	// and returns a handle that can cancel the call.
	Schedule(d time.Duration, f func()) Timer
}

// SchedulerFunc is a function type that implements the Scheduler interface.
type SchedulerFunc func(d time.Duration, f func()) Timer

// Schedule calls the function.
func (fn SchedulerFunc) Schedule(d time.Duration, f func()) Timer {
	return fn(d, f)
}

// SystemScheduler is the default scheduler that uses time.AfterFunc.
var SystemScheduler Scheduler = SchedulerFunc(func(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
})
