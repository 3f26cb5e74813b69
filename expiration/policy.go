package expiration

import (
	"math/rand/v2"
	"time"
)

// Policy is the interface for the expiration time checker.
// Implementations determine when stored entries should be considered expired.
type Policy interface {
	// IsExpired returns true if the entry is expired.
	// The now parameter represents the current time, and expiresAt is the entry's deadline.
	IsExpired(now, expiresAt time.Time) bool
}

// General is a policy that expires an entry at a specific time.
// It implements the standard time-based expiration check where an entry is
// considered expired once the current time reaches its deadline.
type General struct{}

var _ Policy = General{}

// IsExpired returns true if the current time is at or after the deadline.
func (General) IsExpired(now, expiresAt time.Time) bool {
	return !expiresAt.After(now)
}

// Never is a policy that never expires an entry.
// This is useful for pinning entries that should remain valid indefinitely.
type Never struct{}

var _ Policy = Never{}

// IsExpired always returns false, indicating that entries never expire.
// This policy ignores the deadline completely.
func (Never) IsExpired(now, expiresAt time.Time) bool {
	return false
}

// Early is a policy that can expire an entry before its actual deadline.
// Introducing randomness in the expiration decision causes different accesses
// to observe expiry at different times, which spreads eviction work instead of
// concentrating it at the exact deadline.
type Early struct {
	// Duration is how much earlier the entry can expire.
	// For example, if set to 30 seconds, the entry might expire up to 30 seconds
	// before its actual deadline, depending on the Percentage.
	Duration time.Duration

	// Percentage is the chance (between 0 and 1) that the entry will expire early.
	// A value of 0 means never expire early, while 1 means always expire early.
	Percentage float64

	// Random is the random number generator to decide early expiration.
	// If not set, the default system random generator is used.
	// This can be set to a specific random generator for deterministic behavior in tests.
	Random *rand.Rand
}

var _ Policy = (*Early)(nil)

// IsExpired checks if the entry is expired.
// This method has two behaviors:
// 1. With probability (1-Percentage): behaves like General, checking if now > expiresAt
// 2. With probability Percentage: checks if (now + Duration) > expiresAt, causing early expiration
func (p *Early) IsExpired(now, expiresAt time.Time) bool {
	if p.randFloat64() > p.Percentage {
		return now.After(expiresAt)
	}
	return now.Add(p.Duration).After(expiresAt)
}

func (p *Early) randFloat64() float64 {
	if p.Random == nil {
		return rand.Float64()
	}
	return p.Random.Float64()
}
