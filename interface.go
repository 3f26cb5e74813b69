package expiringmap

// KeyConstraint is an interface for key constraints.
type KeyConstraint interface {
	comparable
}

// ValueConstraint is an interface for value constraints.
type ValueConstraint interface {
	any
}

// Entry is a key-value pair.
type Entry[K KeyConstraint, V ValueConstraint] struct {
	// Key is the key of the entry.
	Key K

	// Value is the value associated with the key.
	Value V
}

// ExpirationHandler is a callback invoked exactly once per entry expiration,
// with the expired key and the value that was stored under it.
// It is never invoked for entries removed by Delete or Clear.
type ExpirationHandler[K KeyConstraint, V ValueConstraint] func(key K, value V)
