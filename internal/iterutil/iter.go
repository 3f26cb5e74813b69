package iterutil

import (
	"iter"
)

// Map returns a new iterator that applies the function to each value from the input iterator.
// The output iterator yields the results of the function calls.
func Map[V, R any](seq iter.Seq[V], f func(V) R) iter.Seq[R] {
	return iter.Seq[R](func(yield func(R) bool) {
		for v := range seq {
			if !yield(f(v)) {
				return
			}
		}
	})
}

// FilterMap returns a new iterator that applies the function to each value from the input iterator
// and yields only the results the function accepts.
// The function is applied at yield time, so a stateful function observes each
// value as the iteration reaches it rather than when the iterator is built.
func FilterMap[V, R any](seq iter.Seq[V], f func(V) (R, bool)) iter.Seq[R] {
	return iter.Seq[R](func(yield func(R) bool) {
		for v := range seq {
			if r, ok := f(v); ok && !yield(r) {
				return
			}
		}
	})
}
