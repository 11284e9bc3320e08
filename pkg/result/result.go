// Package result provides a small sum type for fail-soft operations: a value
// is either fully computed or a usable fallback carrying the reason it was
// degraded. Callers can always read the value; whether it was degraded is
// visible in the type instead of inferred from error handling.
package result

// Result holds either a successful value or a degraded fallback.
type Result[T any] struct {
	value    T
	degraded bool
	reason   string
}

// Ok wraps a fully computed value.
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Degraded wraps a fallback value with the reason the full computation
// did not happen.
func Degraded[T any](fallback T, reason string) Result[T] {
	return Result[T]{value: fallback, degraded: true, reason: reason}
}

// Value returns the carried value, degraded or not.
func (r Result[T]) Value() T { return r.value }

// IsDegraded reports whether the value is a fallback.
func (r Result[T]) IsDegraded() bool { return r.degraded }

// Reason returns why the value was degraded, or "" for a success.
func (r Result[T]) Reason() string { return r.reason }
