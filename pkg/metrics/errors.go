package metrics

import "errors"

// Sentinel errors for metrics operations.
var (
	ErrRegistration = errors.New("metric registration failed")
)
