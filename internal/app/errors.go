package service

import "errors"

var (
	// ErrNotStarted indicates a call before Start or after Stop.
	ErrNotStarted = errors.New("service not started")

	// ErrNoReferences indicates a candidate with no stored references.
	ErrNoReferences = errors.New("no references for candidate")
)
