package model

import "errors"

// Sentinel errors for record validation.
var (
	ErrInvalidSubmission = errors.New("invalid reference submission")
	ErrInvalidRecord     = errors.New("invalid validated reference")
)
