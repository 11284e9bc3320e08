package config

import "errors"

// Sentinel errors for configuration loading.
var (
	ErrEmptyAddr        = errors.New("addr must not be empty")
	ErrInvalidThreshold = errors.New("invalid threshold")
	ErrInvalidBounds    = errors.New("invalid bounds")
	ErrInvalidShares    = errors.New("revenue shares must sum to 1.0")
)
