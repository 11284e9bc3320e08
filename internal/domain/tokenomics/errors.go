package tokenomics

import "errors"

var (
	// ErrInvalidAmount indicates a negative or NaN monetary input.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrSharesNotUnity indicates revenue shares that do not sum to 1.
	ErrSharesNotUnity = errors.New("revenue shares must sum to 1")
)
