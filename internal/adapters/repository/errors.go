package repository

import "errors"

// Sentinel kinds for repository errors.
var (
	ErrNotFound      = errors.New("candidate not found")
	ErrInvalidLimit  = errors.New("invalid leaderboard limit")
	ErrDuplicateID   = errors.New("record id already exists")
	ErrInvalidRecord = errors.New("record failed schema validation")
)
