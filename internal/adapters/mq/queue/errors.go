package queue

import "errors"

// ErrAlreadyClosed indicates Close was called on a closed queue.
var ErrAlreadyClosed = errors.New("queue already closed")
