package queue

import "errors"

// Sentinel errors for the job queue.
var (
	ErrQueueClosed = errors.New("queue closed")
	ErrQueueFull   = errors.New("queue full")
)
