// Package snapshot defines domain-specific errors
package snapshot

import "errors"

// Domain errors - defined once, used everywhere
var (
	ErrInvalidRecordID = errors.New("invalid record ID")
	ErrInvalidQueueID  = errors.New("invalid queue ID")
	ErrRecordNotFound  = errors.New("record not found")
	ErrBacklogType     = errors.New("backlog element type does not match queue type")
)
