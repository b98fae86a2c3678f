// Package mqueue defines domain-specific errors
package mqueue

import "errors"

// Domain errors - defined once, used everywhere
var (
	// ErrDanglingView is reported by any view operation whose underlying
	// queue no longer exists, including views that were never wired to a
	// queue at all.
	ErrDanglingView = errors.New("view references a queue that no longer exists")
)
