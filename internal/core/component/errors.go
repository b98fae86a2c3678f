// Package component defines domain-specific errors
package component

import "errors"

// Domain errors - defined once, used everywhere
var (
	// Construction errors
	ErrNoRole      = errors.New("component has neither inputs nor outputs")
	ErrNilCallable = errors.New("component callable cannot be nil")

	// Port errors
	ErrArityMismatch = errors.New("value count does not match port count")
	ErrTypeMismatch  = errors.New("value type does not match port type")
)
