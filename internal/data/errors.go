// File: internal/data/errors.go
package data

import "errors"

// Define custom error variables for common error scenarios.
var (
	ErrUnknownField     = errors.New("unknown or non-text field")
	ErrStoreUnavailable = errors.New("record store unavailable")
	ErrInvalidRecord    = errors.New("invalid record")
)
