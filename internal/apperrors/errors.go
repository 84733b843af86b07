// Package apperrors defines the error taxonomy shared by repositories,
// services and handlers. Services wrap these sentinels with context via
// fmt.Errorf("%w: ..."); handlers map them to HTTP status codes with
// errors.Is. Anything outside the taxonomy is treated as an internal
// error and never leaked to the caller.
package apperrors

import "errors"

var (
	// ErrInvalidInput marks missing or malformed request data.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound marks a lookup that matched no record.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks a uniqueness violation (duplicate SKU or user).
	ErrConflict = errors.New("conflict")
	// ErrInvalidState marks an operation rejected by a cross-entity
	// invariant, such as deleting a product that still has variants.
	ErrInvalidState = errors.New("invalid state")
)
