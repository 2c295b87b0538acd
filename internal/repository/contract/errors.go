package contract

import "errors"

// ErrDuplicateKey is returned when an insert violates a unique constraint.
var ErrDuplicateKey = errors.New("duplicate key")
