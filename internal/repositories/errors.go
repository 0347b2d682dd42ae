package repositories

import "errors"

// ErrNotFound is returned by repositories when no record matches the
// given id/filter. Callers check it with errors.Is to distinguish a
// missing record from a store failure.
var ErrNotFound = errors.New("record not found")
