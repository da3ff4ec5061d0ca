package service

import "errors"

// Sentinels the HTTP layer maps onto statuses. Services wrap them with
// fmt.Errorf("%w", ...) so messages keep their context while errors.Is still
// matches.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")
)
