package services

import "errors"

// Errors returned by the services. Handlers map them to HTTP statuses; any other
// error from a write is a store failure reported back to the client as-is.
var (
	ErrNotFound         = errors.New("not found")
	ErrForbidden        = errors.New("unauthorized")
	ErrMissingParameter = errors.New("missing parameter")
)
