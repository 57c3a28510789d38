package sentinel

import "errors"

// Sentinel dependency errors. Stores and adapters return these (optionally wrapped)
// so services can translate them into domain errors exactly once.
var (
	ErrNotFound       = errors.New("not found")
	ErrNotInitialized = errors.New("database not initialized")
	ErrUnavailable    = errors.New("unavailable")
	ErrInvalidInput   = errors.New("invalid input")
)
