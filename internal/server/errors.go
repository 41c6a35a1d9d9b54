package server

import "errors"

var (
	// ErrSessionNotFound is returned for unknown or expired session ids.
	ErrSessionNotFound = errors.New("server: session not found")
	// ErrInvalidTheme wraps theme manifest problems.
	ErrInvalidTheme = errors.New("server: invalid theme")
)
