package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C) or declined to
	// start from the landing screen.
	ErrAborted = errors.New("tui: aborted")
	// ErrNoDriver is returned when a session is built without a prompt driver.
	ErrNoDriver = errors.New("tui: prompt driver is nil")
)
