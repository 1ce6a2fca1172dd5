package prompt

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("prompt: aborted")
	// ErrNoController is returned by Run when the factory yields nothing.
	ErrNoController = errors.New("prompt: controller factory returned nil")
)
