package services

import "errors"

var (
	// ErrValidation marks malformed or missing input. Wrapped errors carry the
	// offending field in their message.
	ErrValidation   = errors.New("validation failed")
	ErrUserNotFound = errors.New("user not found")
	ErrTaskNotFound = errors.New("task not found")
)
