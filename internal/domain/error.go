package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound        = errors.New("entity not found")
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrSessionMismatch signals a programming-contract violation: a message
	// was appended to a session it does not belong to.
	ErrSessionMismatch = errors.New("message does not belong to session")
)
