package booking

import "errors"

var (
	ErrNotFound            = errors.New("booking not found")
	ErrNotOwner            = errors.New("booking belongs to another user")
	ErrAlreadyCancelled    = errors.New("booking already cancelled")
	ErrSessionEnded        = errors.New("session already ended")
	ErrActiveSessionExists = errors.New("user already has an active session")
	ErrInvalidDuration     = errors.New("duration must be positive")
	ErrUnknownGym          = errors.New("unknown gym")
)
