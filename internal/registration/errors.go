package registration

import "errors"

// Service errors. Every failure is terminal for the request; nothing is
// retried inside the pipeline.
var (
	ErrInvalidEmail    = errors.New("email does not match the required format")
	ErrInvalidPassword = errors.New("password does not match the required format")
	ErrEmailExists     = errors.New("email already registered")
	ErrUserNotFound    = errors.New("user not found")
)
