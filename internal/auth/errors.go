package auth

import "errors"

var (
	// ErrMissingAccessCode is returned when no access code accompanies the request.
	ErrMissingAccessCode = errors.New("access code required")

	// ErrInvalidAccessCode is returned when the presented code does not match.
	ErrInvalidAccessCode = errors.New("invalid access code")
)
