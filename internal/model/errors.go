package model

import "errors"

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("conflict")

	// ErrCurrentBrandExists rejects promoting a pipeline brand while another
	// current brand is still active.
	ErrCurrentBrandExists = errors.New("a current brand already exists")
)
