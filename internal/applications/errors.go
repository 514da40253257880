package applications

import "errors"

var (
	ErrNotFound   = errors.New("application not found")
	ErrValidation = errors.New("validation failed")
)
