package model

import "errors"

// Common errors used across the application
var (
	ErrInvalidDisplayName = errors.New("display name must be between 3 and 16 characters")
)
