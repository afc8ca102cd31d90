package repository

import "errors"

// Common repository errors
var (
	// ErrCredentialNotFound is returned when a profile has no stored credential
	ErrCredentialNotFound = errors.New("credential not found")
)
