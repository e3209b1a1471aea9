package service

import "errors"

var (
	// ErrInvalidAdminCredentials is returned when an admin login names no
	// administrator in the user directory.
	ErrInvalidAdminCredentials = errors.New("invalid admin credentials (try admin@tripwise.pk)")
	// ErrUserExists is returned by Signup when the email is already taken.
	ErrUserExists = errors.New("user already exists")
	// ErrNotFound is returned by updates of an unknown identity when strict
	// updates are enabled.
	ErrNotFound = errors.New("entity not found")
	// ErrInvalidInput marks a request the service cannot act on.
	ErrInvalidInput = errors.New("invalid input")
)
