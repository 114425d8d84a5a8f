package accounts

import "errors"

// Domain errors for the accounts system.
var (
	// ErrNotFound indicates the requested account does not exist.
	ErrNotFound = errors.New("account not found")

	// ErrDuplicate indicates the username is already registered.
	ErrDuplicate = errors.New("username already exists")

	// ErrInvalidCredentials indicates an unknown username or a wrong password.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInvalidInput indicates a command failed validation.
	ErrInvalidInput = errors.New("invalid input")
)
