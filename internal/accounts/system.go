// Package accounts implements the django_user_auth namespace: account
// registration and credential checks backed by PostgreSQL.
package accounts

import "context"

// System defines the interface for account management.
type System interface {
	// Register validates cmd and stores a new account with a hashed password.
	// Returns ErrInvalidInput if validation fails.
	// Returns ErrDuplicate if the username is taken.
	Register(ctx context.Context, cmd RegisterCommand) (*Account, error)

	// Authenticate checks credentials and returns the matching account.
	// Returns ErrInvalidCredentials for an unknown user or a wrong password.
	Authenticate(ctx context.Context, cmd LoginCommand) (*Account, error)

	// FindByUsername retrieves an account by username.
	// Returns ErrNotFound if no account matches.
	FindByUsername(ctx context.Context, username string) (*Account, error)
}
