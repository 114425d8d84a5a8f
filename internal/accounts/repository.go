package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/user-auth/pkg/repository"
)

type repo struct {
	db     *sql.DB
	hasher *hasher
	logger *slog.Logger
}

// New creates an accounts system over db hashing passwords at bcryptCost.
func New(db *sql.DB, logger *slog.Logger, bcryptCost int) (System, error) {
	h, err := newHasher(bcryptCost)
	if err != nil {
		return nil, err
	}
	return &repo{
		db:     db,
		hasher: h,
		logger: logger.With("system", "accounts"),
	}, nil
}

func (r *repo) Register(ctx context.Context, cmd RegisterCommand) (*Account, error) {
	cmd.Normalize()
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	hash, err := r.hasher.hash(cmd.Password)
	if err != nil {
		return nil, err
	}

	q := `
		INSERT INTO accounts (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING ` + columns

	var a *Account
	err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		var err error
		a, err = scanAccount(tx.QueryRowContext(ctx, q, cmd.Username, cmd.Email, hash))
		if err != nil {
			if mapped := repository.MapError(err, ErrNotFound, ErrDuplicate); errors.Is(mapped, ErrDuplicate) {
				return mapped
			}
			return fmt.Errorf("insert account: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("account registered", "id", a.ID, "username", a.Username)
	return a, nil
}

func (r *repo) Authenticate(ctx context.Context, cmd LoginCommand) (*Account, error) {
	cmd.Normalize()
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	a, err := r.FindByUsername(ctx, cmd.Username)
	switch {
	case errors.Is(err, ErrNotFound):
		r.hasher.verify(nil, cmd.Password)
		r.logger.Info("login failed", "username", cmd.Username, "reason", "unknown user")
		return nil, ErrInvalidCredentials
	case err != nil:
		return nil, err
	}

	if !r.hasher.verify(a.PasswordHash, cmd.Password) {
		r.logger.Info("login failed", "username", cmd.Username, "reason", "wrong password")
		return nil, ErrInvalidCredentials
	}

	r.logger.Info("login succeeded", "id", a.ID, "username", a.Username)
	return a, nil
}

func (r *repo) FindByUsername(ctx context.Context, username string) (*Account, error) {
	q := "SELECT " + columns + " FROM accounts WHERE username = $1"

	a, err := scanAccount(r.db.QueryRowContext(ctx, q, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query account: %w", err)
	}
	return a, nil
}
