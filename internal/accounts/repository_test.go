package accounts_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/JaimeStill/user-auth/internal/accounts"
)

var accountColumns = []string{"id", "username", "email", "password_hash", "created_at", "updated_at"}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newRepo(t *testing.T) (accounts.System, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })

	sys, err := accounts.New(db, discardLogger(), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("accounts.New() error = %v", err)
	}
	return sys, mock
}

func registerCmd() accounts.RegisterCommand {
	return accounts.RegisterCommand{
		Username:        "alice",
		Email:           "alice@example.com",
		Password:        "s3cret!",
		PasswordConfirm: "s3cret!",
	}
}

func TestNew_InvalidCost(t *testing.T) {
	if _, err := accounts.New(nil, discardLogger(), bcrypt.MaxCost+1); err == nil {
		t.Error("New() should reject cost above bcrypt.MaxCost")
	}
}

func TestRepository_Register(t *testing.T) {
	sys, mock := newRepo(t)

	id := uuid.New()
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO accounts").
		WithArgs("alice", "alice@example.com", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(accountColumns).
			AddRow(id.String(), "alice", "alice@example.com", []byte("hash"), now, now))
	mock.ExpectCommit()

	a, err := sys.Register(context.Background(), registerCmd())
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if a.ID != id || a.Username != "alice" {
		t.Errorf("Register() = %+v", a)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestRepository_Register_Duplicate(t *testing.T) {
	sys, mock := newRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO accounts").
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	if _, err := sys.Register(context.Background(), registerCmd()); !errors.Is(err, accounts.ErrDuplicate) {
		t.Fatalf("Register() error = %v, want ErrDuplicate", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestRepository_Register_Invalid(t *testing.T) {
	sys, mock := newRepo(t)

	cmd := registerCmd()
	cmd.PasswordConfirm = "different"

	if _, err := sys.Register(context.Background(), cmd); !errors.Is(err, accounts.ErrInvalidInput) {
		t.Fatalf("Register() error = %v, want ErrInvalidInput", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("database touched for invalid input: %v", err)
	}
}

func TestRepository_Authenticate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret!"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}

	long := strings.Repeat("a", accounts.MaxPasswordBytes)
	longHash, err := bcrypt.GenerateFromPassword([]byte(long), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}

	id := uuid.New()
	now := time.Now().UTC()

	tests := []struct {
		name     string
		username string
		password string
		rows     *sqlmock.Rows
		wantErr  error
	}{
		{
			name:     "valid credentials",
			password: "s3cret!",
			rows:     sqlmock.NewRows(accountColumns).AddRow(id.String(), "alice", "", hash, now, now),
		},
		{
			name:     "wrong password",
			password: "guess",
			rows:     sqlmock.NewRows(accountColumns).AddRow(id.String(), "alice", "", hash, now, now),
			wantErr:  accounts.ErrInvalidCredentials,
		},
		{
			name:     "surrounding whitespace in username",
			username: "  alice ",
			password: "s3cret!",
			rows:     sqlmock.NewRows(accountColumns).AddRow(id.String(), "alice", "", hash, now, now),
		},
		{
			name:     "password at bcrypt limit",
			password: long,
			rows:     sqlmock.NewRows(accountColumns).AddRow(id.String(), "alice", "", longHash, now, now),
		},
		{
			name:     "password past bcrypt limit shares prefix",
			password: long + "WRONG-SUFFIX",
			rows:     sqlmock.NewRows(accountColumns).AddRow(id.String(), "alice", "", longHash, now, now),
			wantErr:  accounts.ErrInvalidCredentials,
		},
		{
			name:     "unknown user",
			password: "s3cret!",
			rows:     sqlmock.NewRows(accountColumns),
			wantErr:  accounts.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys, mock := newRepo(t)

			username := tt.username
			if username == "" {
				username = "alice"
			}

			mock.ExpectQuery("SELECT .+ FROM accounts WHERE username").
				WithArgs("alice").
				WillReturnRows(tt.rows)

			a, err := sys.Authenticate(context.Background(), accounts.LoginCommand{
				Username: username,
				Password: tt.password,
			})

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Authenticate() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Authenticate() error = %v", err)
			}
			if a.ID != id {
				t.Errorf("Authenticate() ID = %v, want %v", a.ID, id)
			}

			if err := mock.ExpectationsWereMet(); err != nil {
				t.Error(err)
			}
		})
	}
}

func TestRepository_FindByUsername_NotFound(t *testing.T) {
	sys, mock := newRepo(t)

	mock.ExpectQuery("SELECT .+ FROM accounts WHERE username").
		WithArgs("bob").
		WillReturnRows(sqlmock.NewRows(accountColumns))

	if _, err := sys.FindByUsername(context.Background(), "bob"); !errors.Is(err, accounts.ErrNotFound) {
		t.Errorf("FindByUsername() error = %v, want ErrNotFound", err)
	}
}
