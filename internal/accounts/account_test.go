package accounts_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/JaimeStill/user-auth/internal/accounts"
)

func TestRegisterCommand_Validate(t *testing.T) {
	valid := accounts.RegisterCommand{
		Username:        "alice",
		Email:           "alice@example.com",
		Password:        "s3cret!",
		PasswordConfirm: "s3cret!",
	}

	tests := []struct {
		name    string
		modify  func(*accounts.RegisterCommand)
		wantErr bool
	}{
		{"valid", func(c *accounts.RegisterCommand) {}, false},
		{"email optional", func(c *accounts.RegisterCommand) { c.Email = "" }, false},
		{"username symbols", func(c *accounts.RegisterCommand) { c.Username = "a.b+c-d_e@f" }, false},
		{"missing username", func(c *accounts.RegisterCommand) { c.Username = "" }, true},
		{"username with space", func(c *accounts.RegisterCommand) { c.Username = "al ice" }, true},
		{"username too long", func(c *accounts.RegisterCommand) { c.Username = strings.Repeat("a", 151) }, true},
		{"invalid email", func(c *accounts.RegisterCommand) { c.Email = "not-an-email" }, true},
		{"missing password", func(c *accounts.RegisterCommand) { c.Password, c.PasswordConfirm = "", "" }, true},
		{"mismatched confirm", func(c *accounts.RegisterCommand) { c.PasswordConfirm = "other" }, true},
		{"password too long", func(c *accounts.RegisterCommand) {
			c.Password = strings.Repeat("p", 73)
			c.PasswordConfirm = c.Password
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := valid
			tt.modify(&cmd)

			err := cmd.Validate()
			if tt.wantErr {
				if !errors.Is(err, accounts.ErrInvalidInput) {
					t.Errorf("Validate() error = %v, want ErrInvalidInput", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() error = %v", err)
			}
		})
	}
}

func TestRegisterCommand_Normalize(t *testing.T) {
	cmd := accounts.RegisterCommand{Username: "  alice ", Email: " a@example.com\n"}
	cmd.Normalize()

	if cmd.Username != "alice" || cmd.Email != "a@example.com" {
		t.Errorf("Normalize() = %+v", cmd)
	}
}

func TestLoginCommand_Validate(t *testing.T) {
	if err := (accounts.LoginCommand{Username: "alice", Password: "x"}).Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
	if err := (accounts.LoginCommand{Username: "alice"}).Validate(); !errors.Is(err, accounts.ErrInvalidInput) {
		t.Errorf("Validate() error = %v, want ErrInvalidInput", err)
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{accounts.ErrNotFound, http.StatusNotFound},
		{accounts.ErrDuplicate, http.StatusConflict},
		{accounts.ErrInvalidCredentials, http.StatusUnauthorized},
		{accounts.ErrInvalidInput, http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := accounts.MapHTTPStatus(tt.err); got != tt.want {
			t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
