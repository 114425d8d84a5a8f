package accounts

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	// MaxUsernameLength bounds usernames in characters.
	MaxUsernameLength = 150

	// MaxPasswordBytes is the longest password bcrypt accepts.
	MaxPasswordBytes = 72
)

// Account is a registered user. The password hash is never serialized.
type Account struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RegisterCommand contains the data required to create an account.
type RegisterCommand struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

// LoginCommand contains the credentials presented at login.
type LoginCommand struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Normalize trims surrounding whitespace from the username and email.
func (c *RegisterCommand) Normalize() {
	c.Username = strings.TrimSpace(c.Username)
	c.Email = strings.TrimSpace(c.Email)
}

func (c RegisterCommand) Validate() error {
	if err := validateUsername(c.Username); err != nil {
		return err
	}
	if c.Email != "" {
		if _, err := mail.ParseAddress(c.Email); err != nil {
			return fmt.Errorf("%w: email: %v", ErrInvalidInput, err)
		}
	}
	if c.Password == "" {
		return fmt.Errorf("%w: password required", ErrInvalidInput)
	}
	if len(c.Password) > MaxPasswordBytes {
		return fmt.Errorf("%w: password exceeds %d bytes", ErrInvalidInput, MaxPasswordBytes)
	}
	if c.Password != c.PasswordConfirm {
		return fmt.Errorf("%w: passwords do not match", ErrInvalidInput)
	}
	return nil
}

// Normalize trims surrounding whitespace from the username.
func (c *LoginCommand) Normalize() {
	c.Username = strings.TrimSpace(c.Username)
}

func (c LoginCommand) Validate() error {
	if c.Username == "" || c.Password == "" {
		return fmt.Errorf("%w: username and password required", ErrInvalidInput)
	}
	return nil
}

// validateUsername accepts letters, digits and @ . + - _ up to
// MaxUsernameLength characters.
func validateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("%w: username required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(username) > MaxUsernameLength {
		return fmt.Errorf("%w: username exceeds %d characters", ErrInvalidInput, MaxUsernameLength)
	}
	for _, r := range username {
		if !isUsernameRune(r) {
			return fmt.Errorf("%w: username contains %q", ErrInvalidInput, r)
		}
	}
	return nil
}

func isUsernameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case strings.ContainsRune("@.+-_", r):
		return true
	}
	return false
}
