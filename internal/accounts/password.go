package accounts

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

type hasher struct {
	cost  int
	dummy []byte
}

func newHasher(cost int) (*hasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d outside [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}

	dummy, err := bcrypt.GenerateFromPassword([]byte("placeholder"), cost)
	if err != nil {
		return nil, fmt.Errorf("generate dummy hash: %w", err)
	}
	return &hasher{cost: cost, dummy: dummy}, nil
}

func (h *hasher) hash(password string) ([]byte, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}

// verify compares password against hash. A nil hash is compared against a
// dummy hash so unknown users cost the same as wrong passwords. Passwords
// longer than MaxPasswordBytes never match, since bcrypt only reads the
// first MaxPasswordBytes bytes.
func (h *hasher) verify(hash []byte, password string) bool {
	if hash == nil || len(password) > MaxPasswordBytes {
		bcrypt.CompareHashAndPassword(h.dummy, []byte(password))
		return false
	}
	return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}
