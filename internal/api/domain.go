package api

import (
	"fmt"

	"github.com/JaimeStill/user-auth/internal/accounts"
)

// Domain holds the domain systems served by the module.
type Domain struct {
	Accounts accounts.System
}

func NewDomain(runtime *Runtime) (*Domain, error) {
	accountsSys, err := accounts.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Auth.BcryptCost,
	)
	if err != nil {
		return nil, fmt.Errorf("accounts init failed: %w", err)
	}

	return &Domain{
		Accounts: accountsSys,
	}, nil
}
