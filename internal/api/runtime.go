package api

import (
	"github.com/JaimeStill/user-auth/internal/config"
	"github.com/JaimeStill/user-auth/internal/infrastructure"
)

// Runtime extends Infrastructure with auth-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Auth config.AuthConfig
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	scoped := *infra
	scoped.Logger = infra.Logger.With("module", "auth")

	return &Runtime{
		Infrastructure: &scoped,
		Auth:           cfg.Auth,
	}
}
