// Package infrastructure provides core service initialization for application startup.
// It assembles the shared dependencies (lifecycle, logging, database) that domain
// systems require.
package infrastructure

import (
	"fmt"
	"log/slog"

	"github.com/JaimeStill/user-auth/internal/config"
	"github.com/JaimeStill/user-auth/internal/migrations"
	"github.com/JaimeStill/user-auth/pkg/database"
	"github.com/JaimeStill/user-auth/pkg/lifecycle"
	"github.com/JaimeStill/user-auth/pkg/logging"
)

// Infrastructure holds the core systems required by all domain modules.
type Infrastructure struct {
	Lifecycle   *lifecycle.Coordinator
	Logger      *slog.Logger
	Database    database.System
	autoMigrate bool
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := logging.New(&cfg.Logging)

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle:   lc,
		Logger:      logger,
		Database:    db,
		autoMigrate: cfg.Database.AutoMigrate,
	}, nil
}

// Start connects the database and, when auto_migrate is set, applies pending
// schema migrations before any request is served.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if i.autoMigrate {
		if err := i.Database.Migrate(migrations.FS); err != nil {
			return fmt.Errorf("database migrate failed: %w", err)
		}
	}
	return nil
}
