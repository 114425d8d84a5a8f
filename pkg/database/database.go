// Package database manages the PostgreSQL connection pool and its schema.
// Connections use the pgx stdlib driver through database/sql.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sync/atomic"

	"github.com/JaimeStill/user-auth/pkg/lifecycle"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// ErrNotReady indicates the database has not been started.
var ErrNotReady = errors.New("database not ready")

// System owns the connection pool for the life of the process.
type System interface {
	// Connection returns the shared pool. It is valid before Start but
	// connections are not verified until Start succeeds.
	Connection() *sql.DB

	// Start verifies connectivity and registers pool shutdown with lc.
	Start(lc *lifecycle.Coordinator) error

	// Migrate applies every pending migration found in src.
	// Returns ErrNotReady when called before Start.
	Migrate(src fs.FS) error

	Ready() bool
}

type database struct {
	db      *sql.DB
	cfg     *Config
	logger  *slog.Logger
	started atomic.Bool
}

// New opens the pool described by cfg. It does not contact the server.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	db, err := sql.Open("pgx", cfg.Dsn())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

	return &database{
		db:     db,
		cfg:    cfg,
		logger: logger.With("system", "database"),
	}, nil
}

func (d *database) Connection() *sql.DB {
	return d.db
}

func (d *database) Ready() bool {
	return d.started.Load()
}

func (d *database) Start(lc *lifecycle.Coordinator) error {
	d.logger.Info("starting database", "host", d.cfg.Host, "port", d.cfg.Port, "name", d.cfg.Name)

	ctx, cancel := context.WithTimeout(lc.Context(), d.cfg.ConnTimeoutDuration())
	defer cancel()

	if err := d.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	d.started.Store(true)

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		d.started.Store(false)
		if err := d.db.Close(); err != nil {
			d.logger.Error("database close failed", "error", err)
			return
		}
		d.logger.Info("database connection closed")
	})

	d.logger.Info("database connection established")
	return nil
}

func (d *database) Migrate(src fs.FS) error {
	if !d.Ready() {
		return ErrNotReady
	}
	return Migrate(d.db, src, d.logger)
}
