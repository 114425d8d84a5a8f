package database

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// MigrationsTable records the applied schema version.
const MigrationsTable = "schema_migrations"

// Migrator applies versioned SQL migrations read from an fs.FS.
// Files follow the golang-migrate naming scheme: NNNNNN_name.up.sql and
// NNNNNN_name.down.sql.
type Migrator struct {
	m      *migrate.Migrate
	logger *slog.Logger
}

// NewMigrator binds the migrations in src to db.
func NewMigrator(db *sql.DB, src fs.FS, logger *slog.Logger) (*Migrator, error) {
	source, err := iofs.New(src, ".")
	if err != nil {
		return nil, fmt.Errorf("migration source: %w", err)
	}

	driver, err := migratepgx.WithInstance(db, &migratepgx.Config{
		MigrationsTable: MigrationsTable,
	})
	if err != nil {
		return nil, fmt.Errorf("migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "pgx5", driver)
	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}

	return &Migrator{m: m, logger: logger}, nil
}

// Up applies all pending migrations. An up-to-date schema is not an error.
func (m *Migrator) Up() error {
	if err := m.m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	m.logVersion("schema up to date")
	return nil
}

// Down rolls back every applied migration.
func (m *Migrator) Down() error {
	if err := m.m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate down: %w", err)
	}
	m.logger.Info("schema rolled back")
	return nil
}

// Version reports the applied version and whether the last migration failed
// part way. A database with no applied migrations reports version 0.
func (m *Migrator) Version() (uint, bool, error) {
	version, dirty, err := m.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("migrate version: %w", err)
	}
	return version, dirty, nil
}

func (m *Migrator) logVersion(msg string) {
	version, dirty, err := m.Version()
	if err != nil {
		m.logger.Warn("unable to read schema version", "error", err)
		return
	}
	m.logger.Info(msg, "version", version, "dirty", dirty)
}

// Migrate applies every pending migration in src to db.
func Migrate(db *sql.DB, src fs.FS, logger *slog.Logger) error {
	m, err := NewMigrator(db, src, logger)
	if err != nil {
		return err
	}
	return m.Up()
}
