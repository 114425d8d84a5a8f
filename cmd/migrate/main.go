package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/JaimeStill/user-auth/internal/config"
	"github.com/JaimeStill/user-auth/internal/migrations"
	"github.com/JaimeStill/user-auth/pkg/database"
	"github.com/JaimeStill/user-auth/pkg/logging"
)

const EnvDatabaseDSN = "DATABASE_DSN"

func main() {
	var (
		dsn     = flag.String("dsn", "", "Database connection string (defaults to config.toml)")
		up      = flag.Bool("up", false, "Apply all pending migrations")
		down    = flag.Bool("down", false, "Roll back all migrations")
		version = flag.Bool("version", false, "Print the applied schema version")
	)
	flag.Parse()

	if !*up && !*down && !*version {
		fmt.Println("usage: migrate [-dsn <connection-string>] -up|-down|-version")
		flag.PrintDefaults()
		return
	}

	cfg, err := resolveConfig(*dsn)
	if err != nil {
		log.Fatalf("configuration: %v", err)
	}

	db, err := sql.Open("pgx", cfg.dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	m, err := database.NewMigrator(db, migrations.FS, logging.New(&cfg.logging))
	if err != nil {
		log.Fatalf("migrator init failed: %v", err)
	}

	switch {
	case *up:
		if err := m.Up(); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
	case *down:
		if err := m.Down(); err != nil {
			log.Fatalf("rollback failed: %v", err)
		}
	}

	v, dirty, err := m.Version()
	if err != nil {
		log.Fatalf("version lookup failed: %v", err)
	}
	fmt.Printf("schema version %d (dirty=%t)\n", v, dirty)
}

type migrateConfig struct {
	dsn     string
	logging logging.Config
}

// resolveConfig prefers the -dsn flag, then DATABASE_DSN, then the service
// configuration files.
func resolveConfig(flagDSN string) (*migrateConfig, error) {
	mc := &migrateConfig{dsn: flagDSN}
	if mc.dsn == "" {
		mc.dsn = os.Getenv(EnvDatabaseDSN)
	}

	if mc.dsn != "" {
		if err := mc.logging.Finalize(nil); err != nil {
			return nil, err
		}
		return mc, nil
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("no -dsn flag or %s env var: %w", EnvDatabaseDSN, err)
	}
	if err := cfg.Finalize(); err != nil {
		return nil, err
	}

	mc.dsn = cfg.Database.Dsn()
	mc.logging = cfg.Logging
	return mc, nil
}
