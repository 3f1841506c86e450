package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/josh-kwaku/campus-ledger/migrations"
)

// Migrate applies the embedded migrations on one connection borrowed from db
// and returns the resulting schema version. db stays open.
func Migrate(ctx context.Context, db *sql.DB) (uint, error) {
	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return 0, fmt.Errorf("Migrate: source: %w", err)
	}

	conn, err := db.Conn(ctx)
	if err != nil {
		return 0, fmt.Errorf("Migrate: conn: %w", err)
	}

	// WithConnection leaves the pool alone on Close; only conn is released.
	driver, err := postgres.WithConnection(ctx, conn, &postgres.Config{})
	if err != nil {
		conn.Close()
		return 0, fmt.Errorf("Migrate: driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		driver.Close()
		return 0, fmt.Errorf("Migrate: init: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("Migrate: up: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return 0, fmt.Errorf("Migrate: version: %w", err)
	}
	if dirty {
		return version, fmt.Errorf("Migrate: schema version %d is dirty", version)
	}
	return version, nil
}
