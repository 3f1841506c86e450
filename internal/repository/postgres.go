package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"
)

type PoolConfig struct {
	MaxOpenConns     int
	MaxIdleConns     int
	ConnMaxLifetimeS int
	ConnMaxIdleTimeS int
	ConnectAttempts  int
	// ConnectBackoff is the pause between pings. Zero means one second.
	ConnectBackoff time.Duration
}

type pinger interface {
	PingContext(ctx context.Context) error
}

// Open connects with retry and, when migrateOnStart is set, applies the
// embedded migrations over the same pool. Migrations never run before the
// database has answered a ping.
func Open(ctx context.Context, databaseURL string, pool PoolConfig, migrateOnStart bool) (*sql.DB, error) {
	db, err := NewPostgresDB(ctx, databaseURL, pool)
	if err != nil {
		return nil, fmt.Errorf("Open: %w", err)
	}
	if !migrateOnStart {
		return db, nil
	}

	version, err := Migrate(ctx, db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("Open: %w", err)
	}
	slog.Info("database migrated", "version", version)
	return db, nil
}

// NewPostgresDB opens the pool and pings until the database answers, up to
// pool.ConnectAttempts times.
func NewPostgresDB(ctx context.Context, databaseURL string, pool PoolConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("NewPostgresDB: open: %w", err)
	}

	db.SetMaxOpenConns(pool.MaxOpenConns)
	db.SetMaxIdleConns(pool.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(pool.ConnMaxLifetimeS) * time.Second)
	db.SetConnMaxIdleTime(time.Duration(pool.ConnMaxIdleTimeS) * time.Second)

	backoff := pool.ConnectBackoff
	if backoff <= 0 {
		backoff = time.Second
	}
	if err := waitForDB(ctx, db, pool.ConnectAttempts, backoff); err != nil {
		db.Close()
		return nil, fmt.Errorf("NewPostgresDB: %w", err)
	}
	return db, nil
}

func waitForDB(ctx context.Context, db pinger, attempts int, backoff time.Duration) error {
	attempts = max(attempts, 1)
	var err error
	for i := range attempts {
		if err = db.PingContext(ctx); err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		slog.Info("waiting for database", "attempt", i+1, "error", err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	return fmt.Errorf("gave up after %d attempts: %w", attempts, err)
}
