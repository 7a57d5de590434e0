package database

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/m3rciful/summerday/core/logger"
)

// Connect opens the configured database, sizes the pool and pings it.
// Postgres is retried until it accepts connections or 30s pass.
func Connect(cfg Config) (*sqlx.DB, error) {
	if err := cfg.Normalize(); err != nil {
		return nil, err
	}
	if cfg.Driver == DriverSQLite {
		if dir := filepath.Dir(cfg.Path); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("db dir: %w", err)
			}
		}
	}

	base := []any{
		slog.String("driver", cfg.Driver),
		slog.String("db", cfg.Target()),
	}

	start := time.Now()
	db, err := open(cfg)
	took := time.Since(start)
	if err != nil {
		logger.DB.Error("db connect failed", append(base,
			slog.String("event", "db.connect"),
			slog.Duration("duration", took),
			slog.String("err", err.Error()),
		)...)
		return nil, fmt.Errorf("db connect: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxConnections)
	logger.DB.Info("db connected", append(base,
		slog.String("event", "db.connect"),
		slog.Int("pool_open", cfg.MaxConnections),
		slog.Duration("duration", took),
	)...)
	return db, nil
}

func open(cfg Config) (*sqlx.DB, error) {
	if cfg.Driver == DriverPostgres {
		if err := WaitForPostgres(cfg.DSN(), 30*time.Second); err != nil {
			return nil, err
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return sqlx.ConnectContext(ctx, cfg.Driver, cfg.DSN())
}

// WaitForPostgres polls dsn every 2s until a ping succeeds or timeout elapses.
func WaitForPostgres(dsn string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		db, err := sqlx.Open(DriverPostgres, dsn)
		if err == nil {
			err = db.Ping()
			_ = db.Close()
			if err == nil {
				return nil
			}
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("timeout reached waiting for database: %w", err)
		}
		time.Sleep(2 * time.Second)
	}
}
