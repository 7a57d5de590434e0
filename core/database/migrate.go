package database

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/summerday/core/logger"
)

// RunMigrations applies every pending up migration found at the root of src.
// The database handle stays open afterwards.
func RunMigrations(db *sqlx.DB, src fs.FS) error {
	if db == nil {
		return errors.New("migrate: nil db")
	}
	files, _ := fs.Glob(src, "*.up.sql")
	slices.Sort(files)
	preview, truncated := logger.SummarizeStrings(files, 6)
	logger.MIG.Debug("migrations resolved",
		slog.String("event", "resolve"),
		slog.String("driver", db.DriverName()),
		slog.Int("files_total", len(files)),
		slog.String("files_preview", preview),
		slog.Bool("files_truncated", truncated),
	)

	source, err := iofs.New(src, ".")
	if err != nil {
		return fmt.Errorf("migrate: open source: %w", err)
	}
	defer source.Close()

	target, err := instance(db)
	if err != nil {
		logger.MIG.Error("init failed",
			slog.String("event", "db.migrate"),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("failed to initialize migrations: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, db.DriverName(), target)
	if err != nil {
		return fmt.Errorf("failed to initialize migrations: %w", err)
	}

	from, _, _ := m.Version()
	start := time.Now()
	upErr := m.Up()
	took := time.Since(start)

	switch {
	case upErr == nil:
	case errors.Is(upErr, migrate.ErrNoChange):
		logger.MIG.Info("migrations summary",
			slog.String("event", "summary"),
			slog.Uint64("from_ver", uint64(from)),
			slog.Uint64("to_ver", uint64(from)),
			slog.Int("files", 0),
			slog.Duration("duration", took),
		)
		return nil
	default:
		logger.MIG.Error("migration failed",
			slog.String("event", "apply"),
			slog.String("err", upErr.Error()),
			slog.Duration("duration", took),
		)
		return fmt.Errorf("migration execution failed: %w", upErr)
	}

	to, _, _ := m.Version()
	applied := appliedBetween(files, uint64(from), uint64(to))
	logger.MIG.Info("migrations summary",
		slog.String("event", "summary"),
		slog.Uint64("from_ver", uint64(from)),
		slog.Uint64("to_ver", uint64(to)),
		slog.Int("files", len(applied)),
		slog.String("applied", strings.Join(applied, ", ")),
		slog.Duration("duration", took),
	)
	return nil
}

func instance(db *sqlx.DB) (database.Driver, error) {
	switch db.DriverName() {
	case DriverPostgres:
		return migratepg.WithInstance(db.DB, &migratepg.Config{})
	case DriverSQLite:
		return migratesqlite.WithInstance(db.DB, &migratesqlite.Config{})
	}
	return nil, fmt.Errorf("migrate: unsupported driver %q", db.DriverName())
}

func fileVersion(name string) uint64 {
	head, _, _ := strings.Cut(name, "_")
	v, _ := strconv.ParseUint(head, 10, 64)
	return v
}

// appliedBetween lists files with from < version <= to.
func appliedBetween(files []string, from, to uint64) []string {
	var out []string
	for _, f := range files {
		if v := fileVersion(f); v > from && v <= to {
			out = append(out, f)
		}
	}
	return out
}
