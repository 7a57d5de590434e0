package bootstrap

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreconfig "github.com/m3rciful/summerday/core/config"
	coredatabase "github.com/m3rciful/summerday/core/database"
)

func noLogger(*coreconfig.Config) error { return nil }

func TestRunNilConfig(t *testing.T) {
	_, err := Run(Options{})
	assert.Error(t, err)
}

func TestRunLoggerFailure(t *testing.T) {
	boom := errors.New("boom")
	_, err := Run(Options{
		Config:     &coreconfig.Config{},
		LoggerInit: func(*coreconfig.Config) error { return boom },
	})
	assert.ErrorIs(t, err, boom)
}

func TestRunSQLite(t *testing.T) {
	var migrated bool
	res, err := Run(Options{
		Config:     &coreconfig.Config{},
		Database:   coredatabase.Config{Path: filepath.Join(t.TempDir(), "bot.db")},
		Migrations: fstest.MapFS{},
		LoggerInit: noLogger,
		Migrate: func(db *sqlx.DB, _ fs.FS) error {
			migrated = db != nil
			return nil
		},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = res.DB.Close() })
	assert.True(t, migrated)
	assert.NoError(t, res.DB.Ping())
}

func TestRunMigrationFailureClosesDB(t *testing.T) {
	boom := errors.New("bad schema")
	var held *sqlx.DB
	_, err := Run(Options{
		Config:     &coreconfig.Config{},
		Database:   coredatabase.Config{Path: filepath.Join(t.TempDir(), "bot.db")},
		Migrations: fstest.MapFS{},
		LoggerInit: noLogger,
		Migrate: func(db *sqlx.DB, _ fs.FS) error {
			held = db
			return boom
		},
	})
	assert.ErrorIs(t, err, boom)
	require.NotNil(t, held)
	assert.Error(t, held.Ping())
}

func TestRunSkipDatabase(t *testing.T) {
	res, err := Run(Options{
		Config:       &coreconfig.Config{},
		Migrations:   fstest.MapFS{},
		SkipDatabase: true,
		LoggerInit:   noLogger,
		Connect: func(coredatabase.Config) (*sqlx.DB, error) {
			t.Fatal("connect called with the database disabled")
			return nil, nil
		},
	})
	require.NoError(t, err)
	assert.Nil(t, res.DB)
}
