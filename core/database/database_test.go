package database

import (
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/summerday/migrations"
)

func TestConfigNormalize(t *testing.T) {
	tests := []struct {
		name    string
		in      Config
		want    Config
		wantErr string
	}{
		{
			name: "sqlite default",
			in:   Config{Path: " data/bot.db ", MaxConnections: 10},
			want: Config{Driver: DriverSQLite, Path: "data/bot.db", MaxConnections: 1},
		},
		{
			name: "sqlite3 alias",
			in:   Config{Driver: "SQLite3", Path: "x.db"},
			want: Config{Driver: DriverSQLite, Path: "x.db", MaxConnections: 1},
		},
		{
			name:    "sqlite without path",
			in:      Config{Driver: "sqlite"},
			wantErr: "DATABASE_PATH",
		},
		{
			name: "postgres defaults",
			in:   Config{Driver: "pg", Host: "db", Name: "summer"},
			want: Config{Driver: DriverPostgres, Host: "db", Name: "summer", Port: "5432", SSLMode: "disable", MaxConnections: 5},
		},
		{
			name:    "postgres without host",
			in:      Config{Driver: "postgres", Name: "summer"},
			wantErr: "database.host",
		},
		{
			name:    "unknown driver",
			in:      Config{Driver: "mysql"},
			wantErr: "invalid database.driver",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.in
			err := cfg.Normalize()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg)
		})
	}
}

func TestConfigDSN(t *testing.T) {
	pg := Config{Driver: DriverPostgres, Host: "db", Port: "5432", User: "bot", Password: "p@ss", Name: "summer", SSLMode: "disable"}
	assert.Equal(t, "postgres://bot:p%40ss@db:5432/summer?sslmode=disable", pg.DSN())
	assert.Equal(t, "db:5432/summer", pg.Target())

	lite := Config{Driver: DriverSQLite, Path: "/tmp/bot.db"}
	dsn := lite.DSN()
	assert.True(t, strings.HasPrefix(dsn, "file:/tmp/bot.db?"), dsn)
	assert.Contains(t, dsn, "busy_timeout%285000%29")
	assert.Equal(t, "/tmp/bot.db", lite.Target())
}

func TestConnectAndMigrateSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "bot.db")
	db, err := Connect(Config{Path: path})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, RunMigrations(db, migrations.FS))
	// second run is a no-op
	require.NoError(t, RunMigrations(db, migrations.FS))

	_, err = db.Exec(`INSERT INTO timezones (id) VALUES (?)`, 7)
	require.NoError(t, err)
	var zone int
	require.NoError(t, db.Get(&zone, `SELECT zone FROM timezones WHERE id = ?`, 7))
	assert.Equal(t, 3, zone)

	var version int
	require.NoError(t, db.Get(&version, `SELECT version FROM schema_migrations`))
	assert.Equal(t, 1, version)
	var indexes int
	require.NoError(t, db.Get(&indexes, `SELECT COUNT(*) FROM sqlite_master
		WHERE type = 'index' AND tbl_name = 'timezones' AND name NOT LIKE 'sqlite_autoindex%'`))
	assert.Zero(t, indexes)
}

func TestRunMigrationsBadSQL(t *testing.T) {
	db, err := Connect(Config{Path: filepath.Join(t.TempDir(), "bad.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	src := fstest.MapFS{
		"0001_broken.up.sql":   {Data: []byte("CREATE TABLE (;")},
		"0001_broken.down.sql": {Data: []byte("")},
	}
	err = RunMigrations(db, src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration execution failed")
}

func TestRunMigrationsNilDB(t *testing.T) {
	assert.Error(t, RunMigrations(nil, migrations.FS))
}

func TestAppliedBetween(t *testing.T) {
	files := []string{"0001_a.up.sql", "0002_b.up.sql", "0003_c.up.sql"}
	assert.Equal(t, []string{"0002_b.up.sql", "0003_c.up.sql"}, appliedBetween(files, 1, 3))
	assert.Nil(t, appliedBetween(files, 3, 3))
	assert.Equal(t, uint64(12), fileVersion("0012_x.up.sql"))
	assert.Equal(t, uint64(0), fileVersion("junk.sql"))
}
