package bootstrap

import (
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/jmoiron/sqlx"

	coreconfig "github.com/m3rciful/summerday/core/config"
	coredatabase "github.com/m3rciful/summerday/core/database"
	"github.com/m3rciful/summerday/core/logger"
)

// Options control the startup pipeline: logger, database, schema.
type Options struct {
	Config     *coreconfig.Config
	Database   coredatabase.Config
	Migrations fs.FS

	// SkipDatabase stops after the logger; Result.DB is nil.
	SkipDatabase bool

	LoggerInit func(*coreconfig.Config) error
	Connect    func(coredatabase.Config) (*sqlx.DB, error)
	Migrate    func(*sqlx.DB, fs.FS) error
}

// Result exposes infrastructure initialized by Run.
type Result struct {
	DB *sqlx.DB
}

// Run initializes the logger, connects to the database and applies migrations.
// Migrations are skipped when opts.Migrations is nil, the database when
// opts.SkipDatabase is set.
func Run(opts Options) (*Result, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("bootstrap: nil config provided")
	}

	loggerInit := opts.LoggerInit
	if loggerInit == nil {
		loggerInit = logger.InitLogger
	}
	if err := loggerInit(opts.Config); err != nil {
		return nil, fmt.Errorf("bootstrap: logger init failed: %w", err)
	}
	if opts.SkipDatabase {
		logger.DB.Warn("database disabled",
			slog.String("event", "db.connect"),
			slog.String("status", "skip"),
		)
		return &Result{}, nil
	}

	connect := opts.Connect
	if connect == nil {
		connect = coredatabase.Connect
	}
	db, err := connect(opts.Database)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: database initialization failed: %w", err)
	}

	if opts.Migrations != nil {
		migrate := opts.Migrate
		if migrate == nil {
			migrate = coredatabase.RunMigrations
		}
		if err := migrate(db, opts.Migrations); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("bootstrap: migrations failed: %w", err)
		}
	}

	return &Result{DB: db}, nil
}
