package database

import (
	"fmt"
	"net/url"
	"strings"
)

// Supported values for Config.Driver.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds database connection settings.
type Config struct {
	Driver string `yaml:"driver" envconfig:"DB_DRIVER"`

	// Path is the SQLite database file.
	Path string `yaml:"path" envconfig:"DATABASE_PATH"`

	Host           string `yaml:"host" envconfig:"DB_HOST"`
	Port           string `yaml:"port" envconfig:"DB_PORT"`
	User           string `yaml:"user" envconfig:"DB_USER"`
	Password       string `yaml:"password" envconfig:"DB_PASSWORD"`
	Name           string `yaml:"name" envconfig:"DB_NAME"`
	SSLMode        string `yaml:"sslmode" envconfig:"DB_SSLMODE"`
	MaxConnections int    `yaml:"max_connections" envconfig:"DB_MAX_CONNECTIONS"`
}

// Normalize fills defaults and checks that the selected driver has what it needs.
func (c *Config) Normalize() error {
	c.Driver = strings.ToLower(strings.TrimSpace(c.Driver))
	switch c.Driver {
	case "", "sqlite3":
		c.Driver = DriverSQLite
	case "postgresql", "pg":
		c.Driver = DriverPostgres
	}

	switch c.Driver {
	case DriverSQLite:
		c.Path = strings.TrimSpace(c.Path)
		if c.Path == "" {
			return fmt.Errorf("environment variable DATABASE_PATH is not set")
		}
		// one writer at a time
		c.MaxConnections = 1
	case DriverPostgres:
		if strings.TrimSpace(c.Host) == "" || strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("database.host and database.name are required for postgres")
		}
		if c.Port == "" {
			c.Port = "5432"
		}
		if c.SSLMode == "" {
			c.SSLMode = "disable"
		}
		if c.MaxConnections <= 0 {
			c.MaxConnections = 5
		}
	default:
		return fmt.Errorf("invalid database.driver %q; allowed: sqlite, postgres", c.Driver)
	}
	return nil
}

// DSN returns the connection string understood by the driver.
func (c Config) DSN() string {
	if c.Driver == DriverPostgres {
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(c.User, c.Password),
			Host:     c.Host + ":" + c.Port,
			Path:     "/" + c.Name,
			RawQuery: url.Values{"sslmode": {c.SSLMode}}.Encode(),
		}
		return u.String()
	}
	q := url.Values{}
	q.Add("_pragma", "busy_timeout(5000)")
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "synchronous(NORMAL)")
	return "file:" + c.Path + "?" + q.Encode()
}

// Target is a log-safe description of where the database lives.
func (c Config) Target() string {
	if c.Driver == DriverPostgres {
		return c.Host + ":" + c.Port + "/" + c.Name
	}
	return c.Path
}
