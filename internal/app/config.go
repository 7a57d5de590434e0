// Package app composes the core runtime with the summer day bot.
package app

import (
	"errors"
	"fmt"
	"strings"

	coreconfig "github.com/m3rciful/summerday/core/config"
	coredatabase "github.com/m3rciful/summerday/core/database"
)

const defaultCollectOut = "file_ids.json"

// ErrMissingStickers is returned when the sticker table path is not configured.
var ErrMissingStickers = errors.New("environment variable FILE_IDS_PATH is not set; point it at the JSON produced by `summerday collect`")

// StickersConfig locates the sticker table.
type StickersConfig struct {
	Path string `yaml:"path" envconfig:"FILE_IDS_PATH"`
	// CollectOut is where `collect` writes a new table.
	CollectOut string `yaml:"collect_out" envconfig:"STICKERS_COLLECT_OUT"`
}

// Config is the full application configuration.
type Config struct {
	coreconfig.Config `yaml:",inline"`

	Database coredatabase.Config `yaml:"database"`
	Stickers StickersConfig      `yaml:"stickers"`

	// MemoryStore keeps timezones in process memory and opens no database.
	// Offsets are lost on restart.
	MemoryStore bool `yaml:"memory_store" envconfig:"MEMORY_STORE"`
}

// CoreConfig satisfies the core runner.
func (c *Config) CoreConfig() *coreconfig.Config { return &c.Config }

// LoadConfig reads path (optional), .env and the environment, then
// validates the core section. Database and sticker settings are checked by
// the mode that needs them.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if err := coreconfig.LoadInto(path, &cfg); err != nil {
		return nil, err
	}
	if err := coreconfig.Normalize(&cfg.Config); err != nil {
		return nil, err
	}
	cfg.Stickers.Path = strings.TrimSpace(cfg.Stickers.Path)
	cfg.Stickers.CollectOut = strings.TrimSpace(cfg.Stickers.CollectOut)
	if cfg.Stickers.CollectOut == "" {
		cfg.Stickers.CollectOut = defaultCollectOut
	}
	return &cfg, nil
}

// validateServe checks what the inline bot needs beyond the core section.
func (c *Config) validateServe() error {
	if c.Stickers.Path == "" {
		return ErrMissingStickers
	}
	if c.MemoryStore {
		return nil
	}
	if err := c.Database.Normalize(); err != nil {
		return fmt.Errorf("database config: %w", err)
	}
	return nil
}
