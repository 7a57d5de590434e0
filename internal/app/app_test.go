package app

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"

	tg "github.com/m3rciful/summerday/core/telegram"
	"github.com/m3rciful/summerday/internal/summer"
)

func writeTable(t *testing.T, dir string) string {
	t.Helper()
	ids := make([]string, summer.TableSize)
	for i := range ids {
		ids[i] = "sticker-" + strconv.Itoa(i)
	}
	raw, err := json.Marshal(ids)
	require.NoError(t, err)
	path := filepath.Join(dir, "file_ids.json")
	require.NoError(t, os.WriteFile(path, raw, 0o600))
	return path
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("FILE_IDS_PATH", " stickers.json ")
	t.Setenv("DATABASE_PATH", "data/summer.db")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "123:abc", cfg.Telegram.Token)
	assert.Equal(t, "stickers.json", cfg.Stickers.Path)
	assert.Equal(t, "data/summer.db", cfg.Database.Path)
	assert.Equal(t, defaultCollectOut, cfg.Stickers.CollectOut)
	assert.Same(t, &cfg.Config, cfg.CoreConfig())
}

func TestLoadConfigYAML(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
telegram:
  token: yaml-token
  admin_id: 77
database:
  driver: postgres
  host: db
  name: summer
stickers:
  path: /data/file_ids.json
  collect_out: /data/new.json
`), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "yaml-token", cfg.Telegram.Token)
	assert.Equal(t, int64(77), cfg.Telegram.AdminID)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "/data/new.json", cfg.Stickers.CollectOut)
}

func TestLoadConfigMissingToken(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestBootstrapRequiresStickerPath(t *testing.T) {
	_, err := Bootstrap(&Config{})
	assert.ErrorIs(t, err, ErrMissingStickers)
}

func TestBootstrapMissingTable(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{}
	cfg.Stickers.Path = filepath.Join(dir, "absent.json")
	cfg.Database.Path = filepath.Join(dir, "bot.db")

	_, err := Bootstrap(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "summerday collect")
}

func TestBootstrapAndRunOptions(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{}
	cfg.Telegram.Token = "123:abc"
	cfg.Stickers.Path = writeTable(t, dir)
	cfg.Database.Path = filepath.Join(dir, "bot.db")

	a, err := Bootstrap(cfg)
	require.NoError(t, err)

	ctx := context.Background()
	zone, err := a.zones.Zone(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, zone)
	require.NoError(t, a.HealthChecks()["db"](ctx))

	opts, err := a.TelegramRunOptions()
	require.NoError(t, err)
	assert.Len(t, opts.Routes, 10)
	assert.Equal(t, inlineUpdates, opts.AllowedUpdates)
	assert.NotEmpty(t, opts.Middlewares)

	rt := tg.Runtime{Bot: &tele.Bot{Me: &tele.User{Username: "summer_day_bot"}}}
	require.NoError(t, opts.OnStart(ctx, rt))
	assert.True(t, a.handlers.Ready())

	require.NoError(t, opts.OnStop(ctx, rt))
	assert.Error(t, a.db.PingContext(ctx))
}

func TestCollectOptions(t *testing.T) {
	cfg := &Config{}
	cfg.Stickers.CollectOut = "from-config.json"

	a, err := Collect(cfg, "")
	require.NoError(t, err)
	assert.Equal(t, "from-config.json", a.out)

	a, err = Collect(cfg, " cli.json ")
	require.NoError(t, err)
	assert.Equal(t, "cli.json", a.out)

	opts, err := a.TelegramRunOptions()
	require.NoError(t, err)
	assert.Len(t, opts.Routes, 9)
	assert.Equal(t, collectUpdates, opts.AllowedUpdates)

	a.finish(a.out)
	a.finish(a.out)
	select {
	case <-opts.Stop:
	default:
		t.Fatal("stop channel not closed after finish")
	}
}

func TestBootstrapMemoryStore(t *testing.T) {
	cfg := &Config{MemoryStore: true}
	cfg.Telegram.Token = "123:abc"
	cfg.Stickers.Path = writeTable(t, t.TempDir())

	a, err := Bootstrap(cfg)
	require.NoError(t, err)
	assert.Nil(t, a.db)
	assert.Empty(t, a.HealthChecks())

	ctx := context.Background()
	require.NoError(t, a.zones.SetZone(ctx, 8, -2))
	zone, err := a.zones.Zone(ctx, 8)
	require.NoError(t, err)
	assert.Equal(t, -2, zone)
	users, err := a.zones.Users(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, users)

	opts, err := a.TelegramRunOptions()
	require.NoError(t, err)
	assert.NoError(t, opts.OnStop(ctx, tg.Runtime{}))
}
