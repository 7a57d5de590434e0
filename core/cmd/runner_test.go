package cmd

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreconfig "github.com/m3rciful/summerday/core/config"
	"github.com/m3rciful/summerday/core/health"
	coretelegram "github.com/m3rciful/summerday/core/telegram"
)

type testConfig struct{ core coreconfig.Config }

func (c *testConfig) CoreConfig() *coreconfig.Config { return &c.core }

type testApp struct {
	started, stopped bool
	checks           map[string]health.Check
}

func (a *testApp) TelegramRunOptions() (coretelegram.RunOptions, error) {
	return coretelegram.RunOptions{
		OnStart: func(context.Context, coretelegram.Runtime) error {
			a.started = true
			return nil
		},
		OnStop: func(context.Context, coretelegram.Runtime) error {
			a.stopped = true
			return nil
		},
	}, nil
}

func (a *testApp) HealthChecks() map[string]health.Check { return a.checks }

func fakeRun(ctx context.Context, opts coretelegram.RunOptions) error {
	if err := opts.OnStart(ctx, coretelegram.Runtime{}); err != nil {
		return err
	}
	return opts.OnStop(ctx, coretelegram.Runtime{})
}

func TestRunRequiresHooks(t *testing.T) {
	assert.Error(t, Run(Options{}))
	assert.Error(t, Run(Options{LoadConfig: func(string) (ConfigCarrier, error) { return &testConfig{}, nil }}))
}

func TestRunLifecycle(t *testing.T) {
	app := &testApp{checks: map[string]health.Check{"db": func(context.Context) error { return nil }}}
	var gotPath string
	err := Run(Options{
		ConfigPath: "config.yaml",
		LoadConfig: func(path string) (ConfigCarrier, error) {
			gotPath = path
			cfg := &testConfig{}
			cfg.core.Health.Addr = "127.0.0.1:0"
			return cfg, nil
		},
		Bootstrap:      func(ConfigCarrier) (TelegramApp, error) { return app, nil },
		ShutdownLogger: func() error { return nil },
		RunTelegram:    fakeRun,
	})
	require.NoError(t, err)
	assert.Equal(t, "config.yaml", gotPath)
	assert.True(t, app.started)
	assert.True(t, app.stopped)
}

func TestRunPropagatesBootstrapError(t *testing.T) {
	boom := errors.New("no table")
	err := Run(Options{
		LoadConfig:     func(string) (ConfigCarrier, error) { return &testConfig{}, nil },
		Bootstrap:      func(ConfigCarrier) (TelegramApp, error) { return nil, boom },
		ShutdownLogger: func() error { return nil },
	})
	assert.ErrorIs(t, err, boom)
}

func TestConfigPathFrom(t *testing.T) {
	t.Setenv("SUMMER_CONFIG", "/etc/summer.yaml")
	assert.Equal(t, "x.yaml", ConfigPathFrom(Options{ConfigPath: "x.yaml", ConfigEnvVar: "SUMMER_CONFIG"}))
	assert.Equal(t, "/etc/summer.yaml", ConfigPathFrom(Options{ConfigEnvVar: "SUMMER_CONFIG"}))

	t.Setenv("CONFIG_PATH", "")
	assert.Equal(t, "default.yaml", ConfigPathFrom(Options{DefaultConfigPath: "default.yaml"}))
	assert.Equal(t, "", ConfigPathFrom(Options{}))
}
