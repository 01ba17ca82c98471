package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	App     App           `mapstructure:"app"`
	Timeout time.Duration `mapstructure:"timeout"`
	Key     string        `mapstructure:"key"`
	List    []string      `mapstructure:"list"`
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "app:\n  name: gateway\ntimeout: 3s\nlist:\n  - SPY\n  - QQQ\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	var cfg testConfig
	require.NoError(t, Load(path, &cfg))

	assert.Equal(t, "gateway", cfg.App.Name)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, []string{"SPY", "QQQ"}, cfg.List)
}

func TestLoadDefaultsAndEnvBindings(t *testing.T) {
	t.Setenv("TEST_PROVIDER_KEY", "secret")

	var cfg testConfig
	err := Load(filepath.Join(t.TempDir(), "missing.yaml"), &cfg,
		WithDefaults(map[string]interface{}{"timeout": "5s", "app.name": "fallback"}),
		WithEnvBindings(map[string]string{"key": "TEST_PROVIDER_KEY"}),
	)
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, "fallback", cfg.App.Name)
	assert.Equal(t, "secret", cfg.Key)
}
