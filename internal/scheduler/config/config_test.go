package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "America/New_York", cfg.Scheduler.Timezone)
	assert.Equal(t, 2*time.Minute, cfg.Scheduler.DefaultTimeout)
	assert.Equal(t, 5*time.Second, cfg.Upstream.QuoteTimeout)
	assert.Equal(t, 70.0, cfg.Signal.RSIOverbought)
	require.Len(t, cfg.Jobs, 3)
	assert.Equal(t, "alerts_broadcast", cfg.Jobs[0].Type)
	assert.Contains(t, cfg.Jobs[0].SkipSessions, "Weekend")
}

func TestLoadJobsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
plays:
  watchlist: [AAPL]
jobs:
  - name: brief
    type: market_brief
    cron: "0 8 * * *"
    timeout: 30s
    skip_sessions: ["Weekend"]
`), 0o600))
	t.Setenv("TELEGRAM_BOT_TOKEN", "bot-test")

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Len(t, cfg.Jobs, 1)
	assert.Equal(t, Job{
		Name:         "brief",
		Type:         "market_brief",
		Cron:         "0 8 * * *",
		Timeout:      30 * time.Second,
		SkipSessions: []string{"Weekend"},
	}, cfg.Jobs[0])
	assert.Equal(t, []string{"AAPL"}, cfg.Plays.Watchlist)
	assert.Equal(t, "bot-test", cfg.Telegram.BotToken)
}
