package config

import (
	"time"

	gwconfig "golang-trading-assistant/internal/gateway/config"
	"golang-trading-assistant/pkg/common"
	"golang-trading-assistant/pkg/config"
)

// Scheduler holds scheduler-specific configuration.
type Scheduler struct {
	Timezone       string        `mapstructure:"timezone"`
	DefaultTimeout time.Duration `mapstructure:"default_timeout"`
	RunOnStart     bool          `mapstructure:"run_on_start"`
}

// Job is one cron entry. SkipSessions lists market sessions in which the job does not run.
type Job struct {
	Name         string        `mapstructure:"name"`
	Type         string        `mapstructure:"type"`
	Cron         string        `mapstructure:"cron"`
	Timeout      time.Duration `mapstructure:"timeout"`
	SkipSessions []string      `mapstructure:"skip_sessions"`
	Disabled     bool          `mapstructure:"disabled"`
}

// Config holds the full configuration for the alert service. The gateway
// sections are embedded so the same services can be built in-process.
type Config struct {
	gwconfig.Config `mapstructure:",squash"`
	Scheduler       Scheduler `mapstructure:"scheduler"`
	Jobs            []Job     `mapstructure:"jobs"`
}

// Defaults returns the gateway defaults plus the scheduler defaults.
func Defaults() map[string]interface{} {
	d := gwconfig.Defaults()
	d["app.name"] = "trading-assistant-alerts"
	d["tracing.service_name"] = "trading-assistant-alerts"
	d["scheduler.timezone"] = "America/New_York"
	d["scheduler.default_timeout"] = 2 * time.Minute
	d["scheduler.run_on_start"] = false
	d["jobs"] = []map[string]interface{}{
		{
			"name":          "intraday-alerts",
			"type":          common.JobTypeAlertsBroadcast,
			"cron":          "*/15 9-16 * * 1-5",
			"skip_sessions": []string{"Weekend", "Market Closed", "Futures Open"},
		},
		{
			"name": "morning-brief",
			"type": common.JobTypeMarketBrief,
			"cron": "0 9 * * 1-5",
		},
		{
			"name":          "plays-digest",
			"type":          common.JobTypePlaysDigest,
			"cron":          "45 9,12,15 * * 1-5",
			"skip_sessions": []string{"Weekend"},
		},
	}
	return d
}

// Load loads the alert service configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg, config.WithDefaults(Defaults()), config.WithEnvBindings(gwconfig.EnvBindings())); err != nil {
		return nil, err
	}
	return &cfg, nil
}
