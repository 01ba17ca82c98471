package config

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// App holds application configuration.
type App struct {
	Name    string `mapstructure:"name"`
	Env     string `mapstructure:"env"`
	Version string `mapstructure:"version"`
}

// Logger holds logger configuration.
type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

// Redis holds Redis configuration.
type Redis struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// API holds API server configuration.
type API struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Tracing holds OpenTelemetry configuration.
type Tracing struct {
	Enabled     bool   `mapstructure:"enabled"`
	ServiceName string `mapstructure:"service_name"`
}

// Telegram holds configuration for the Telegram notifier.
type Telegram struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Option customizes the viper instance used by Load.
type Option func(v *viper.Viper)

// WithDefaults registers default values keyed by their dotted config path.
func WithDefaults(defaults map[string]interface{}) Option {
	return func(v *viper.Viper) {
		for key, value := range defaults {
			v.SetDefault(key, value)
		}
	}
}

// WithEnvBindings binds dotted config keys to explicit environment variable names,
// e.g. "finnhub.api_key" -> "FINNHUB_API_KEY".
func WithEnvBindings(bindings map[string]string) Option {
	return func(v *viper.Viper) {
		for key, env := range bindings {
			_ = v.BindEnv(key, env)
		}
	}
}

// Load loads configuration from a file into the given config struct.
// A .env file in the working directory is loaded into the process environment first.
func Load(path string, config interface{}, opts ...Option) error {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment variables from .env")
	}

	v := viper.New()
	for _, opt := range opts {
		opt(v)
	}

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		log.Println("Failed to read config file, falling back to defaults and environment variables")
	}

	return v.Unmarshal(config)
}
