package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Log       Logger         `mapstructure:"logger"`
	DB        Database       `mapstructure:"database"`
	API       API            `mapstructure:"api"`
	Gateway   Gateway        `mapstructure:"gateway"`
	Scheduler Scheduler      `mapstructure:"scheduler"`
	Cache     Cache          `mapstructure:"cache"`
	Device    Device         `mapstructure:"device"`
	Telegram  TelegramConfig `mapstructure:"telegram"`
}

type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type Database struct {
	Path     string `mapstructure:"path"`
	LogLevel string `mapstructure:"log_level"`
}

// API holds the connection settings for the remote divtracker backend.
type API struct {
	BaseURL          string        `mapstructure:"base_url"`
	Timeout          time.Duration `mapstructure:"timeout"`
	MaxRequestPerMin int           `mapstructure:"max_request_per_min"`
}

// Gateway is the local HTTP surface consumed by UI frontends and the
// push webhook.
type Gateway struct {
	Port int `mapstructure:"port"`
}

type Scheduler struct {
	AutoRefreshEnabled  bool          `mapstructure:"auto_refresh_enabled"`
	AutoRefreshInterval time.Duration `mapstructure:"auto_refresh_interval"`
}

type Cache struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
}

type Device struct {
	Name     string `mapstructure:"name"`
	Platform string `mapstructure:"platform"`
}

type TelegramConfig struct {
	Enabled             bool          `mapstructure:"enabled"`
	BotToken            string        `mapstructure:"bot_token"`
	ChatID              int64         `mapstructure:"chat_id"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerSecond int           `mapstructure:"max_request_per_second"`
}

func Load() (*Config, error) {
	// Optional .env for local development; real deployments rely on the
	// environment directly.
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// Config file is optional, env vars and defaults still apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.encoding", "json")
	viper.SetDefault("database.path", "divtracker.db")
	viper.SetDefault("database.log_level", "Warn")
	viper.SetDefault("api.base_url", "http://localhost:8080")
	viper.SetDefault("api.timeout", 30*time.Second)
	viper.SetDefault("api.max_request_per_min", 60)
	viper.SetDefault("gateway.port", 8089)
	viper.SetDefault("scheduler.auto_refresh_enabled", true)
	viper.SetDefault("scheduler.auto_refresh_interval", 30*time.Second)
	viper.SetDefault("cache.default_expiration", 30*time.Second)
	viper.SetDefault("cache.cleanup_interval", time.Minute)
	viper.SetDefault("device.platform", "GO_CLIENT")
	viper.SetDefault("telegram.max_request_per_second", 1)
	viper.SetDefault("telegram.timeout", 10*time.Second)
}
