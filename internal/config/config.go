package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

func init() {
	// Load .env if present; silent otherwise.
	_ = godotenv.Load()
}

// Config holds all settings for the bot, API and jobs binaries.
type Config struct {
	Bot      BotConfig
	Database DatabaseConfig
	Cache    CacheConfig
	API      APIConfig
	Jobs     JobsConfig
}

// BotConfig holds Discord settings.
type BotConfig struct {
	Token  string `envconfig:"DISCORD_TOKEN" default:""`
	Prefix string `envconfig:"WEED_PREFIX" default:"$"`
}

// DatabaseConfig holds Postgres settings.
type DatabaseConfig struct {
	URL string `envconfig:"DATABASE_URL" default:""`
}

// CacheConfig selects the TTL store backend for cooldown state.
type CacheConfig struct {
	Type          string `envconfig:"CACHE_TYPE" default:"memory"`
	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
}

// APIConfig holds the leaderboard HTTP API settings.
type APIConfig struct {
	Addr           string        `envconfig:"WEED_API_ADDR" default:":8080"`
	RequestTimeout time.Duration `envconfig:"WEED_API_REQUEST_TIMEOUT" default:"60s"`
}

// JobsConfig holds scheduled-job settings.
type JobsConfig struct {
	StreakCron string `envconfig:"WEED_STREAK_CRON" default:"0 0 * * *"`
}

// CLIConfig holds weedctl settings.
type CLIConfig struct {
	APIBaseURL string `envconfig:"WEED_API_BASE_URL" default:"http://localhost:8080"`
}

// Load reads configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// LoadBot loads and validates everything the bot binary needs.
func LoadBot() (Config, error) {
	cfg, err := Load()
	if err != nil {
		return cfg, err
	}
	if cfg.Bot.Token == "" {
		return cfg, fmt.Errorf("DISCORD_TOKEN is required")
	}
	if cfg.Database.URL == "" {
		return cfg, fmt.Errorf("DATABASE_URL is required")
	}
	return cfg, nil
}

// LoadAPI loads and validates everything the API binary needs.
func LoadAPI() (Config, error) {
	cfg, err := Load()
	if err != nil {
		return cfg, err
	}
	if cfg.Database.URL == "" {
		return cfg, fmt.Errorf("DATABASE_URL is required")
	}
	return cfg, nil
}

// LoadCLI loads weedctl settings.
func LoadCLI() (CLIConfig, error) {
	var cfg CLIConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, fmt.Errorf("load cli config: %w", err)
	}
	return cfg, nil
}
