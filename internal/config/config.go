package config

import "time"

// Config holds all application configuration loaded from environment variables.
// This struct uses github.com/caarlos0/env for automatic environment variable parsing.
type Config struct {
	// Server configuration
	MetricsPort int    `env:"METRICS_PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"display-automation"`

	// Engine configuration
	PollInterval time.Duration `env:"POLL_INTERVAL" envDefault:"60s"`
	HistoryLimit int           `env:"HISTORY_LIMIT" envDefault:"1000"`
	RulesPath    string        `env:"RULES_PATH" envDefault:"config/rules.yaml"`

	// Device configuration: "sysfs" reads live device state, "static"
	// serves an empty snapshot (useful for dry runs and tests).
	DeviceProvider string `env:"DEVICE_PROVIDER" envDefault:"sysfs"`

	// Storage configuration: "memory", "redis" or "sqlite".
	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"memory"`

	// Redis configuration
	RedisHost     string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort     string `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	// SQLite configuration
	SQLitePath string `env:"SQLITE_PATH" envDefault:"data/rules.db"`
}

// RedisAddr returns the host:port address of the Redis server.
func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}
