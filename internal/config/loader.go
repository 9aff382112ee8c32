package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Load reads configuration from environment variables.
// It attempts to load from .env file first (for local development),
// then parses environment variables into the Config struct.
func Load() (*Config, error) {
	// In production the environment is injected directly; the .env file
	// only exists for local development.
	if err := godotenv.Load(); err != nil {
		logrus.Debugf("no .env file loaded: %v", err)
	} else {
		logrus.Infof("loaded environment variables from .env file")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config from environment: %w", err)
	}

	return cfg, nil
}

// Validate performs custom validation on the configuration.
func (c *Config) Validate() error {
	if c.MetricsPort < 1 || c.MetricsPort > 65535 {
		return fmt.Errorf("invalid METRICS_PORT: %d (must be 1-65535)", c.MetricsPort)
	}

	if c.PollInterval <= 0 {
		return fmt.Errorf("invalid POLL_INTERVAL: %v (must be positive)", c.PollInterval)
	}

	if c.HistoryLimit < 1 {
		return fmt.Errorf("invalid HISTORY_LIMIT: %d (must be at least 1)", c.HistoryLimit)
	}

	switch c.DeviceProvider {
	case "sysfs", "static":
	default:
		return fmt.Errorf("invalid DEVICE_PROVIDER: %q (must be sysfs or static)", c.DeviceProvider)
	}

	switch c.StorageBackend {
	case "memory", "redis", "sqlite":
	default:
		return fmt.Errorf("invalid STORAGE_BACKEND: %q (must be memory, redis or sqlite)", c.StorageBackend)
	}

	if c.StorageBackend == "sqlite" && c.SQLitePath == "" {
		return fmt.Errorf("SQLITE_PATH is required for the sqlite backend")
	}

	return nil
}
