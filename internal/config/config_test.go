package config

import (
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		MetricsPort:    8080,
		PollInterval:   60 * time.Second,
		HistoryLimit:   1000,
		DeviceProvider: "sysfs",
		StorageBackend: "memory",
	}
}

func TestValidate(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v for valid config", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"metrics port zero", func(c *Config) { c.MetricsPort = 0 }},
		{"metrics port too high", func(c *Config) { c.MetricsPort = 70000 }},
		{"poll interval zero", func(c *Config) { c.PollInterval = 0 }},
		{"history limit zero", func(c *Config) { c.HistoryLimit = 0 }},
		{"unknown device provider", func(c *Config) { c.DeviceProvider = "adb" }},
		{"unknown storage backend", func(c *Config) { c.StorageBackend = "postgres" }},
		{"sqlite without path", func(c *Config) { c.StorageBackend = "sqlite"; c.SQLitePath = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() expected error")
			}
		})
	}
}

func TestRedisAddr(t *testing.T) {
	cfg := Config{RedisHost: "cache", RedisPort: "6380"}
	if got := cfg.RedisAddr(); got != "cache:6380" {
		t.Errorf("RedisAddr() = %q, expected cache:6380", got)
	}
}
