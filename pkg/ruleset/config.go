// Package ruleset loads declarative rule definitions from YAML. A
// ruleset file seeds the engine at startup; persisted rules restored
// afterwards win over seeds with the same id.
package ruleset

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/inkdeck/display-automation/pkg/rule"
)

// Config represents a complete ruleset file.
type Config struct {
	Rules []rule.Rule `yaml:"rules"`
}

// LoadConfig loads a ruleset from a YAML file.
// Supports environment variable expansion in the form ${VAR_NAME} or ${VAR_NAME:default}.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ruleset file %s: %w", path, err)
	}

	expanded := expandEnvVars(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expanded), &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML ruleset: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid ruleset: %w", err)
	}

	return &config, nil
}

// Validate checks the ruleset for structural errors: missing or
// duplicate ids, unknown repeat policies, rules with no actions.
func (c *Config) Validate() error {
	ruleIDs := make(map[string]bool)
	for _, r := range c.Rules {
		if r.ID == "" {
			return fmt.Errorf("rule with empty ID found")
		}
		if ruleIDs[r.ID] {
			return fmt.Errorf("duplicate rule ID: %s", r.ID)
		}
		ruleIDs[r.ID] = true

		if !r.Repeat.Valid() {
			return fmt.Errorf("rule %s has unknown repeat policy %q", r.ID, r.Repeat)
		}
		if r.Repeat == rule.RepeatInterval && r.Interval <= 0 {
			return fmt.Errorf("rule %s repeats by interval but has no interval", r.ID)
		}
		if len(r.Actions) == 0 {
			return fmt.Errorf("rule %s has no actions", r.ID)
		}
	}

	return nil
}

// expandEnvVars expands environment variables in the format ${VAR} or ${VAR:default}.
func expandEnvVars(s string) string {
	return os.Expand(s, func(key string) string {
		// Support ${VAR:default} syntax
		parts := strings.SplitN(key, ":", 2)
		varName := parts[0]
		defaultValue := ""
		if len(parts) == 2 {
			defaultValue = parts[1]
		}

		value := os.Getenv(varName)
		if value == "" {
			return defaultValue
		}
		return value
	})
}
