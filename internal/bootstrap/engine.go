// Package bootstrap wires the automation engine from configuration:
// device provider, condition evaluator, action dispatcher, rule store
// and seed ruleset.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inkdeck/display-automation/internal/config"
	"github.com/inkdeck/display-automation/pkg/action"
	"github.com/inkdeck/display-automation/pkg/condition"
	"github.com/inkdeck/display-automation/pkg/device"
	"github.com/inkdeck/display-automation/pkg/rule"
	"github.com/inkdeck/display-automation/pkg/ruleset"
)

// InitDeviceProvider selects the device state source.
func InitDeviceProvider(cfg *config.Config) (device.Provider, error) {
	switch cfg.DeviceProvider {
	case "sysfs":
		logrus.Info("using sysfs device provider")
		return device.NewSysfsProvider(), nil
	case "static":
		logrus.Info("using static device provider")
		return device.NewStaticProvider(device.Snapshot{}), nil
	default:
		return nil, fmt.Errorf("unknown device provider %q", cfg.DeviceProvider)
	}
}

// InitEngine creates the evaluator, dispatcher and engine, seeds it
// from the ruleset file and restores persisted rules. Persisted rules
// win over seeds with the same id.
func InitEngine(ctx context.Context, cfg *config.Config, provider device.Provider, controller action.DeviceController, repo rule.Repository) (*rule.Engine, error) {
	evaluator := condition.NewEvaluator()
	dispatcher := action.NewDispatcher(controller)

	rulesetConfig, err := ruleset.LoadConfig(cfg.RulesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load ruleset: %w", err)
	}

	if err := ruleset.ValidateWiring(evaluator, dispatcher, rulesetConfig); err != nil {
		return nil, err
	}

	store := rule.NewStoreWithHistoryLimit(cfg.HistoryLimit)
	engine := rule.NewEngine(store, evaluator, dispatcher, provider, repo)

	if err := engine.LoadPersisted(ctx); err != nil {
		return nil, fmt.Errorf("failed to restore persisted rules: %w", err)
	}

	// Seed only rules the repository doesn't already know; a persisted
	// rule wins over the ruleset entry with the same id.
	seeded := 0
	for _, r := range rulesetConfig.Rules {
		if _, ok := engine.GetRule(r.ID); ok {
			continue
		}
		if !engine.CreateRule(ctx, r) {
			return nil, fmt.Errorf("failed to seed rule %s", r.ID)
		}
		seeded++
	}
	logrus.Infof("seeded %d rules from %s", seeded, cfg.RulesPath)

	return engine, nil
}
