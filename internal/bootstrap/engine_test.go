package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/inkdeck/display-automation/internal/config"
	"github.com/inkdeck/display-automation/pkg/rule"
	"github.com/inkdeck/display-automation/pkg/storage"
)

const testRuleset = `
rules:
  - id: night-mode
    name: Night mode
    enabled: true
    repeat: daily
    conditions:
      - kind: time
        operator: after
        parameters:
          time: "22:00"
    actions:
      - kind: set_theme
        parameters:
          theme: dark
`

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte(testRuleset), 0644); err != nil {
		t.Fatalf("failed to write ruleset: %v", err)
	}

	return &config.Config{
		MetricsPort:    8080,
		PollInterval:   60 * time.Second,
		HistoryLimit:   1000,
		RulesPath:      path,
		DeviceProvider: "static",
		StorageBackend: "memory",
	}
}

func TestInitEngine_SeedsRuleset(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	provider, err := InitDeviceProvider(cfg)
	if err != nil {
		t.Fatalf("InitDeviceProvider() error = %v", err)
	}

	repo := storage.NewMemoryRepository()
	engine, err := InitEngine(ctx, cfg, provider, nil, repo)
	if err != nil {
		t.Fatalf("InitEngine() error = %v", err)
	}

	r, ok := engine.GetRule("night-mode")
	if !ok {
		t.Fatal("seeded rule not found")
	}
	if r.Repeat != rule.RepeatDaily || !r.Enabled {
		t.Errorf("seeded rule mismatch: %+v", r)
	}

	// Seeding persists, so a restart sees the rule.
	persisted, err := repo.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(persisted) != 1 || persisted[0].ID != "night-mode" {
		t.Errorf("persisted rules = %+v, expected night-mode", persisted)
	}
}

func TestInitEngine_PersistedRuleWinsOverSeed(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	repo := storage.NewMemoryRepository()
	modified := rule.Rule{
		ID:      "night-mode",
		Name:    "Night mode (user edited)",
		Enabled: false,
		Repeat:  rule.RepeatDaily,
	}
	if err := repo.Save(ctx, modified); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	provider, _ := InitDeviceProvider(cfg)
	engine, err := InitEngine(ctx, cfg, provider, nil, repo)
	if err != nil {
		t.Fatalf("InitEngine() error = %v", err)
	}

	r, ok := engine.GetRule("night-mode")
	if !ok {
		t.Fatal("rule not found")
	}
	if r.Name != "Night mode (user edited)" || r.Enabled {
		t.Errorf("seed overwrote persisted rule: %+v", r)
	}
}

func TestInitEngine_BadRulesetFails(t *testing.T) {
	cfg := testConfig(t)
	cfg.RulesPath = filepath.Join(t.TempDir(), "missing.yaml")

	provider, _ := InitDeviceProvider(cfg)
	if _, err := InitEngine(context.Background(), cfg, provider, nil, storage.NewMemoryRepository()); err == nil {
		t.Fatal("InitEngine() expected error for missing ruleset")
	}
}

func TestInitDeviceProvider_Unknown(t *testing.T) {
	cfg := testConfig(t)
	cfg.DeviceProvider = "adb"

	if _, err := InitDeviceProvider(cfg); err == nil {
		t.Fatal("InitDeviceProvider() expected error")
	}
}

func TestInitRepository(t *testing.T) {
	ctx := context.Background()

	cfg := testConfig(t)
	repo, err := InitRepository(ctx, cfg)
	if err != nil {
		t.Fatalf("InitRepository(memory) error = %v", err)
	}
	repo.Close()

	cfg.StorageBackend = "sqlite"
	cfg.SQLitePath = filepath.Join(t.TempDir(), "rules.db")
	repo, err = InitRepository(ctx, cfg)
	if err != nil {
		t.Fatalf("InitRepository(sqlite) error = %v", err)
	}
	repo.Close()

	cfg.StorageBackend = "dynamo"
	if _, err := InitRepository(ctx, cfg); err == nil {
		t.Fatal("InitRepository() expected error for unknown backend")
	}
}
