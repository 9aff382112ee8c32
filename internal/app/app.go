// Package app assembles the daemon and manages its lifecycle.
package app

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inkdeck/display-automation/internal/bootstrap"
	"github.com/inkdeck/display-automation/internal/config"
	"github.com/inkdeck/display-automation/internal/server"
	"github.com/inkdeck/display-automation/pkg/rule"
	"github.com/inkdeck/display-automation/pkg/schedule"
)

// App holds all application dependencies and manages the application lifecycle.
type App struct {
	cfg           *config.Config
	engine        *rule.Engine
	poller        *schedule.Poller
	metricsServer *server.MetricsServer
	repo          bootstrap.Repository
}

// New creates and initializes a new application instance.
//
// Components are initialized in dependency order:
// 1. Persistence backend (memory, Redis or SQLite)
// 2. Device provider (sysfs or static)
// 3. Engine with seed ruleset and restored persisted rules
// 4. Poller
// 5. Metrics server
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logrus.Info("initializing application...")

	app := &App{cfg: cfg}

	repo, err := bootstrap.InitRepository(ctx, cfg)
	if err != nil {
		return nil, err
	}
	app.repo = repo

	provider, err := bootstrap.InitDeviceProvider(cfg)
	if err != nil {
		return nil, err
	}

	engine, err := bootstrap.InitEngine(ctx, cfg, provider, nil, repo)
	if err != nil {
		return nil, err
	}
	app.engine = engine

	app.poller = schedule.NewPoller(engine, cfg.PollInterval)

	app.metricsServer = server.NewMetricsServer(cfg.MetricsPort, "/metrics")
	app.metricsServer.SetHealthCheck(repo.Ping)
	if err := app.metricsServer.Setup(); err != nil {
		return nil, fmt.Errorf("failed to setup metrics server: %w", err)
	}

	logrus.Infof("application initialized (%d rules)", len(engine.GetRules()))
	return app, nil
}

// Engine exposes the rule engine for embedding callers.
func (a *App) Engine() *rule.Engine {
	return a.engine
}
