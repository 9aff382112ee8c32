package bootstrap

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/inkdeck/display-automation/internal/config"
	"github.com/inkdeck/display-automation/pkg/rule"
	"github.com/inkdeck/display-automation/pkg/storage"
)

// Repository is a rule repository that can report readiness and be
// closed at shutdown.
type Repository interface {
	rule.Repository
	io.Closer

	Ping(ctx context.Context) error
}

// InitRepository creates the persistence backend selected by
// STORAGE_BACKEND.
func InitRepository(ctx context.Context, cfg *config.Config) (Repository, error) {
	switch cfg.StorageBackend {
	case "memory":
		logrus.Info("using in-memory rule storage")
		return storage.NewMemoryRepository(), nil

	case "redis":
		client, err := storage.InitRedisClient(ctx, cfg.RedisAddr(), cfg.RedisPassword)
		if err != nil {
			return nil, fmt.Errorf("failed to init Redis: %w", err)
		}
		logrus.Info("using Redis rule storage")
		return storage.NewRedisRepository(client), nil

	case "sqlite":
		repo, err := storage.NewSQLiteRepository(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to init SQLite: %w", err)
		}
		logrus.Info("using SQLite rule storage")
		return repo, nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
