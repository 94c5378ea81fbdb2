package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/AI2HU/gdc/internal/db/file"
	"github.com/AI2HU/gdc/internal/db/memory"
	"github.com/AI2HU/gdc/internal/db/mongodb"
	"github.com/AI2HU/gdc/internal/db/postgres"
	"github.com/AI2HU/gdc/internal/db/redis"
	"github.com/AI2HU/gdc/internal/db/sqlite"
	"github.com/AI2HU/gdc/internal/models"
)

// Providers lists the supported counter store providers
var Providers = []string{"memory", "file", "sqlite", "postgres", "mongodb", "redis"}

// New creates an unconnected store for the configured provider
func New(config *models.Config) (Store, error) {
	if config == nil {
		config = &models.Config{}
	}

	switch strings.ToLower(config.Provider) {
	case "", "memory":
		return memory.New(), nil
	case "file":
		return file.New(config)
	case "sqlite":
		return sqlite.New(config)
	case "postgres", "postgresql":
		return postgres.New(config)
	case "mongodb", "mongo":
		return mongodb.New(config)
	case "redis":
		return redis.New(config)
	default:
		return nil, fmt.Errorf("unsupported counter store provider: %s", config.Provider)
	}
}

// Open creates the configured store and connects it
func Open(ctx context.Context, config *models.Config) (Store, error) {
	store, err := New(config)
	if err != nil {
		return nil, err
	}

	if err := store.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to %s counter store: %w", store.Name(), err)
	}

	return store, nil
}
