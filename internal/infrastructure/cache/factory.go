package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/stockpile/backend/internal/application/identity"
	"github.com/stockpile/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// StoreFactory creates the permission snapshot store selected by configuration
type StoreFactory struct {
	cacheConfig           config.CacheConfig
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// StoreFactoryOption is a functional option for configuring the factory
type StoreFactoryOption func(*StoreFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) StoreFactoryOption {
	return func(f *StoreFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to the in-memory store
// when Redis is unavailable. Default is false.
func WithInMemoryFallback(allow bool) StoreFactoryOption {
	return func(f *StoreFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewStoreFactory creates a new factory
func NewStoreFactory(cacheCfg config.CacheConfig, redisCfg config.RedisConfig, opts ...StoreFactoryOption) *StoreFactory {
	f := &StoreFactory{
		cacheConfig: cacheCfg,
		redisConfig: redisCfg,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Store is a snapshot store plus the client to close on shutdown, nil for memory.
type Store struct {
	identity.SnapshotStore
	Client *redis.Client
}

// Ping checks the backing store. The memory store is always reachable.
func (s Store) Ping(ctx context.Context) error {
	if s.Client == nil {
		return nil
	}
	return s.Client.Ping(ctx).Err()
}

// Close releases the Redis client, if any
func (s Store) Close() error {
	if s.Client == nil {
		return nil
	}
	return s.Client.Close()
}

// Create builds the configured store
func (f *StoreFactory) Create(ctx context.Context) (Store, error) {
	if f.cacheConfig.Driver != "redis" {
		f.logger.Info("using in-memory permission cache")
		return Store{SnapshotStore: NewMemorySnapshotStore()}, nil
	}

	client, err := NewRedisClient(ctx, f.redisConfig)
	if err == nil {
		f.logger.Info("using Redis permission cache", zap.String("key", f.cacheConfig.Key))
		return Store{SnapshotStore: NewRedisSnapshotStore(client, f.cacheConfig.Key), Client: client}, nil
	}

	if !f.allowInMemoryFallback {
		return Store{}, fmt.Errorf("Redis required for permission cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory permission cache. "+
		"Other instances will not see invalidations from this one.",
		zap.Error(err),
	)
	return Store{SnapshotStore: NewMemorySnapshotStore()}, nil
}
