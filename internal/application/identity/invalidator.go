package identity

import (
	"context"

	"github.com/stockpile/backend/internal/application/crud"
	"go.uber.org/zap"
)

// CacheInvalidator clears the permission registry after role and
// permission writes.
type CacheInvalidator struct {
	registry *Registry
	logger   *zap.Logger
}

// NewCacheInvalidator creates a hook over registry.
func NewCacheInvalidator(registry *Registry, logger *zap.Logger) *CacheInvalidator {
	return &CacheInvalidator{registry: registry, logger: logger}
}

// AfterMutation implements crud.Hook
func (c *CacheInvalidator) AfterMutation(ctx context.Context, m crud.Mutation) error {
	c.logger.Debug("Invalidating permission cache",
		zap.String("resource", m.Resource),
		zap.String("event", m.Event.String()),
		zap.Int64("id", m.ID))
	return c.registry.Invalidate(ctx)
}
