package shared

import (
	"context"

	"github.com/google/uuid"
)

// Actor is the authenticated caller performing an operation.
type Actor struct {
	UserID   int64
	TenantID uuid.UUID
}

type actorKey struct{}

// WithActor stores the caller in ctx.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFrom returns the caller stored in ctx, if any.
func ActorFrom(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(Actor)
	return actor, ok
}

// UserIDPtr returns the caller's user id for audit columns, nil when anonymous.
func (a Actor) UserIDPtr() *int64 {
	if a.UserID == 0 {
		return nil
	}
	id := a.UserID
	return &id
}
