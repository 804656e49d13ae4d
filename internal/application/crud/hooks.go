package crud

import (
	"context"
	"fmt"
)

// Event is a record lifecycle transition.
type Event int

const (
	Created Event = iota + 1
	Updated
	Deleted
	Restored
	ForceDeleted
)

// String returns the event name
func (e Event) String() string {
	switch e {
	case Created:
		return "created"
	case Updated:
		return "updated"
	case Deleted:
		return "deleted"
	case Restored:
		return "restored"
	case ForceDeleted:
		return "force_deleted"
	}
	return fmt.Sprintf("event(%d)", int(e))
}

// Mutation describes a committed write.
type Mutation struct {
	Resource string
	Event    Event
	ID       int64
}

// Hook is called synchronously after a write commits and before the
// mutating call returns. A hook error fails the call.
type Hook interface {
	AfterMutation(ctx context.Context, m Mutation) error
}

// HookFunc adapts a function to Hook.
type HookFunc func(ctx context.Context, m Mutation) error

// AfterMutation implements Hook
func (f HookFunc) AfterMutation(ctx context.Context, m Mutation) error {
	return f(ctx, m)
}

// Hooks runs hooks in order and stops at the first error.
type Hooks []Hook

// Fire notifies every hook of m.
func (hs Hooks) Fire(ctx context.Context, m Mutation) error {
	for _, h := range hs {
		if err := h.AfterMutation(ctx, m); err != nil {
			return fmt.Errorf("%s %s hook: %w", m.Resource, m.Event, err)
		}
	}
	return nil
}
