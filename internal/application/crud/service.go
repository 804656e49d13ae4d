// Package crud provides the validate -> persist -> notify -> project
// pipeline shared by every administered resource.
package crud

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockpile/backend/internal/application/projection"
	"github.com/stockpile/backend/internal/application/validation"
	"github.com/stockpile/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Definition describes one resource to the generic service.
type Definition[T any] struct {
	// Resource is the singular resource name used in permissions and logs, e.g. "brand".
	Resource string
	// Prepare derives or normalises input before validation. Optional.
	Prepare func(in validation.Fields, op validation.Operation) validation.Fields
	// Rules returns the constraint table for an operation on record id (0 on create).
	Rules func(op validation.Operation, id int64) validation.RuleSet
	// Apply copies validated input onto the entity. On update only sent fields apply.
	Apply func(entity *T, in validation.Fields, op validation.Operation)
	// Current exposes stored values used as uniqueness scope fallbacks. Optional.
	Current func(entity *T) validation.Fields
	// Project renders the entity's default fields, resolving relations through refs.
	Project func(ctx context.Context, entity *T, refs projection.RefResolver) ([]projection.Field, error)
}

// Service implements the resource lifecycle for T.
type Service[T any] struct {
	def       Definition[T]
	repo      shared.Repository[T]
	validator *validation.Validator
	refs      projection.RefResolver
	hooks     Hooks
	logger    *zap.Logger
}

// Option configures a Service.
type Option[T any] func(*Service[T])

// WithHooks registers post-mutation hooks.
func WithHooks[T any](hooks ...Hook) Option[T] {
	return func(s *Service[T]) {
		s.hooks = append(s.hooks, hooks...)
	}
}

// WithLogger sets the service logger.
func WithLogger[T any](logger *zap.Logger) Option[T] {
	return func(s *Service[T]) {
		s.logger = logger
	}
}

// NewService creates a service for one resource definition.
func NewService[T any](
	def Definition[T],
	repo shared.Repository[T],
	v *validation.Validator,
	refs projection.RefResolver,
	opts ...Option[T],
) *Service[T] {
	s := &Service[T]{
		def:       def,
		repo:      repo,
		validator: v,
		refs:      refs,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(zap.String("resource", def.Resource))
	return s
}

// Resource returns the resource name
func (s *Service[T]) Resource() string {
	return s.def.Resource
}

// List returns a page of projected records.
func (s *Service[T]) List(ctx context.Context, filter shared.Filter, columns []string) (shared.Paginated[projection.Resource], error) {
	items, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[projection.Resource]{}, err
	}
	out := make([]projection.Resource, 0, len(items))
	for i := range items {
		r, err := s.project(ctx, &items[i], columns)
		if err != nil {
			return shared.Paginated[projection.Resource]{}, err
		}
		out = append(out, r)
	}
	return shared.NewPaginated(out, total, filter.Page, filter.PageSize), nil
}

// Get returns one projected record.
func (s *Service[T]) Get(ctx context.Context, id int64, columns []string) (projection.Resource, error) {
	entity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return projection.Resource{}, err
	}
	return s.project(ctx, entity, columns)
}

// Create validates and stores a new record.
func (s *Service[T]) Create(ctx context.Context, in validation.Fields) (projection.Resource, error) {
	in = s.prepare(in, validation.Create)
	if err := s.validator.Validate(ctx, s.def.Rules(validation.Create, 0), in); err != nil {
		return projection.Resource{}, err
	}

	entity := new(T)
	s.def.Apply(entity, in, validation.Create)

	actor, _ := shared.ActorFrom(ctx)
	if a := auditOf(entity); a != nil {
		a.CreatedBy = actor.UserIDPtr()
		a.UpdatedBy = actor.UserIDPtr()
	}
	if t, ok := any(entity).(shared.TenantOwned); ok && actor.TenantID != uuid.Nil {
		t.SetTenantID(actor.TenantID)
	}

	if err := s.repo.Create(ctx, entity); err != nil {
		return projection.Resource{}, err
	}
	id := idOf(entity)
	s.logger.Info("Record created", zap.Int64("id", id))

	if err := s.hooks.Fire(ctx, Mutation{Resource: s.def.Resource, Event: Created, ID: id}); err != nil {
		return projection.Resource{}, err
	}
	return s.project(ctx, entity, nil)
}

// Update validates a partial update and stores it.
func (s *Service[T]) Update(ctx context.Context, id int64, in validation.Fields) (projection.Resource, error) {
	entity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return projection.Resource{}, err
	}

	in = s.prepare(in, validation.Update)
	var opts []validation.Option
	if s.def.Current != nil {
		opts = append(opts, validation.WithCurrent(s.def.Current(entity)))
	}
	if err := s.validator.Validate(ctx, s.def.Rules(validation.Update, id), in, opts...); err != nil {
		return projection.Resource{}, err
	}

	s.def.Apply(entity, in, validation.Update)
	if a := auditOf(entity); a != nil {
		actor, _ := shared.ActorFrom(ctx)
		a.UpdatedBy = actor.UserIDPtr()
	}

	if err := s.repo.Update(ctx, entity); err != nil {
		return projection.Resource{}, err
	}
	s.logger.Info("Record updated", zap.Int64("id", id))

	if err := s.hooks.Fire(ctx, Mutation{Resource: s.def.Resource, Event: Updated, ID: id}); err != nil {
		return projection.Resource{}, err
	}
	return s.project(ctx, entity, nil)
}

// Delete soft-deletes a record.
func (s *Service[T]) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	actor, _ := shared.ActorFrom(ctx)
	if err := s.repo.Delete(ctx, id, actor.UserIDPtr()); err != nil {
		return err
	}
	s.logger.Info("Record deleted", zap.Int64("id", id))
	return s.hooks.Fire(ctx, Mutation{Resource: s.def.Resource, Event: Deleted, ID: id})
}

// Restore brings a soft-deleted record back.
func (s *Service[T]) Restore(ctx context.Context, id int64) (projection.Resource, error) {
	entity, err := s.repo.FindByIDWithTrashed(ctx, id)
	if err != nil {
		return projection.Resource{}, err
	}
	if a := auditOf(entity); a != nil && !a.IsDeleted() {
		return projection.Resource{}, shared.ErrInvalidState.WithMessage("Record is not deleted")
	}
	if err := s.repo.Restore(ctx, id); err != nil {
		return projection.Resource{}, err
	}
	s.logger.Info("Record restored", zap.Int64("id", id))

	if err := s.hooks.Fire(ctx, Mutation{Resource: s.def.Resource, Event: Restored, ID: id}); err != nil {
		return projection.Resource{}, err
	}
	if a := auditOf(entity); a != nil {
		a.DeletedAt = nil
		a.DeletedBy = nil
	}
	return s.project(ctx, entity, nil)
}

// ForceDelete removes a record permanently, deleted or not.
func (s *Service[T]) ForceDelete(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByIDWithTrashed(ctx, id); err != nil {
		return err
	}
	if err := s.repo.ForceDelete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Record permanently deleted", zap.Int64("id", id))
	return s.hooks.Fire(ctx, Mutation{Resource: s.def.Resource, Event: ForceDeleted, ID: id})
}

func (s *Service[T]) prepare(in validation.Fields, op validation.Operation) validation.Fields {
	if in == nil {
		in = validation.Fields{}
	}
	if s.def.Prepare == nil {
		return in
	}
	return s.def.Prepare(in, op)
}

func (s *Service[T]) project(ctx context.Context, entity *T, columns []string) (projection.Resource, error) {
	fields, err := s.def.Project(ctx, entity, s.refs)
	if err != nil {
		return projection.Resource{}, err
	}
	return projection.Project(fields, columns), nil
}

func auditOf(entity any) *shared.Audit {
	if e, ok := entity.(shared.Entity); ok {
		return e.AuditInfo()
	}
	return nil
}

func idOf(entity any) int64 {
	if e, ok := entity.(shared.Entity); ok {
		return e.GetID()
	}
	return 0
}
