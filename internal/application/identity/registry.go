package identity

import (
	"context"
	"strconv"
	"sync"

	"github.com/stockpile/backend/internal/domain/identity"
	"github.com/stockpile/backend/internal/domain/shared"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// SnapshotStore holds cached snapshots keyed by guard. Clear must remove
// every guard atomically with respect to Get.
type SnapshotStore interface {
	Get(ctx context.Context, guard string) (*Snapshot, bool, error)
	Set(ctx context.Context, guard string, snapshot *Snapshot) error
	Clear(ctx context.Context) error
}

// VersionedSnapshotStore is a SnapshotStore shared between processes. Clear
// advances a store-side version and SetIfVersion writes only while that
// version is unchanged.
type VersionedSnapshotStore interface {
	SnapshotStore
	Version(ctx context.Context) (int64, error)
	SetIfVersion(ctx context.Context, guard string, version int64, snapshot *Snapshot) (bool, error)
}

// SnapshotLoader builds a snapshot from the source of truth.
type SnapshotLoader interface {
	LoadSnapshot(ctx context.Context, guard string) (*Snapshot, error)
}

// Registry is the process-wide role/permission cache.
//
// Invalidate and the post-load fill share a mutex and a generation counter:
// a load that began before an invalidation never writes its result back,
// so once Invalidate returns no caller can observe pre-invalidation data.
// The counter is per process. Across instances the same guarantee needs a
// VersionedSnapshotStore, whose version is read before the load and checked
// by the store on fill.
type Registry struct {
	store  SnapshotStore
	loader SnapshotLoader
	logger *zap.Logger

	group      singleflight.Group
	mu         sync.Mutex
	generation uint64

	hits          metric.Int64Counter
	misses        metric.Int64Counter
	invalidations metric.Int64Counter
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithRegistryLogger sets the registry logger.
func WithRegistryLogger(logger *zap.Logger) RegistryOption {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithMeter records cache metrics on meter instead of the global provider.
func WithMeter(meter metric.Meter) RegistryOption {
	return func(r *Registry) {
		r.initMetrics(meter)
	}
}

// NewRegistry creates a registry over store, filled from loader.
func NewRegistry(store SnapshotStore, loader SnapshotLoader, opts ...RegistryOption) *Registry {
	r := &Registry{
		store:  store,
		loader: loader,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.hits == nil {
		r.initMetrics(otel.GetMeterProvider().Meter("github.com/stockpile/backend/identity"))
	}
	return r
}

func (r *Registry) initMetrics(meter metric.Meter) {
	// instrument creation only fails on invalid names; fall back to no-op counters
	r.hits, _ = meter.Int64Counter("permission_cache.hits",
		metric.WithDescription("Permission snapshot reads served from cache"))
	r.misses, _ = meter.Int64Counter("permission_cache.misses",
		metric.WithDescription("Permission snapshot reads that loaded from the database"))
	r.invalidations, _ = meter.Int64Counter("permission_cache.invalidations",
		metric.WithDescription("Permission cache clears"))
}

// Snapshot returns the snapshot for guard, loading it on a miss.
func (r *Registry) Snapshot(ctx context.Context, guard string) (*Snapshot, error) {
	guard = identity.NormalizeGuard(guard)
	attrs := metric.WithAttributes(attribute.String("guard", guard))

	cached, ok, err := r.store.Get(ctx, guard)
	if err != nil {
		r.logger.Warn("Permission cache read failed, loading from database",
			zap.String("guard", guard), zap.Error(err))
	} else if ok {
		r.hits.Add(ctx, 1, attrs)
		return cached, nil
	}
	r.misses.Add(ctx, 1, attrs)

	r.mu.Lock()
	gen := r.generation
	r.mu.Unlock()
	version, fillable := r.storeVersion(ctx, guard)

	key := guard + "#" + strconv.FormatUint(gen, 10) + "#" + strconv.FormatInt(version, 10)
	v, err, _ := r.group.Do(key, func() (any, error) {
		loadCtx := context.WithoutCancel(ctx)
		snapshot, err := r.loader.LoadSnapshot(loadCtx, guard)
		if err != nil {
			return nil, err
		}
		if fillable {
			r.fill(loadCtx, gen, version, guard, snapshot)
		}
		return snapshot, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Snapshot), nil
}

// storeVersion reads the shared store version. An unreadable version
// leaves the loaded snapshot uncached.
func (r *Registry) storeVersion(ctx context.Context, guard string) (int64, bool) {
	vs, ok := r.store.(VersionedSnapshotStore)
	if !ok {
		return 0, true
	}
	version, err := vs.Version(ctx)
	if err != nil {
		r.logger.Warn("Permission cache version read failed, snapshot will not be cached",
			zap.String("guard", guard), zap.Error(err))
		return 0, false
	}
	return version, true
}

func (r *Registry) fill(ctx context.Context, gen uint64, version int64, guard string, snapshot *Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.generation != gen {
		r.logger.Debug("Discarding permission snapshot loaded before invalidation", zap.String("guard", guard))
		return
	}
	if vs, ok := r.store.(VersionedSnapshotStore); ok {
		written, err := vs.SetIfVersion(ctx, guard, version, snapshot)
		if err != nil {
			r.logger.Warn("Permission cache write failed", zap.String("guard", guard), zap.Error(err))
		} else if !written {
			r.logger.Debug("Discarding permission snapshot invalidated by another instance", zap.String("guard", guard))
		}
		return
	}
	if err := r.store.Set(ctx, guard, snapshot); err != nil {
		r.logger.Warn("Permission cache write failed", zap.String("guard", guard), zap.Error(err))
	}
}

// Invalidate clears every cached snapshot. It must succeed for a role or
// permission mutation to be reported as successful.
func (r *Registry) Invalidate(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.generation++
	if err := r.store.Clear(ctx); err != nil {
		r.logger.Error("Permission cache clear failed", zap.Error(err))
		return shared.ErrCacheInvalidation.Wrap(err)
	}
	r.invalidations.Add(ctx, 1)
	r.logger.Debug("Permission cache cleared", zap.Uint64("generation", r.generation))
	return nil
}

// RepositoryLoader loads snapshots from the role and permission repositories.
type RepositoryLoader struct {
	roles       identity.RoleRepository
	permissions identity.PermissionRepository
}

// NewRepositoryLoader creates a loader over the identity repositories.
func NewRepositoryLoader(roles identity.RoleRepository, permissions identity.PermissionRepository) *RepositoryLoader {
	return &RepositoryLoader{roles: roles, permissions: permissions}
}

// LoadSnapshot implements SnapshotLoader
func (l *RepositoryLoader) LoadSnapshot(ctx context.Context, guard string) (*Snapshot, error) {
	roles, err := l.roles.FindAllByGuard(ctx, guard)
	if err != nil {
		return nil, err
	}
	perms, err := l.permissions.FindAllByGuard(ctx, guard)
	if err != nil {
		return nil, err
	}

	entries := make([]RoleEntry, 0, len(roles))
	for i := range roles {
		entries = append(entries, RoleEntry{
			ID:          roles[i].ID,
			Name:        roles[i].Name,
			Permissions: roles[i].PermissionNames(),
		})
	}
	names := make([]string, 0, len(perms))
	for _, p := range perms {
		names = append(names, p.Name)
	}
	return NewSnapshot(guard, entries, names), nil
}
