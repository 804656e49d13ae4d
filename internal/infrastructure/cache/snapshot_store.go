package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/stockpile/backend/internal/application/identity"
)

// DefaultSnapshotKey is the Redis hash holding one snapshot per guard.
const DefaultSnapshotKey = "stockpile:permission_cache"

// MemorySnapshotStore keeps snapshots in process memory.
// It is only coherent for single-instance deployments.
type MemorySnapshotStore struct {
	mu        sync.RWMutex
	snapshots map[string]*identity.Snapshot
}

// NewMemorySnapshotStore creates an empty in-memory store
func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{snapshots: make(map[string]*identity.Snapshot)}
}

// Get returns the cached snapshot for guard
func (s *MemorySnapshotStore) Get(_ context.Context, guard string) (*identity.Snapshot, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snapshots[guard]
	return snap, ok, nil
}

// Set caches the snapshot for guard
func (s *MemorySnapshotStore) Set(_ context.Context, guard string, snapshot *identity.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[guard] = snapshot
	return nil
}

// Clear drops every cached snapshot
func (s *MemorySnapshotStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots = make(map[string]*identity.Snapshot)
	return nil
}

// versionField is the hash field holding the clear counter. Keeping it in
// the snapshot hash lets every script touch a single key.
const versionField = "#version"

// clearScript drops every guard and advances the version.
var clearScript = redis.NewScript(`
local v = tonumber(redis.call('HGET', KEYS[1], ARGV[1]) or '0') + 1
redis.call('DEL', KEYS[1])
redis.call('HSET', KEYS[1], ARGV[1], v)
return v
`)

// setIfVersionScript writes a guard only while the version is unchanged.
var setIfVersionScript = redis.NewScript(`
if (redis.call('HGET', KEYS[1], ARGV[1]) or '0') ~= ARGV[2] then
	return 0
end
redis.call('HSET', KEYS[1], ARGV[3], ARGV[4])
return 1
`)

// RedisSnapshotStore keeps snapshots as JSON fields of a single Redis hash,
// so one clear drops every guard for every instance.
type RedisSnapshotStore struct {
	client redis.UniversalClient
	key    string
}

// NewRedisSnapshotStore creates a store over an existing client
func NewRedisSnapshotStore(client redis.UniversalClient, key string) *RedisSnapshotStore {
	if key == "" {
		key = DefaultSnapshotKey
	}
	return &RedisSnapshotStore{client: client, key: key}
}

// Get returns the cached snapshot for guard
func (s *RedisSnapshotStore) Get(ctx context.Context, guard string) (*identity.Snapshot, bool, error) {
	data, err := s.client.HGet(ctx, s.key, guard).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read permission snapshot: %w", err)
	}
	snap, err := identity.DecodeSnapshot(data)
	if err != nil {
		return nil, false, fmt.Errorf("failed to decode permission snapshot: %w", err)
	}
	return snap, true, nil
}

// Set caches the snapshot for guard
func (s *RedisSnapshotStore) Set(ctx context.Context, guard string, snapshot *identity.Snapshot) error {
	data, err := snapshot.Encode()
	if err != nil {
		return fmt.Errorf("failed to encode permission snapshot: %w", err)
	}
	if err := s.client.HSet(ctx, s.key, guard, data).Err(); err != nil {
		return fmt.Errorf("failed to write permission snapshot: %w", err)
	}
	return nil
}

// Version returns the number of clears seen by the hash
func (s *RedisSnapshotStore) Version(ctx context.Context) (int64, error) {
	raw, err := s.client.HGet(ctx, s.key, versionField).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read permission cache version: %w", err)
	}
	version, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid permission cache version %q: %w", raw, err)
	}
	return version, nil
}

// SetIfVersion caches the snapshot unless the hash was cleared since version
func (s *RedisSnapshotStore) SetIfVersion(ctx context.Context, guard string, version int64, snapshot *identity.Snapshot) (bool, error) {
	data, err := snapshot.Encode()
	if err != nil {
		return false, fmt.Errorf("failed to encode permission snapshot: %w", err)
	}
	written, err := setIfVersionScript.Run(ctx, s.client, []string{s.key},
		versionField, strconv.FormatInt(version, 10), guard, data).Int()
	if err != nil {
		return false, fmt.Errorf("failed to write permission snapshot: %w", err)
	}
	return written == 1, nil
}

// Clear drops every guard and advances the version
func (s *RedisSnapshotStore) Clear(ctx context.Context) error {
	if err := clearScript.Run(ctx, s.client, []string{s.key}, versionField).Err(); err != nil {
		return fmt.Errorf("failed to clear permission cache: %w", err)
	}
	return nil
}

// Ping checks the Redis connection
func (s *RedisSnapshotStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

var (
	_ identity.SnapshotStore = (*MemorySnapshotStore)(nil)
	_ identity.VersionedSnapshotStore = (*RedisSnapshotStore)(nil)
)
