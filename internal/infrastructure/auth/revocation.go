package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationList records access tokens invalidated before expiry.
type RevocationList interface {
	// Revoke marks jti revoked for ttl, the token's remaining lifetime.
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// RedisRevocationList keeps revoked token ids as expiring Redis keys.
type RedisRevocationList struct {
	client    redis.UniversalClient
	keyPrefix string
}

// NewRedisRevocationList creates a revocation list on an existing client.
func NewRedisRevocationList(client redis.UniversalClient, keyPrefix string) *RedisRevocationList {
	if keyPrefix == "" {
		keyPrefix = "stockpile:token:revoked:"
	}
	return &RedisRevocationList{client: client, keyPrefix: keyPrefix}
}

// Revoke implements RevocationList
func (r *RedisRevocationList) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, r.keyPrefix+jti, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsRevoked implements RevocationList
func (r *RedisRevocationList) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := r.client.Exists(ctx, r.keyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return n > 0, nil
}

// MemoryRevocationList is a single-process RevocationList.
type MemoryRevocationList struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

// NewMemoryRevocationList creates an empty in-memory revocation list.
func NewMemoryRevocationList() *MemoryRevocationList {
	return &MemoryRevocationList{revoked: make(map[string]time.Time), now: time.Now}
}

// Revoke implements RevocationList
func (m *MemoryRevocationList) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[jti] = m.now().Add(ttl)
	return nil
}

// IsRevoked implements RevocationList
func (m *MemoryRevocationList) IsRevoked(_ context.Context, jti string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	exp, ok := m.revoked[jti]
	if !ok {
		return false, nil
	}
	if m.now().After(exp) {
		delete(m.revoked, jti)
		return false, nil
	}
	return true, nil
}

var (
	_ RevocationList = (*RedisRevocationList)(nil)
	_ RevocationList = (*MemoryRevocationList)(nil)
)
