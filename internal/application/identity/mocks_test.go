package identity

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/stockpile/backend/internal/domain/identity"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id int64) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindInTenant(ctx context.Context, id int64) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) RoleIDs(ctx context.Context, userID int64) ([]int64, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockUserRepository) AssignRole(ctx context.Context, userID, roleID int64) error {
	return m.Called(ctx, userID, roleID).Error(0)
}

func (m *MockUserRepository) RevokeRole(ctx context.Context, userID, roleID int64) error {
	return m.Called(ctx, userID, roleID).Error(0)
}

// memoryStore is a SnapshotStore that can be told to fail.
type memoryStore struct {
	mu        sync.Mutex
	snapshots map[string]*Snapshot
	getErr    error
	setErr    error
	clearErr  error
	clears    int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{snapshots: map[string]*Snapshot{}}
}

func (s *memoryStore) Get(_ context.Context, guard string) (*Snapshot, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, false, s.getErr
	}
	snap, ok := s.snapshots[guard]
	return snap, ok, nil
}

func (s *memoryStore) Set(_ context.Context, guard string, snapshot *Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setErr != nil {
		return s.setErr
	}
	s.snapshots[guard] = snapshot
	return nil
}

func (s *memoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.clearErr != nil {
		return s.clearErr
	}
	s.clears++
	s.snapshots = map[string]*Snapshot{}
	return nil
}

func (s *memoryStore) has(guard string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.snapshots[guard]
	return ok
}

// funcLoader builds snapshots with a replaceable function and counts calls.
type funcLoader struct {
	calls atomic.Int32
	load  func(ctx context.Context, guard string) (*Snapshot, error)
}

func (l *funcLoader) LoadSnapshot(ctx context.Context, guard string) (*Snapshot, error) {
	l.calls.Add(1)
	return l.load(ctx, guard)
}

func staticLoader(roles ...RoleEntry) *funcLoader {
	return &funcLoader{load: func(_ context.Context, guard string) (*Snapshot, error) {
		return NewSnapshot(guard, roles, nil), nil
	}}
}

var errBoom = errors.New("boom")
