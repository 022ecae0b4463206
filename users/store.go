package users

import (
	"context"
	"sort"
	"sync"

	"github.com/user/degreeportal-go/apperror"
	"github.com/user/degreeportal-go/auth"
)

// Client-facing store messages, shared by every Store implementation.
const (
	msgUserNotFound  = "User not found"
	msgUserIDTaken   = "UserID already exists"
	msgUserIDMissing = "userID is required"
)

// Store persists identities. It owns the userID uniqueness constraint:
// Insert of an existing userID fails with DuplicateKeyError, and a missing
// userID on Find, Update or Delete fails with NotFoundError.
// Store satisfies auth.CredentialStore.
type Store interface {
	FindByUserID(ctx context.Context, userID string) (*auth.Identity, error)
	List(ctx context.Context) ([]auth.Identity, error)
	Insert(ctx context.Context, identity *auth.Identity) error
	Update(ctx context.Context, identity *auth.Identity) error
	Delete(ctx context.Context, userID string) error
}

// MemoryStore is a Store kept in process memory, safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]auth.Identity
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[string]auth.Identity)}
}

func (s *MemoryStore) FindByUserID(_ context.Context, userID string) (*auth.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	identity, ok := s.users[userID]
	if !ok {
		return nil, apperror.NewNotFoundError(msgUserNotFound, nil)
	}
	return &identity, nil
}

// List returns all identities ordered by userID.
func (s *MemoryStore) List(_ context.Context) ([]auth.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]auth.Identity, 0, len(s.users))
	for _, identity := range s.users {
		out = append(out, identity)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (s *MemoryStore) Insert(_ context.Context, identity *auth.Identity) error {
	if identity.UserID == "" {
		return apperror.NewValidationError(msgUserIDMissing, nil)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[identity.UserID]; exists {
		return apperror.NewDuplicateKeyError(msgUserIDTaken, nil)
	}
	s.users[identity.UserID] = *identity
	return nil
}

func (s *MemoryStore) Update(_ context.Context, identity *auth.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[identity.UserID]; !exists {
		return apperror.NewNotFoundError(msgUserNotFound, nil)
	}
	s.users[identity.UserID] = *identity
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[userID]; !exists {
		return apperror.NewNotFoundError(msgUserNotFound, nil)
	}
	delete(s.users, userID)
	return nil
}
