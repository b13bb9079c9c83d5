package repository

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/spec-kit/guard-service/internal/domain"
)

// memoryUserRepository is a mutex-guarded map store. It backs the service
// when no Postgres DSN is configured and is the store of choice in tests.
// Find-or-create shares the same atomicity contract as the SQL
// implementation: one row per email, ever.
type memoryUserRepository struct {
	mu      sync.Mutex
	seq     int
	byEmail map[string]*domain.User
}

// NewMemoryUserRepository returns an in-memory implementation.
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{byEmail: make(map[string]*domain.User)}
}

func (r *memoryUserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := r.insert(user)
	user.ID = stored.ID
	user.CreatedAt = stored.CreatedAt
	user.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *memoryUserRepository) FindOrCreateByEmail(_ context.Context, draft *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.byEmail[draft.Email]; ok {
		return cloneUser(existing), nil
	}
	return cloneUser(r.insert(draft)), nil
}

func (r *memoryUserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.byEmail {
		if user.ID == id {
			return cloneUser(user), nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.byEmail[email]; ok {
		return cloneUser(user), nil
	}
	return nil, ErrNotFound
}

func (r *memoryUserRepository) GetByExternalID(_ context.Context, externalID string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.byEmail {
		if user.ExternalID == externalID {
			return cloneUser(user), nil
		}
	}
	return nil, ErrNotFound
}

// insert assumes the caller holds the lock.
func (r *memoryUserRepository) insert(draft *domain.User) *domain.User {
	r.seq++
	now := time.Now().UTC()
	stored := cloneUser(draft)
	stored.ID = strconv.Itoa(r.seq)
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.byEmail[stored.Email] = stored
	return stored
}

func cloneUser(user *domain.User) *domain.User {
	clone := *user
	if user.Permissions != nil {
		clone.Permissions = append([]string(nil), user.Permissions...)
	}
	if user.Profile != nil {
		clone.Profile = make(map[string]any, len(user.Profile))
		for k, v := range user.Profile {
			clone.Profile[k] = v
		}
	}
	return &clone
}
