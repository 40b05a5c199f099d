package users

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/postdigester/donation-backend/internal/models"
)

// MemoryUserRepository keeps users in a map keyed by email. Used by tests and
// by handler wiring that runs without a database.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	store map[string]models.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{store: make(map[string]models.User)}
}

func (m *MemoryUserRepository) Create(ctx context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[u.Email]; ok {
		return ErrUserExists
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	m.store[u.Email] = *u
	return nil
}

func (m *MemoryUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.store[email]
	if !ok {
		return nil, nil
	}
	return &u, nil
}
