package donor

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/postdigester/donation-backend/internal/models"
)

// MemoryRepository keeps donors in a map keyed by email.
type MemoryRepository struct {
	mu    sync.RWMutex
	order []string
	store map[string]models.Donor
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{store: make(map[string]models.Donor)}
}

func (m *MemoryRepository) FindByEmail(ctx context.Context, email string) (*models.Donor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.store[email]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (m *MemoryRepository) Insert(ctx context.Context, d *models.Donor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[d.Email]; ok {
		return ErrDonorExists
	}
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	m.store[d.Email] = *d
	m.order = append(m.order, d.Email)
	return nil
}

func (m *MemoryRepository) Increment(ctx context.Context, email string, amount float64) (models.UpdateResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.store[email]
	if !ok {
		return models.UpdateResult{Acknowledged: true}, nil
	}
	d.Amount += amount
	m.store[email] = d
	res := models.UpdateResult{Acknowledged: true, MatchedCount: 1}
	if amount != 0 {
		res.ModifiedCount = 1
	}
	return res, nil
}

func (m *MemoryRepository) List(ctx context.Context) ([]models.Donor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Donor, 0, len(m.order))
	for _, email := range m.order {
		out = append(out, m.store[email])
	}
	return out, nil
}
