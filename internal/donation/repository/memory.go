package repository

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/postdigester/donation-backend/internal/donation"
)

// MemoryRepo is an in-memory Repository used by unit tests and local runs
// without MongoDB. It keeps insertion order for List.
type MemoryRepo struct {
	mu    sync.RWMutex
	order []primitive.ObjectID
	store map[primitive.ObjectID]donation.Donation
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[primitive.ObjectID]donation.Donation)}
}

func copyDoc(d donation.Donation) donation.Donation {
	out := make(donation.Donation, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

func (m *MemoryRepo) Create(ctx context.Context, d donation.Donation) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := primitive.NewObjectID()
	doc := withoutID(d)
	doc["_id"] = id
	m.store[id] = doc
	m.order = append(m.order, id)
	return id, nil
}

func (m *MemoryRepo) List(ctx context.Context) ([]donation.Donation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]donation.Donation, 0, len(m.store))
	for _, id := range m.order {
		if d, ok := m.store[id]; ok {
			out = append(out, copyDoc(d))
		}
	}
	return out, nil
}

func (m *MemoryRepo) Get(ctx context.Context, id primitive.ObjectID) (donation.Donation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyDoc(d), nil
}

func (m *MemoryRepo) Update(ctx context.Context, id primitive.ObjectID, set donation.Donation) (donation.Donation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.store[id]
	if !ok {
		return nil, nil
	}
	for k, v := range withoutID(set) {
		d[k] = v
	}
	return copyDoc(d), nil
}

func (m *MemoryRepo) Delete(ctx context.Context, id primitive.ObjectID) (donation.Donation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.store[id]
	if !ok {
		return nil, nil
	}
	delete(m.store, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return d, nil
}

// Statistics mirrors the aggregation pipeline: non-numeric amounts are ignored
// by the sum but still counted as items.
func (m *MemoryRepo) Statistics(ctx context.Context) (*donation.Statistics, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.order) == 0 {
		return &donation.Statistics{}, nil
	}
	index := map[string]int{}
	var groups []donation.CategoryStat
	var total float64
	for _, id := range m.order {
		d := m.store[id]
		cat := d["category"]
		key := fmt.Sprintf("%T:%v", cat, cat)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, donation.CategoryStat{Category: cat})
		}
		amount := numeric(d["amount"])
		groups[i].TotalDonation += amount
		groups[i].TotalItem++
		total += amount
	}
	return &donation.Statistics{TotalDonationSum: &total, Statistics: groups}, nil
}

func numeric(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}
