// Package records stores schemaless append-only entries: testimonials,
// volunteer sign-ups and comments. Entries are never updated or deleted.
package records

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/postdigester/donation-backend/internal/models"
)

type Store interface {
	Insert(ctx context.Context, doc bson.M) (models.InsertResult, error)
	List(ctx context.Context) ([]bson.M, error)
}

// MongoStore appends to a single collection.
type MongoStore struct {
	col *mongo.Collection
}

func NewMongoStore(col *mongo.Collection) *MongoStore {
	return &MongoStore{col: col}
}

func (s *MongoStore) Insert(ctx context.Context, doc bson.M) (models.InsertResult, error) {
	res, err := s.col.InsertOne(ctx, withoutID(doc))
	if err != nil {
		return models.InsertResult{}, fmt.Errorf("insert into %s: %w", s.col.Name(), err)
	}
	return models.InsertResult{Acknowledged: true, InsertedID: res.InsertedID}, nil
}

func (s *MongoStore) List(ctx context.Context) ([]bson.M, error) {
	cur, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", s.col.Name(), err)
	}
	out := []bson.M{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.col.Name(), err)
	}
	return out, nil
}

// MemoryStore is the in-process twin of MongoStore.
type MemoryStore struct {
	mu   sync.RWMutex
	docs []bson.M
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Insert(ctx context.Context, doc bson.M) (models.InsertResult, error) {
	id := primitive.NewObjectID()
	d := withoutID(doc)
	d["_id"] = id
	s.mu.Lock()
	s.docs = append(s.docs, d)
	s.mu.Unlock()
	return models.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

func (s *MemoryStore) List(ctx context.Context) ([]bson.M, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]bson.M, 0, len(s.docs))
	for _, d := range s.docs {
		c := make(bson.M, len(d))
		for k, v := range d {
			c[k] = v
		}
		out = append(out, c)
	}
	return out, nil
}

// identity is always store-generated
func withoutID(doc bson.M) bson.M {
	out := make(bson.M, len(doc))
	for k, v := range doc {
		if k != "_id" {
			out[k] = v
		}
	}
	return out
}
