package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/postdigester/donation-backend/internal/donation"
	"github.com/postdigester/donation-backend/internal/donation/repository"
)

var (
	ErrNotFound  = repository.ErrNotFound
	ErrInvalidID = errors.New("invalid donation id")
)

// Service defines the donation operations used by the handler layer.
// Ids are ObjectID hex strings.
type Service interface {
	Create(ctx context.Context, d donation.Donation) (primitive.ObjectID, error)
	List(ctx context.Context) ([]donation.Donation, error)
	Get(ctx context.Context, id string) (donation.Donation, error)
	Update(ctx context.Context, id string, fields donation.Donation) (donation.Donation, error)
	Delete(ctx context.Context, id string) (donation.Donation, error)
	Statistics(ctx context.Context) (*donation.Statistics, error)
}

// NewMemoryService returns a Service backed by the in-memory repository.
func NewMemoryService() Service {
	return NewService(repository.NewMemoryRepo())
}

// NewMongoService returns a Service backed by a MongoDB collection.
// Caller owns the client and its lifetime.
func NewMongoService(col *mongo.Collection) Service {
	return NewService(repository.NewMongoRepo(col))
}

func NewService(repo repository.Repository) Service {
	return &donationService{repo: repo}
}

type donationService struct {
	repo repository.Repository
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return oid, nil
}

func (s *donationService) Create(ctx context.Context, d donation.Donation) (primitive.ObjectID, error) {
	return s.repo.Create(ctx, d)
}

func (s *donationService) List(ctx context.Context) ([]donation.Donation, error) {
	return s.repo.List(ctx)
}

func (s *donationService) Get(ctx context.Context, id string) (donation.Donation, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, oid)
}

func (s *donationService) Update(ctx context.Context, id string, fields donation.Donation) (donation.Donation, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, oid, fields)
}

func (s *donationService) Delete(ctx context.Context, id string) (donation.Donation, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.Delete(ctx, oid)
}

func (s *donationService) Statistics(ctx context.Context) (*donation.Statistics, error) {
	return s.repo.Statistics(ctx)
}
