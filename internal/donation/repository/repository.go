package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/postdigester/donation-backend/internal/donation"
)

var (
	ErrNotFound = errors.New("donation not found")
)

// Repository is the persistence contract shared by the Mongo and in-memory stores.
// Update and Delete return a nil document when the id matches nothing.
type Repository interface {
	Create(ctx context.Context, d donation.Donation) (primitive.ObjectID, error)
	List(ctx context.Context) ([]donation.Donation, error)
	Get(ctx context.Context, id primitive.ObjectID) (donation.Donation, error)
	Update(ctx context.Context, id primitive.ObjectID, set donation.Donation) (donation.Donation, error)
	Delete(ctx context.Context, id primitive.ObjectID) (donation.Donation, error)
	Statistics(ctx context.Context) (*donation.Statistics, error)
}

// withoutID returns a shallow copy of d minus any client-supplied _id.
func withoutID(d donation.Donation) donation.Donation {
	out := make(donation.Donation, len(d))
	for k, v := range d {
		if k == "_id" {
			continue
		}
		out[k] = v
	}
	return out
}
