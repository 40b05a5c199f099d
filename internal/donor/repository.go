package donor

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/postdigester/donation-backend/internal/models"
)

// ErrDonorExists is returned by Insert when a row for the email already exists.
var ErrDonorExists = errors.New("donor already exists")

// Repository persists donor running totals keyed by email.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*models.Donor, error)
	Insert(ctx context.Context, d *models.Donor) error
	Increment(ctx context.Context, email string, amount float64) (models.UpdateResult, error)
	List(ctx context.Context) ([]models.Donor, error)
}

// MongoRepository implements Repository on the donors collection
type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

// EnsureIndexes creates the unique email index that makes a racing first insert fail
// with a duplicate key instead of creating a second row.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	idx := mongo.IndexModel{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)}
	if _, err := r.col.Indexes().CreateOne(ctx, idx); err != nil {
		return fmt.Errorf("donors index: %w", err)
	}
	return nil
}

func (r *MongoRepository) FindByEmail(ctx context.Context, email string) (*models.Donor, error) {
	var d models.Donor
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find donor: %w", err)
	}
	return &d, nil
}

func (r *MongoRepository) Insert(ctx context.Context, d *models.Donor) error {
	res, err := r.col.InsertOne(ctx, d)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDonorExists
		}
		return fmt.Errorf("insert donor: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		d.ID = oid
	}
	return nil
}

func (r *MongoRepository) Increment(ctx context.Context, email string, amount float64) (models.UpdateResult, error) {
	res, err := r.col.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$inc": bson.M{"amount": amount}})
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("increment donor: %w", err)
	}
	return models.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
		UpsertedID:    res.UpsertedID,
	}, nil
}

func (r *MongoRepository) List(ctx context.Context) ([]models.Donor, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find donors: %w", err)
	}
	out := []models.Donor{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode donors: %w", err)
	}
	return out, nil
}
