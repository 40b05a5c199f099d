package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/postdigester/donation-backend/internal/donation"
)

// MongoRepo implements Repository on the donations collection.
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(col *mongo.Collection) *MongoRepo {
	return &MongoRepo{col: col}
}

func (m *MongoRepo) Create(ctx context.Context, d donation.Donation) (primitive.ObjectID, error) {
	res, err := m.col.InsertOne(ctx, withoutID(d))
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert donation: %w", err)
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("insert donation: unexpected id type %T", res.InsertedID)
	}
	return id, nil
}

func (m *MongoRepo) List(ctx context.Context) ([]donation.Donation, error) {
	cur, err := m.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find donations: %w", err)
	}
	out := []donation.Donation{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode donations: %w", err)
	}
	return out, nil
}

func (m *MongoRepo) Get(ctx context.Context, id primitive.ObjectID) (donation.Donation, error) {
	var d donation.Donation
	if err := m.col.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find donation: %w", err)
	}
	return d, nil
}

func (m *MongoRepo) Update(ctx context.Context, id primitive.ObjectID, set donation.Donation) (donation.Donation, error) {
	set = withoutID(set)
	if len(set) == 0 {
		d, err := m.Get(ctx, id)
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return d, err
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var d donation.Donation
	err := m.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("update donation: %w", err)
	}
	return d, nil
}

func (m *MongoRepo) Delete(ctx context.Context, id primitive.ObjectID) (donation.Donation, error) {
	var d donation.Donation
	if err := m.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("delete donation: %w", err)
	}
	return d, nil
}

// statisticsPipeline groups by category, then folds the groups into one summary row.
var statisticsPipeline = mongo.Pipeline{
	{{Key: "$group", Value: bson.D{
		{Key: "_id", Value: "$category"},
		{Key: "totalDonation", Value: bson.D{{Key: "$sum", Value: "$amount"}}},
		{Key: "totalItem", Value: bson.D{{Key: "$sum", Value: 1}}},
	}}},
	{{Key: "$group", Value: bson.D{
		{Key: "_id", Value: nil},
		{Key: "totalDonationSum", Value: bson.D{{Key: "$sum", Value: "$totalDonation"}}},
		{Key: "statistics", Value: bson.D{{Key: "$push", Value: "$$ROOT"}}},
	}}},
}

func (m *MongoRepo) Statistics(ctx context.Context) (*donation.Statistics, error) {
	cur, err := m.col.Aggregate(ctx, statisticsPipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate statistics: %w", err)
	}
	var rows []donation.Statistics
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode statistics: %w", err)
	}
	if len(rows) == 0 {
		return &donation.Statistics{}, nil
	}
	return &rows[0], nil
}
