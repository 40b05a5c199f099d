package donor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/postdigester/donation-backend/internal/models"
)

func TestMongoRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("find by email", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(1, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "email", Value: "d@x.io"},
			{Key: "name", Value: "D"},
			{Key: "amount", Value: 10.0},
		}))

		d, err := repo.FindByEmail(context.Background(), "d@x.io")
		require.NoError(mt, err)
		require.NotNil(mt, d)
		require.Equal(mt, 10.0, d.Amount)
	})

	mt.Run("find by email missing", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		d, err := repo.FindByEmail(context.Background(), "none@x.io")
		require.NoError(mt, err)
		require.Nil(mt, d)
	})

	mt.Run("insert", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		d := &models.Donor{Email: "d@x.io", Amount: 10}
		require.NoError(mt, repo.Insert(context.Background(), d))
		require.False(mt, d.ID.IsZero())
	})

	mt.Run("insert duplicate", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		err := repo.Insert(context.Background(), &models.Donor{Email: "d@x.io"})
		require.True(mt, errors.Is(err, ErrDonorExists))
	})

	mt.Run("increment", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		res, err := repo.Increment(context.Background(), "d@x.io", 20)
		require.NoError(mt, err)
		require.True(mt, res.Acknowledged)
		require.Equal(mt, int64(1), res.MatchedCount)
		require.Equal(mt, int64(1), res.ModifiedCount)
	})

	mt.Run("list", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		first := mtest.CreateCursorResponse(1, ns, mtest.FirstBatch,
			bson.D{{Key: "email", Value: "a@x.io"}, {Key: "amount", Value: 1.0}},
			bson.D{{Key: "email", Value: "b@x.io"}, {Key: "amount", Value: 2.0}},
		)
		killCursors := mtest.CreateCursorResponse(0, ns, mtest.NextBatch)
		mt.AddMockResponses(first, killCursors)

		list, err := repo.List(context.Background())
		require.NoError(mt, err)
		require.Len(mt, list, 2)
		require.Equal(mt, "b@x.io", list[1].Email)
	})

	mt.Run("ensure indexes", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		require.NoError(mt, repo.EnsureIndexes(context.Background()))
	})
}
