package users

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

func TestMongoUserRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create sets id", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		u := &models.User{Name: "A", Email: "a@b.c", Password: "hash"}
		require.NoError(mt, repo.Create(context.Background(), u))
		require.False(mt, u.ID.IsZero())
	})

	mt.Run("create duplicate maps to ErrUserExists", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		err := repo.Create(context.Background(), &models.User{Email: "a@b.c"})
		require.True(mt, errors.Is(err, ErrUserExists))
	})

	mt.Run("get by email found", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.Coll)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(1, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "name", Value: "A"},
			{Key: "email", Value: "a@b.c"},
			{Key: "password", Value: "hash"},
		}))

		u, err := repo.GetByEmail(context.Background(), "a@b.c")
		require.NoError(mt, err)
		require.NotNil(mt, u)
		require.Equal(mt, "A", u.Name)
		require.Equal(mt, "hash", u.Password)
	})

	mt.Run("get by email missing returns nil", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.Coll)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		u, err := repo.GetByEmail(context.Background(), "nobody@b.c")
		require.NoError(mt, err)
		require.Nil(mt, u)
	})

	mt.Run("ensure indexes", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		require.NoError(mt, repo.EnsureIndexes(context.Background()))
	})
}

func TestMemoryUserRepository(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	u := &models.User{Name: "A", Email: "a@b.c"}
	require.NoError(t, repo.Create(ctx, u))
	require.False(t, u.ID.IsZero())
	require.ErrorIs(t, repo.Create(ctx, &models.User{Email: "a@b.c"}), ErrUserExists)

	got, err := repo.GetByEmail(ctx, "a@b.c")
	require.NoError(t, err)
	require.Equal(t, "A", got.Name)

	missing, err := repo.GetByEmail(ctx, "x@y.z")
	require.NoError(t, err)
	require.Nil(t, missing)
}
