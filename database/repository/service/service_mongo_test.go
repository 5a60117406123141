package serviceRepo

import (
	"context"
	"testing"
	"time"

	"taskhive/database/repository"
	"taskhive/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

const servicesNS = "taskhive.services"

func TestMongoListPublicDecodesTaskerSummary(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("joined listing", func(mt *mtest.T) {
		repo := &MongoServiceRepo{coll: mt.Coll}
		created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, servicesNS, mtest.FirstBatch, bson.D{
			{Key: "id", Value: "s1"},
			{Key: "taskerId", Value: "t1"},
			{Key: "title", Value: "Window cleaning"},
			{Key: "category", Value: "Cleaning"},
			{Key: "price", Value: "80"},
			{Key: "tags", Value: bson.A{"glass"}},
			{Key: "status", Value: models.ServiceStatusActive},
			{Key: "state", Value: models.ServiceStateApproved},
			{Key: "version", Value: int64(3)},
			{Key: "createdAt", Value: created},
			{Key: "tasker", Value: bson.D{
				{Key: "id", Value: "t1"},
				{Key: "userId", Value: "u1"},
				{Key: "name", Value: "Tina Tasker"},
				{Key: "city", Value: "Portland"},
				{Key: "country", Value: "US"},
				{Key: "hourlyRate", Value: 35.5},
			}},
		}))

		listings, err := repo.ListPublic(context.Background(), models.PublicServiceFilter{Category: "Cleaning", Search: "tina"})
		require.NoError(mt, err)
		require.Len(mt, listings, 1)

		got := listings[0]
		assert.Equal(mt, "s1", got.ID)
		assert.Equal(mt, []string{"glass"}, got.Tags)
		assert.EqualValues(mt, 3, got.Version)
		assert.True(mt, got.CreatedAt.Equal(created))
		assert.Nil(mt, got.ReviewedAt)
		require.NotNil(mt, got.Tasker)
		assert.Equal(mt, "Tina Tasker", got.Tasker.Name)
		assert.Equal(mt, "Portland", got.Tasker.City)
		assert.Equal(mt, 35.5, got.Tasker.HourlyRate)

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		assert.Equal(mt, "aggregate", evt.CommandName)
		match := evt.Command.Lookup("pipeline", "0", "$match")
		assert.Equal(mt, "Cleaning", match.Document().Lookup("category").StringValue())
		assert.Equal(mt, models.ServiceStatusActive, match.Document().Lookup("status").StringValue())
	})

	mt.Run("no matches", func(mt *mtest.T) {
		repo := &MongoServiceRepo{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, servicesNS, mtest.FirstBatch))

		listings, err := repo.ListPublic(context.Background(), models.PublicServiceFilter{})
		require.NoError(mt, err)
		assert.NotNil(mt, listings)
		assert.Empty(mt, listings)
	})
}

func TestMongoServiceUpdateVersioned(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("applied", func(mt *mtest.T) {
		repo := &MongoServiceRepo{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))

		require.NoError(mt, repo.UpdateVersioned(context.Background(), "s1", 2, bson.M{"title": "New"}))
	})

	mt.Run("stale version", func(mt *mtest.T) {
		repo := &MongoServiceRepo{coll: mt.Coll}
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
			mtest.CreateCursorResponse(0, servicesNS, mtest.FirstBatch, bson.D{{Key: "_id", Value: 1}, {Key: "n", Value: int64(1)}}),
		)

		err := repo.UpdateVersioned(context.Background(), "s1", 1, bson.M{"title": "New"})
		assert.ErrorIs(mt, err, repository.ErrVersionConflict)
	})

	mt.Run("missing", func(mt *mtest.T) {
		repo := &MongoServiceRepo{coll: mt.Coll}
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
			mtest.CreateCursorResponse(0, servicesNS, mtest.FirstBatch),
		)

		err := repo.UpdateVersioned(context.Background(), "gone", 1, bson.M{"title": "New"})
		assert.ErrorIs(mt, err, repository.ErrNotFound)
	})
}

func TestMongoServiceGetByIDNotFound(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("empty cursor", func(mt *mtest.T) {
		repo := &MongoServiceRepo{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, servicesNS, mtest.FirstBatch))

		_, err := repo.GetByID(context.Background(), "missing")
		assert.ErrorIs(mt, err, repository.ErrNotFound)
	})
}
