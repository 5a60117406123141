package bookingRepo

import (
	"context"
	"testing"

	"taskhive/database/repository"
	"taskhive/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

const bookingsNS = "taskhive.bookings"

func TestMongoStatsDecodesFacet(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("populated", func(mt *mtest.T) {
		repo := &MongoBookingRepo{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, bookingsNS, mtest.FirstBatch, bson.D{
			{Key: "total", Value: bson.A{bson.D{{Key: "count", Value: int32(5)}}}},
			{Key: "byStatus", Value: bson.A{
				bson.D{{Key: "_id", Value: models.BookingCompleted}, {Key: "count", Value: int32(3)}},
				bson.D{{Key: "_id", Value: models.BookingPending}, {Key: "count", Value: int32(2)}},
			}},
			{Key: "byPriority", Value: bson.A{
				bson.D{{Key: "_id", Value: "normal"}, {Key: "count", Value: int64(5)}},
			}},
			{Key: "rating", Value: bson.A{
				bson.D{{Key: "_id", Value: nil}, {Key: "average", Value: 4.5}, {Key: "count", Value: int32(2)}},
			}},
			{Key: "revenue", Value: bson.A{
				bson.D{{Key: "_id", Value: nil}, {Key: "total", Value: 240.0}},
			}},
		}))

		stats, err := repo.Stats(context.Background())
		require.NoError(mt, err)
		assert.EqualValues(mt, 5, stats.Total)
		assert.Equal(mt, map[string]int64{models.BookingCompleted: 3, models.BookingPending: 2}, stats.ByStatus)
		assert.Equal(mt, map[string]int64{"normal": 5}, stats.ByPriority)
		assert.Equal(mt, 4.5, stats.AverageRating)
		assert.EqualValues(mt, 2, stats.RatedCount)
		assert.Equal(mt, 240.0, stats.TotalRevenue)
	})

	mt.Run("empty collection", func(mt *mtest.T) {
		repo := &MongoBookingRepo{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, bookingsNS, mtest.FirstBatch, bson.D{
			{Key: "total", Value: bson.A{}},
			{Key: "byStatus", Value: bson.A{}},
			{Key: "byPriority", Value: bson.A{}},
			{Key: "rating", Value: bson.A{}},
			{Key: "revenue", Value: bson.A{}},
		}))

		stats, err := repo.Stats(context.Background())
		require.NoError(mt, err)
		assert.Zero(mt, stats.Total)
		assert.NotNil(mt, stats.ByStatus)
		assert.Empty(mt, stats.ByStatus)
		assert.Zero(mt, stats.AverageRating)
		assert.Zero(mt, stats.TotalRevenue)
	})
}

func TestMongoCountByStatus(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("buckets", func(mt *mtest.T) {
		repo := &MongoBookingRepo{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, bookingsNS, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: models.BookingPending}, {Key: "count", Value: int32(4)}},
			bson.D{{Key: "_id", Value: models.BookingCancelled}, {Key: "count", Value: int32(1)}},
		))

		counts, err := repo.CountByStatus(context.Background(), models.BookingFilter{UserID: "u1", Status: models.BookingPending})
		require.NoError(mt, err)
		assert.Equal(mt, map[string]int64{models.BookingPending: 4, models.BookingCancelled: 1}, counts)

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		match := evt.Command.Lookup("pipeline", "0", "$match").Document()
		assert.Equal(mt, "u1", match.Lookup("userId").StringValue())
		_, err = match.LookupErr("status")
		assert.Error(mt, err, "status filter is ignored when counting by status")
	})
}

func TestMongoCreateDuplicateIdempotencyKey(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("duplicate key", func(mt *mtest.T) {
		repo := &MongoBookingRepo{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: taskhive.bookings index: userId_1_idempotencyKey_1",
		}))

		err := repo.Create(context.Background(), &models.Booking{ID: "b2", UserID: "u1", IdempotencyKey: "k-1"})
		assert.ErrorIs(mt, err, repository.ErrDuplicate)
	})

	mt.Run("lookup is scoped to the customer", func(mt *mtest.T) {
		repo := &MongoBookingRepo{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, bookingsNS, mtest.FirstBatch, bson.D{
			{Key: "id", Value: "b1"},
			{Key: "userId", Value: "u1"},
			{Key: "idempotencyKey", Value: "k-1"},
			{Key: "status", Value: models.BookingPending},
		}))

		b, err := repo.GetByIdempotencyKey(context.Background(), "u1", "k-1")
		require.NoError(mt, err)
		assert.Equal(mt, "b1", b.ID)

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		filter := evt.Command.Lookup("filter").Document()
		assert.Equal(mt, "u1", filter.Lookup("userId").StringValue())
		assert.Equal(mt, "k-1", filter.Lookup("idempotencyKey").StringValue())
	})
}
