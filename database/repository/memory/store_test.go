package memory

import (
	"context"
	"testing"
	"time"

	"taskhive/database/repository"
	"taskhive/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestUserEmailIsUnique(t *testing.T) {
	users := NewStore().Users()
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, &models.User{ID: "u1", Email: "A@x.test"}))
	err := users.Create(ctx, &models.User{ID: "u2", Email: "a@x.test"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	got, err := users.GetByEmail(ctx, " a@X.test ")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ID)
}

func TestServiceVersionedUpdate(t *testing.T) {
	services := NewStore().Services()
	ctx := context.Background()
	require.NoError(t, services.Create(ctx, &models.Service{ID: "s1", Title: "Old"}))

	require.NoError(t, services.UpdateVersioned(ctx, "s1", 0, bson.M{"title": "New", "reviewedAt": nil}))
	got, err := services.GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "New", got.Title)
	assert.Equal(t, int64(1), got.Version)

	err = services.UpdateVersioned(ctx, "s1", 0, bson.M{"title": "Stale"})
	assert.ErrorIs(t, err, repository.ErrVersionConflict)

	err = services.UpdateVersioned(ctx, "missing", 0, bson.M{"title": "x"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestBookingIdempotencyKeyIsUniquePerCustomer(t *testing.T) {
	bookings := NewStore().Bookings()
	ctx := context.Background()

	require.NoError(t, bookings.Create(ctx, &models.Booking{ID: "b1", UserID: "u1", IdempotencyKey: "k"}))
	assert.ErrorIs(t, bookings.Create(ctx, &models.Booking{ID: "b2", UserID: "u1", IdempotencyKey: "k"}), repository.ErrDuplicate)
	require.NoError(t, bookings.Create(ctx, &models.Booking{ID: "b3", UserID: "u2", IdempotencyKey: "k"}))
	require.NoError(t, bookings.Create(ctx, &models.Booking{ID: "b4", UserID: "u1"}))
	require.NoError(t, bookings.Create(ctx, &models.Booking{ID: "b5", UserID: "u1"}))

	got, err := bookings.GetByIdempotencyKey(ctx, "u1", "k")
	require.NoError(t, err)
	assert.Equal(t, "b1", got.ID)

	got, err = bookings.GetByIdempotencyKey(ctx, "u2", "k")
	require.NoError(t, err)
	assert.Equal(t, "b3", got.ID)

	_, err = bookings.GetByIdempotencyKey(ctx, "u3", "k")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRatingsAndStats(t *testing.T) {
	store := NewStore()
	bookings := store.Bookings()
	ctx := context.Background()
	five, four := 5, 4
	cost := 120.0

	require.NoError(t, bookings.Create(ctx, &models.Booking{ID: "b1", ServiceID: "s1", Status: models.BookingCompleted, Priority: "medium", CustomerRating: &five, ActualCost: &cost}))
	require.NoError(t, bookings.Create(ctx, &models.Booking{ID: "b2", ServiceID: "s1", Status: models.BookingCompleted, Priority: "medium", CustomerRating: &four}))
	require.NoError(t, bookings.Create(ctx, &models.Booking{ID: "b3", ServiceID: "s1", Status: models.BookingPending, Priority: "high"}))
	require.NoError(t, bookings.Create(ctx, &models.Booking{ID: "b4", ServiceID: "s2", Status: models.BookingCompleted, Priority: "medium"}))

	ratings, err := bookings.RatingsByService(ctx, []string{"s1", "s2", "s3"})
	require.NoError(t, err)
	assert.Equal(t, 4.5, ratings["s1"].Rating)
	assert.Equal(t, 2, ratings["s1"].JobsCompleted)
	assert.Equal(t, 0.0, ratings["s2"].Rating)
	assert.Equal(t, 1, ratings["s2"].JobsCompleted)
	_, ok := ratings["s3"]
	assert.False(t, ok)

	stats, err := bookings.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.Total)
	assert.Equal(t, int64(3), stats.ByStatus[models.BookingCompleted])
	assert.Equal(t, int64(1), stats.ByPriority["high"])
	assert.Equal(t, 4.5, stats.AverageRating)
	assert.Equal(t, 120.0, stats.TotalRevenue)
}

func TestListPublicSearchesTaskerFields(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	require.NoError(t, store.Users().Create(ctx, &models.User{ID: "u1", Name: "Jane Sparkle", Email: "j@x.test"}))
	require.NoError(t, store.Taskers().Create(ctx, &models.Tasker{ID: "t1", UserID: "u1", City: "Nairobi"}))
	require.NoError(t, store.Services().Create(ctx, &models.Service{
		ID: "s1", TaskerID: "t1", Title: "Deep clean", Tags: []string{"kitchen"},
		Status: models.ServiceStatusActive, State: models.ServiceStateApproved, Category: "Cleaning",
	}))
	require.NoError(t, store.Services().Create(ctx, &models.Service{
		ID: "s2", TaskerID: "t1", Title: "Hidden", Status: models.ServiceStatusInactive, State: models.ServiceStateApproved,
	}))

	for _, term := range []string{"nairobi", "SPARKLE", "kitch", "deep"} {
		got, err := store.Services().ListPublic(ctx, models.PublicServiceFilter{Search: term})
		require.NoError(t, err)
		require.Len(t, got, 1, term)
		assert.Equal(t, "s1", got[0].ID)
		assert.Equal(t, "Jane Sparkle", got[0].Tasker.Name)
	}

	got, err := store.Services().ListPublic(ctx, models.PublicServiceFilter{Search: "plumbing"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMonthlyTrendBuckets(t *testing.T) {
	store := NewStore()
	clock := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	store.SetClock(func() time.Time { return clock })
	bookings := store.Bookings()
	ctx := context.Background()
	cost := 50.0

	require.NoError(t, bookings.Create(ctx, &models.Booking{ID: "b1", Status: models.BookingCompleted, ActualCost: &cost}))
	clock = time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC)
	require.NoError(t, bookings.Create(ctx, &models.Booking{ID: "b2", Status: models.BookingPending}))
	require.NoError(t, bookings.Create(ctx, &models.Booking{ID: "b3", Status: models.BookingCompleted, ActualCost: &cost}))

	trend, err := bookings.MonthlyTrend(ctx, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, trend, 2)
	assert.Equal(t, models.MonthlyTrend{Year: 2026, Month: 1, Bookings: 1, Revenue: 50}, trend[0])
	assert.Equal(t, models.MonthlyTrend{Year: 2026, Month: 2, Bookings: 2, Revenue: 50}, trend[1])
}
