package bookingRepo

import (
	"context"
	"time"

	"taskhive/models"

	"go.mongodb.org/mongo-driver/bson"
)

// BookingRepository defines persistence and reporting over bookings.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// GetByIdempotencyKey finds the booking a customer submitted under key.
	GetByIdempotencyKey(ctx context.Context, userID, key string) (*models.Booking, error)
	UpdateVersioned(ctx context.Context, id string, expectedVersion int64, set bson.M) error
	List(ctx context.Context, filter models.BookingFilter) ([]models.Booking, int64, error)
	CountByStatus(ctx context.Context, filter models.BookingFilter) (map[string]int64, error)
	Stats(ctx context.Context) (*models.BookingStats, error)
	RatingsByService(ctx context.Context, serviceIDs []string) (map[string]models.ServiceRating, error)
	MonthlyTrend(ctx context.Context, since time.Time) ([]models.MonthlyTrend, error)
	Count(ctx context.Context, since time.Time) (int64, error)
}
