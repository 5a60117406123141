package booking

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"taskhive/models"
	"taskhive/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// CreatePaymentIntent starts card payment for a booking's actual cost, or
// its estimate when the job has not been priced yet.
func (s *DefaultBookingService) CreatePaymentIntent(ctx context.Context, actor models.Identity, bookingID string) (*models.PaymentIntent, error) {
	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.UserID != actor.UserID && !actor.IsAdmin() {
		return nil, utils.ErrForbidden("Only the customer can pay for this booking")
	}
	if b.Status == models.BookingCancelled {
		return nil, utils.ErrConflict("Cancelled bookings cannot be paid")
	}
	if b.PaymentStatus == models.PaymentPaid || b.PaymentStatus == models.PaymentRefunded {
		return nil, utils.ErrConflict(fmt.Sprintf("Booking payment is already %s", b.PaymentStatus))
	}

	amount := b.ActualCost
	if amount == nil {
		amount = b.EstimatedCost
	}
	if amount == nil || *amount <= 0 {
		return nil, utils.ErrConflict("Booking has no cost to pay yet")
	}
	if s.Payments == nil {
		return nil, utils.ErrServer(errors.New("payment processing is not configured"))
	}

	currency := strings.ToLower(s.Currency)
	if currency == "" {
		currency = "usd"
	}
	intent, err := s.Payments.CreateIntent(ctx, IntentRequest{
		AmountMinor:    int64(math.Round(*amount * 100)),
		Currency:       currency,
		BookingID:      b.ID,
		CustomerEmail:  b.CustomerEmail,
		IdempotencyKey: fmt.Sprintf("booking:%s:v%d", b.ID, b.Version),
	})
	if err != nil {
		s.Logger.Error("CreatePaymentIntent: gateway failed", zap.String("bookingId", b.ID), zap.Error(err))
		return nil, utils.ErrServer(err)
	}

	updated, err := s.update(ctx, b, bson.M{"paymentIntentId": intent.ID, "paymentStatus": models.PaymentProcessing})
	if err != nil {
		return nil, err
	}
	s.Logger.Info("Payment intent created", zap.String("bookingId", b.ID), zap.String("paymentIntentId", intent.ID))

	return &models.PaymentIntent{
		BookingID:       updated.ID,
		PaymentIntentID: intent.ID,
		ClientSecret:    intent.ClientSecret,
		Amount:          *amount,
		Currency:        currency,
		PaymentStatus:   updated.PaymentStatus,
	}, nil
}
