package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"taskhive/database/repository"
	"taskhive/models"
	"taskhive/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateBooking records a new pending request against a service. A signed-in
// customer books for themselves; anonymous callers must name the user.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, actor *models.Identity, req models.CreateBookingRequest) (*models.BookingView, bool, error) {
	if actor != nil && (!actor.IsAdmin() || strings.TrimSpace(req.UserID) == "") {
		req.UserID = actor.UserID
	}
	req.UserID = strings.TrimSpace(req.UserID)
	req.ServiceID = strings.TrimSpace(req.ServiceID)

	required := map[string]string{
		"customerPhone":      req.CustomerPhone,
		"serviceDescription": req.ServiceDescription,
		"serviceLocation":    req.ServiceLocation,
		"preferredDate":      req.PreferredDate,
		"serviceId":          req.ServiceID,
		"userId":             req.UserID,
	}
	missing := map[string]bool{}
	for field, v := range required {
		if strings.TrimSpace(v) == "" {
			missing[field] = true
		}
	}
	if len(missing) > 0 {
		return nil, false, utils.ErrValidation("Missing required fields").WithDetail("missingFields", missing)
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, false, err
	}
	if _, err := uuid.Parse(req.ServiceID); err != nil {
		return nil, false, utils.ErrValidation("Invalid serviceId").WithDetail("fields", map[string]string{"serviceId": "must be a valid identifier"})
	}
	if _, err := uuid.Parse(req.UserID); err != nil {
		return nil, false, utils.ErrValidation("Invalid userId").WithDetail("fields", map[string]string{"userId": "must be a valid identifier"})
	}

	if req.IdempotencyKey != "" {
		if prior, found, err := s.replay(ctx, actor, req.UserID, req.IdempotencyKey); err != nil || found {
			return prior, false, err
		}
	}

	now := s.Now()
	preferred, ok := parseDate(req.PreferredDate, now.Location())
	if !ok {
		return nil, false, utils.ErrInvalidDate("preferredDate is not a valid date")
	}
	if preferred.Before(startOfDay(now)) {
		return nil, false, utils.ErrInvalidDate("preferredDate cannot be in the past")
	}

	customer, err := s.UserRepo.GetByID(ctx, req.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, false, utils.ErrNotFound("User")
	}
	if err != nil {
		s.Logger.Error("CreateBooking: user lookup failed", zap.Error(err))
		return nil, false, utils.ErrServer(err)
	}
	svc, err := s.ServiceRepo.GetByID(ctx, req.ServiceID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, false, utils.ErrNotFound("Service")
	}
	if err != nil {
		s.Logger.Error("CreateBooking: service lookup failed", zap.Error(err))
		return nil, false, utils.ErrServer(err)
	}

	b := &models.Booking{
		ID:                 uuid.NewString(),
		UserID:             customer.ID,
		ServiceID:          svc.ID,
		CustomerName:       firstNonEmpty(req.CustomerName, customer.Name),
		CustomerEmail:      strings.ToLower(firstNonEmpty(req.CustomerEmail, customer.Email)),
		CustomerPhone:      strings.TrimSpace(req.CustomerPhone),
		ServiceDescription: strings.TrimSpace(req.ServiceDescription),
		ServiceLocation:    strings.TrimSpace(req.ServiceLocation),
		PreferredDate:      preferred.UTC(),
		Status:             models.BookingPending,
		Priority:           models.PriorityMedium,
		PaymentStatus:      models.PaymentUnpaid,
		IdempotencyKey:     req.IdempotencyKey,
	}
	if cost, ok := numericPrice(svc.Price); ok {
		b.EstimatedCost = &cost
	}

	if err := s.Repo.Create(ctx, b); err != nil {
		if errors.Is(err, repository.ErrDuplicate) && req.IdempotencyKey != "" {
			if prior, found, replayErr := s.replay(ctx, actor, b.UserID, req.IdempotencyKey); replayErr != nil || found {
				return prior, false, replayErr
			}
		}
		s.Logger.Error("CreateBooking: insert failed", zap.Error(err))
		return nil, false, utils.ErrServer(err)
	}
	s.Logger.Info("Booking created", zap.String("bookingId", b.ID), zap.String("serviceId", svc.ID), zap.String("userId", customer.ID))

	if s.Scheduler != nil {
		if err := s.Scheduler.ScheduleBookingReminder(ctx, b); err != nil {
			s.Logger.Warn("CreateBooking: reminder not scheduled", zap.String("bookingId", b.ID), zap.Error(err))
		}
	}
	s.notify(ctx, s.taskerUserID(ctx, svc.ID), "New booking request",
		fmt.Sprintf("%s requested %s on %s.", b.CustomerName, svc.Title, b.PreferredDate.Format("Mon Jan 2")),
		map[string]string{"bookingId": b.ID, "type": "booking_created"})

	return s.view(ctx, b), true, nil
}

// replay returns the booking a customer already submitted under key. Only
// that customer, signed in, or an admin may see it again; anyone else reusing
// the key gets a Conflict.
func (s *DefaultBookingService) replay(ctx context.Context, actor *models.Identity, userID, key string) (*models.BookingView, bool, error) {
	prior, err := s.Repo.GetByIdempotencyKey(ctx, userID, key)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		s.Logger.Error("CreateBooking: idempotency lookup failed", zap.Error(err))
		return nil, false, utils.ErrServer(err)
	}
	if actor == nil || (!actor.IsAdmin() && actor.UserID != prior.UserID) {
		return nil, false, utils.ErrConflict("Idempotency-Key has already been used")
	}
	return s.view(ctx, prior), true, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
