package booking

import (
	"context"
	"errors"
	"strings"

	"taskhive/database/repository"
	"taskhive/models"
	"taskhive/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *DefaultBookingService) GetBooking(ctx context.Context, actor models.Identity, bookingID string) (*models.BookingView, error) {
	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !s.canView(ctx, actor, b) {
		return nil, utils.ErrForbidden("You cannot view this booking")
	}
	return s.view(ctx, b), nil
}

// ListByTasker pages bookings made against any service the tasker owns.
func (s *DefaultBookingService) ListByTasker(ctx context.Context, actor models.Identity, taskerID string, filter models.BookingFilter) (*models.BookingPage, error) {
	t, err := s.TaskerRepo.GetByID(ctx, taskerID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, utils.ErrNotFound("Tasker")
	}
	if err != nil {
		s.Logger.Error("ListByTasker: tasker lookup failed", zap.String("taskerId", taskerID), zap.Error(err))
		return nil, utils.ErrServer(err)
	}
	if !actor.IsAdmin() && t.UserID != actor.UserID {
		return nil, utils.ErrForbidden("You cannot view these bookings")
	}

	ids, err := s.ServiceRepo.IDsByTasker(ctx, taskerID)
	if err != nil {
		s.Logger.Error("ListByTasker: service ids failed", zap.String("taskerId", taskerID), zap.Error(err))
		return nil, utils.ErrServer(err)
	}
	if ids == nil {
		ids = []string{}
	}
	filter.ServiceIDs = ids
	filter.UserID = ""
	return s.list(ctx, filter)
}

// ListByCustomer accepts either a user id or an email address.
func (s *DefaultBookingService) ListByCustomer(ctx context.Context, actor models.Identity, identifier string, filter models.BookingFilter) (*models.BookingPage, error) {
	identifier = strings.TrimSpace(identifier)
	userID := identifier
	if strings.Contains(identifier, "@") {
		u, err := s.UserRepo.GetByEmail(ctx, identifier)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.ErrNotFound("User")
		}
		if err != nil {
			s.Logger.Error("ListByCustomer: user lookup failed", zap.Error(err))
			return nil, utils.ErrServer(err)
		}
		userID = u.ID
	} else if _, err := uuid.Parse(identifier); err != nil {
		return nil, utils.ErrValidation("Identifier must be a user id or an email address")
	}

	if !actor.IsAdmin() && actor.UserID != userID {
		return nil, utils.ErrForbidden("You can only view your own bookings")
	}
	filter.ServiceIDs = nil
	filter.UserID = userID
	return s.list(ctx, filter)
}

func (s *DefaultBookingService) ListAll(ctx context.Context, filter models.BookingFilter) (*models.BookingPage, error) {
	return s.list(ctx, filter)
}

func (s *DefaultBookingService) list(ctx context.Context, filter models.BookingFilter) (*models.BookingPage, error) {
	if filter.Status != "" && !models.IsBookingStatus(filter.Status) {
		return nil, utils.ErrValidation("Unknown booking status")
	}
	items, total, err := s.Repo.List(ctx, filter)
	if err != nil {
		s.Logger.Error("list: query failed", zap.Error(err))
		return nil, utils.ErrServer(err)
	}
	counts, err := s.Repo.CountByStatus(ctx, filter)
	if err != nil {
		s.Logger.Error("list: status counts failed", zap.Error(err))
		return nil, utils.ErrServer(err)
	}
	for _, status := range models.BookingStatuses {
		if _, ok := counts[status]; !ok {
			counts[status] = 0
		}
	}
	return &models.BookingPage{
		Page:         models.NewPage(s.views(ctx, items), total, filter.Page, filter.Limit),
		StatusCounts: counts,
	}, nil
}

func (s *DefaultBookingService) Stats(ctx context.Context) (*models.BookingStats, error) {
	stats, err := s.Repo.Stats(ctx)
	if err != nil {
		s.Logger.Error("Stats: aggregation failed", zap.Error(err))
		return nil, utils.ErrServer(err)
	}
	return stats, nil
}
