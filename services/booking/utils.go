package booking

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"taskhive/database/repository"
	"taskhive/models"
	"taskhive/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

// parseDate accepts RFC3339 timestamps and bare dates; bare values are read
// in loc.
func parseDate(raw string, loc *time.Location) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// numericPrice extracts a cost from a free-form price such as "80" or "$1,200.50".
func numericPrice(price string) (float64, bool) {
	p := strings.TrimSpace(price)
	p = strings.TrimLeft(p, "$€£")
	p = strings.ReplaceAll(p, ",", "")
	v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

func (s *DefaultBookingService) getBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(ctx, bookingID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, utils.ErrNotFound("Booking")
	}
	if err != nil {
		s.Logger.Error("getBooking: lookup failed", zap.String("bookingId", bookingID), zap.Error(err))
		return nil, utils.ErrServer(err)
	}
	return b, nil
}

// taskerUserID resolves the account that owns a service; empty when the
// chain no longer resolves.
func (s *DefaultBookingService) taskerUserID(ctx context.Context, serviceID string) string {
	svc, err := s.ServiceRepo.GetByID(ctx, serviceID)
	if err != nil {
		return ""
	}
	t, err := s.TaskerRepo.GetByID(ctx, svc.TaskerID)
	if err != nil {
		return ""
	}
	return t.UserID
}

func (s *DefaultBookingService) canManage(ctx context.Context, actor models.Identity, b *models.Booking) bool {
	if actor.IsAdmin() {
		return true
	}
	owner := s.taskerUserID(ctx, b.ServiceID)
	return owner != "" && owner == actor.UserID
}

func (s *DefaultBookingService) canView(ctx context.Context, actor models.Identity, b *models.Booking) bool {
	return b.UserID == actor.UserID || s.canManage(ctx, actor, b)
}

// views attaches service summaries. A failed or missing lookup leaves the
// summary nil rather than failing the listing.
func (s *DefaultBookingService) views(ctx context.Context, bookings []models.Booking) []models.BookingView {
	ids := make([]string, 0, len(bookings))
	seen := map[string]bool{}
	for _, b := range bookings {
		if !seen[b.ServiceID] {
			seen[b.ServiceID] = true
			ids = append(ids, b.ServiceID)
		}
	}

	summaries := map[string]*models.BookingService{}
	if len(ids) > 0 {
		services, err := s.ServiceRepo.GetByIDs(ctx, ids)
		if err != nil {
			s.Logger.Warn("views: service lookup failed", zap.Error(err))
		}
		for _, svc := range services {
			summaries[svc.ID] = &models.BookingService{
				ID:       svc.ID,
				Title:    svc.Title,
				Category: svc.Category,
				Price:    svc.Price,
				TaskerID: svc.TaskerID,
			}
		}
	}

	out := make([]models.BookingView, len(bookings))
	for i, b := range bookings {
		out[i] = models.BookingView{Booking: b, Service: summaries[b.ServiceID]}
	}
	return out
}

func (s *DefaultBookingService) view(ctx context.Context, b *models.Booking) *models.BookingView {
	v := s.views(ctx, []models.Booking{*b})[0]
	return &v
}

func (s *DefaultBookingService) notify(ctx context.Context, userID, title, body string, data map[string]string) {
	if userID == "" {
		return
	}
	if err := s.Notifier.SendUserPushNotification(ctx, userID, title, body, data); err != nil {
		s.Logger.Warn("notify: push failed", zap.String("userId", userID), zap.Error(err))
	}
}

// update performs a versioned write and reloads the booking.
func (s *DefaultBookingService) update(ctx context.Context, b *models.Booking, set bson.M) (*models.Booking, error) {
	err := s.Repo.UpdateVersioned(ctx, b.ID, b.Version, set)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, utils.ErrNotFound("Booking")
	case errors.Is(err, repository.ErrVersionConflict):
		return nil, utils.ErrConflict("Booking was modified by another request; reload and retry")
	case err != nil:
		s.Logger.Error("update: write failed", zap.String("bookingId", b.ID), zap.Error(err))
		return nil, utils.ErrServer(err)
	}
	return s.getBooking(ctx, b.ID)
}
