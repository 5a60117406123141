package memory

import (
	"context"
	"math"
	"sort"
	"time"

	"taskhive/database/repository"
	"taskhive/models"

	"go.mongodb.org/mongo-driver/bson"
)

// BookingRepo implements bookingRepo.BookingRepository in memory.
type BookingRepo struct{ s *Store }

func (r *BookingRepo) Create(_ context.Context, b *models.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.bookings {
		if existing.ID == b.ID || (b.IdempotencyKey != "" && existing.UserID == b.UserID && existing.IdempotencyKey == b.IdempotencyKey) {
			return repository.ErrDuplicate
		}
	}
	now := r.s.stamp()
	b.CreatedAt, b.UpdatedAt = now, now
	r.s.bookings[b.ID] = *b
	return nil
}

func (r *BookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	b, ok := r.s.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &b, nil
}

func (r *BookingRepo) GetByIdempotencyKey(_ context.Context, userID, key string) (*models.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, b := range r.s.bookings {
		if key != "" && b.UserID == userID && b.IdempotencyKey == key {
			return &b, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *BookingRepo) UpdateVersioned(_ context.Context, id string, expectedVersion int64, set bson.M) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bookings[id]
	if !ok {
		return repository.ErrNotFound
	}
	if b.Version != expectedVersion {
		return repository.ErrVersionConflict
	}
	set["updatedAt"] = r.s.now()
	set["version"] = b.Version + 1
	if err := applySet(&b, set); err != nil {
		return err
	}
	r.s.bookings[id] = b
	return nil
}

func matches(b models.Booking, f models.BookingFilter, withStatus bool) bool {
	if f.ServiceIDs != nil {
		found := false
		for _, id := range f.ServiceIDs {
			if id == b.ServiceID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.UserID != "" && b.UserID != f.UserID {
		return false
	}
	if withStatus && f.Status != "" && b.Status != f.Status {
		return false
	}
	if f.Priority != "" && b.Priority != f.Priority {
		return false
	}
	if f.Search != "" && !anyContains(f.Search, b.CustomerName, b.CustomerEmail, b.CustomerPhone, b.ServiceDescription, b.ServiceLocation) {
		return false
	}
	return true
}

func (r *BookingRepo) List(_ context.Context, f models.BookingFilter) ([]models.Booking, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	matched := []models.Booking{}
	for _, b := range r.s.bookings {
		if matches(b, f, true) {
			matched = append(matched, b)
		}
	}
	sortNewestFirst(matched, func(b models.Booking) time.Time { return b.CreatedAt })
	return page(matched, f.Page, f.Limit), int64(len(matched)), nil
}

func (r *BookingRepo) CountByStatus(_ context.Context, f models.BookingFilter) (map[string]int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	counts := map[string]int64{}
	for _, b := range r.s.bookings {
		if matches(b, f, false) {
			counts[b.Status]++
		}
	}
	return counts, nil
}

func (r *BookingRepo) Stats(_ context.Context) (*models.BookingStats, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	stats := &models.BookingStats{ByStatus: map[string]int64{}, ByPriority: map[string]int64{}}
	var ratingSum int
	for _, b := range r.s.bookings {
		stats.Total++
		stats.ByStatus[b.Status]++
		stats.ByPriority[b.Priority]++
		if b.CustomerRating != nil {
			ratingSum += *b.CustomerRating
			stats.RatedCount++
		}
		if b.Status == models.BookingCompleted && b.ActualCost != nil {
			stats.TotalRevenue += *b.ActualCost
		}
	}
	if stats.RatedCount > 0 {
		stats.AverageRating = float64(ratingSum) / float64(stats.RatedCount)
	}
	return stats, nil
}

func (r *BookingRepo) RatingsByService(_ context.Context, serviceIDs []string) (map[string]models.ServiceRating, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	wanted := make(map[string]bool, len(serviceIDs))
	for _, id := range serviceIDs {
		wanted[id] = true
	}
	type acc struct{ sum, rated, jobs int }
	accs := map[string]*acc{}
	for _, b := range r.s.bookings {
		if !wanted[b.ServiceID] || b.Status != models.BookingCompleted {
			continue
		}
		a, ok := accs[b.ServiceID]
		if !ok {
			a = &acc{}
			accs[b.ServiceID] = a
		}
		a.jobs++
		if b.CustomerRating != nil {
			a.sum += *b.CustomerRating
			a.rated++
		}
	}

	out := make(map[string]models.ServiceRating, len(accs))
	for id, a := range accs {
		rt := models.ServiceRating{ServiceID: id, JobsCompleted: a.jobs}
		if a.rated > 0 {
			rt.Rating = math.Round(float64(a.sum)/float64(a.rated)*10) / 10
		}
		out[id] = rt
	}
	return out, nil
}

func (r *BookingRepo) MonthlyTrend(_ context.Context, since time.Time) ([]models.MonthlyTrend, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	buckets := map[[2]int]*models.MonthlyTrend{}
	for _, b := range r.s.bookings {
		if b.CreatedAt.Before(since) {
			continue
		}
		key := [2]int{b.CreatedAt.Year(), int(b.CreatedAt.Month())}
		m, ok := buckets[key]
		if !ok {
			m = &models.MonthlyTrend{Year: key[0], Month: key[1]}
			buckets[key] = m
		}
		m.Bookings++
		if b.Status == models.BookingCompleted && b.ActualCost != nil {
			m.Revenue += *b.ActualCost
		}
	}
	out := make([]models.MonthlyTrend, 0, len(buckets))
	for _, m := range buckets {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out, nil
}

func (r *BookingRepo) Count(_ context.Context, since time.Time) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for _, b := range r.s.bookings {
		if since.IsZero() || !b.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}
