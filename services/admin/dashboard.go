package admin

import (
	"context"
	"time"

	"taskhive/models"
	"taskhive/utils"

	"go.uber.org/zap"
)

const (
	recentWindow = 30 * 24 * time.Hour
	trendMonths  = 12
)

// Dashboard gathers platform totals, 30-day activity and a monthly trend.
func (s *DefaultAdminService) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	now := s.Now().UTC()
	since := now.Add(-recentWindow)
	trendStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(trendMonths - 1), 0)

	var d models.Dashboard
	var err error
	steps := []struct {
		name string
		run  func() error
	}{
		{"users", func() (e error) { d.Totals.Users, e = s.Users.Count(ctx, "", time.Time{}); return }},
		{"taskers", func() (e error) { d.Totals.Taskers, e = s.Taskers.Count(ctx, "", time.Time{}); return }},
		{"services", func() (e error) { d.Totals.Services, e = s.Services.Count(ctx, "", ""); return }},
		{"bookings", func() (e error) { d.Totals.Bookings, e = s.Bookings.Count(ctx, time.Time{}); return }},
		{"pendingTaskers", func() (e error) {
			d.Totals.PendingTaskers, e = s.Taskers.Count(ctx, models.TaskerStatusPending, time.Time{})
			return
		}},
		{"pendingServices", func() (e error) {
			d.Totals.PendingReview, e = s.Services.Count(ctx, models.ServiceStatePending, "")
			return
		}},
		{"recentUsers", func() (e error) { d.Last30Days.Users, e = s.Users.Count(ctx, "", since); return }},
		{"recentTaskers", func() (e error) { d.Last30Days.Taskers, e = s.Taskers.Count(ctx, "", since); return }},
		{"recentBookings", func() (e error) { d.Last30Days.Bookings, e = s.Bookings.Count(ctx, since); return }},
		{"bookingStats", func() (e error) { d.BookingStats, e = s.Bookings.Stats(ctx); return }},
		{"monthlyTrend", func() (e error) { d.MonthlyTrend, e = s.Bookings.MonthlyTrend(ctx, trendStart); return }},
	}
	for _, step := range steps {
		if err = step.run(); err != nil {
			s.Logger.Error("Dashboard: query failed", zap.String("step", step.name), zap.Error(err))
			return nil, utils.ErrServer(err)
		}
	}
	d.MonthlyTrend = fillMonths(d.MonthlyTrend, trendStart, trendMonths)
	return &d, nil
}

// fillMonths returns one entry per month from start, zero-filling gaps.
func fillMonths(trend []models.MonthlyTrend, start time.Time, months int) []models.MonthlyTrend {
	byMonth := make(map[[2]int]models.MonthlyTrend, len(trend))
	for _, m := range trend {
		byMonth[[2]int{m.Year, m.Month}] = m
	}
	out := make([]models.MonthlyTrend, 0, months)
	for i := 0; i < months; i++ {
		t := start.AddDate(0, i, 0)
		key := [2]int{t.Year(), int(t.Month())}
		m, ok := byMonth[key]
		if !ok {
			m = models.MonthlyTrend{Year: key[0], Month: key[1]}
		}
		out = append(out, m)
	}
	return out
}
