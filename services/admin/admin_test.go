package admin

import (
	"context"
	"testing"
	"time"

	"taskhive/database/repository/memory"
	"taskhive/models"
	"taskhive/services/tasker"
	"taskhive/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*DefaultAdminService, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	profiles := tasker.NewDefaultTaskerService(store.Taskers(), store.Users(), nil, zap.NewNop())
	svc := NewDefaultAdminService(store.Users(), store.Taskers(), store.Services(), store.Bookings(), profiles, zap.NewNop())
	svc.Now = func() time.Time { return fixedNow }
	return svc, store
}

func addUser(t *testing.T, store *memory.Store, name, role string) *models.User {
	t.Helper()
	u := &models.User{ID: uuid.NewString(), Name: name, Email: name + "@example.com", PasswordHash: "x", Role: role, Status: models.UserStatusActive}
	require.NoError(t, store.Users().Create(context.Background(), u))
	return u
}

func addTasker(t *testing.T, store *memory.Store, userID, status string) *models.Tasker {
	t.Helper()
	tk := &models.Tasker{ID: uuid.NewString(), UserID: userID, Category: "Cleaning", Skills: []string{}, Status: status}
	require.NoError(t, store.Taskers().Create(context.Background(), tk))
	return tk
}

func addBooking(t *testing.T, store *memory.Store, status string, actual *float64) {
	t.Helper()
	require.NoError(t, store.Bookings().Create(context.Background(), &models.Booking{
		ID: uuid.NewString(), UserID: uuid.NewString(), ServiceID: uuid.NewString(),
		PreferredDate: fixedNow, Status: status, Priority: models.PriorityMedium,
		PaymentStatus: models.PaymentUnpaid, ActualCost: actual,
	}))
}

func TestDashboard(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	cost := 120.0

	store.SetClock(func() time.Time { return fixedNow.AddDate(0, -3, 0) })
	old := addUser(t, store, "olivia", models.RoleTasker)
	addTasker(t, store, old.ID, models.TaskerStatusApproved)
	addBooking(t, store, models.BookingCompleted, &cost)

	store.SetClock(func() time.Time { return fixedNow.Add(-time.Hour) })
	fresh := addUser(t, store, "fred", models.RoleTasker)
	addUser(t, store, "cathy", models.RoleUser)
	addTasker(t, store, fresh.ID, models.TaskerStatusPending)
	addBooking(t, store, models.BookingPending, nil)
	addBooking(t, store, models.BookingCompleted, &cost)
	require.NoError(t, store.Services().Create(ctx, &models.Service{ID: uuid.NewString(), Tags: []string{}, State: models.ServiceStatePending, Status: models.ServiceStatusInactive}))

	d, err := svc.Dashboard(ctx)
	require.NoError(t, err)

	assert.EqualValues(t, 3, d.Totals.Users)
	assert.EqualValues(t, 2, d.Totals.Taskers)
	assert.EqualValues(t, 1, d.Totals.Services)
	assert.EqualValues(t, 3, d.Totals.Bookings)
	assert.EqualValues(t, 1, d.Totals.PendingTaskers)
	assert.EqualValues(t, 1, d.Totals.PendingReview)
	assert.Equal(t, models.DashboardRecent{Users: 2, Taskers: 1, Bookings: 2}, d.Last30Days)

	require.NotNil(t, d.BookingStats)
	assert.Equal(t, 240.0, d.BookingStats.TotalRevenue)

	require.Len(t, d.MonthlyTrend, 12)
	assert.Equal(t, models.MonthlyTrend{Year: 2025, Month: 7}, d.MonthlyTrend[0])
	last := d.MonthlyTrend[11]
	assert.Equal(t, 2026, last.Year)
	assert.Equal(t, 6, last.Month)
	assert.EqualValues(t, 2, last.Bookings)
	assert.Equal(t, 120.0, last.Revenue)
	march := d.MonthlyTrend[8]
	assert.Equal(t, 3, march.Month)
	assert.EqualValues(t, 1, march.Bookings)
}

func TestApprovalQueueAndReview(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	a := addUser(t, store, "ann", models.RoleTasker)
	b := addUser(t, store, "bob", models.RoleTasker)
	pending := addTasker(t, store, a.ID, models.TaskerStatusPending)
	addTasker(t, store, b.ID, models.TaskerStatusApproved)

	queue, err := svc.ApprovalQueue(ctx, models.TaskerSearch{Status: models.TaskerStatusApproved, Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, queue.Items, 1)
	assert.Equal(t, pending.ID, queue.Items[0].ID)

	rejected, err := svc.RejectTasker(ctx, "admin-1", pending.ID, "missing insurance")
	require.NoError(t, err)
	assert.Equal(t, models.TaskerStatusRejected, rejected.Status)
	assert.Equal(t, "missing insurance", rejected.ReviewNotes)

	approved, err := svc.ApproveTasker(ctx, "admin-1", pending.ID, "")
	require.NoError(t, err)
	assert.Equal(t, models.TaskerStatusApproved, approved.Status)

	queue, err = svc.ApprovalQueue(ctx, models.TaskerSearch{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, queue.Items)

	all, err := svc.ListTaskers(ctx, models.TaskerSearch{Search: "ann", Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, all.Total)
}

func TestListUsersSearch(t *testing.T) {
	svc, store := newTestService(t)
	addUser(t, store, "maria", models.RoleUser)
	addUser(t, store, "mark", models.RoleTasker)
	addUser(t, store, "zoe", models.RoleUser)

	page, err := svc.ListUsers(context.Background(), models.UserSearch{Search: "MAR", Page: 1, Limit: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Items, 1)
}

func TestSuspendActivateDeleteUser(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	admin := addUser(t, store, "root", models.RoleAdmin)
	target := addUser(t, store, "tess", models.RoleTasker)
	addTasker(t, store, target.ID, models.TaskerStatusApproved)

	_, err := svc.SuspendUser(ctx, admin.ID, admin.ID)
	assert.True(t, utils.IsKind(err, utils.KindForbidden))

	u, err := svc.SuspendUser(ctx, admin.ID, target.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusSuspended, u.Status)

	u, err = svc.ActivateUser(ctx, admin.ID, target.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusActive, u.Status)

	_, err = svc.SuspendUser(ctx, admin.ID, uuid.NewString())
	assert.True(t, utils.IsKind(err, utils.KindNotFound))

	assert.True(t, utils.IsKind(svc.DeleteUser(ctx, admin.ID, admin.ID), utils.KindForbidden))
	require.NoError(t, svc.DeleteUser(ctx, admin.ID, target.ID))

	exists, err := store.Taskers().ExistsForUser(ctx, target.ID)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.True(t, utils.IsKind(svc.DeleteUser(ctx, admin.ID, target.ID), utils.KindNotFound))
}
