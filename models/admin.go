package models

// MonthlyTrend is one calendar month of booking activity.
type MonthlyTrend struct {
	Year     int     `bson:"year" json:"year"`
	Month    int     `bson:"month" json:"month"`
	Bookings int64   `bson:"bookings" json:"bookings"`
	Revenue  float64 `bson:"revenue" json:"revenue"`
}

type DashboardTotals struct {
	Users          int64 `json:"users"`
	Taskers        int64 `json:"taskers"`
	Services       int64 `json:"services"`
	Bookings       int64 `json:"bookings"`
	PendingTaskers int64 `json:"pendingTaskers"`
	PendingReview  int64 `json:"pendingServices"`
}

type DashboardRecent struct {
	Users    int64 `json:"users"`
	Taskers  int64 `json:"taskers"`
	Bookings int64 `json:"bookings"`
}

// Dashboard is the admin overview.
type Dashboard struct {
	Totals       DashboardTotals `json:"totals"`
	Last30Days   DashboardRecent `json:"last30Days"`
	BookingStats *BookingStats   `json:"bookingStats"`
	MonthlyTrend []MonthlyTrend  `json:"monthlyTrend"`
}

// Page is a generic paginated listing.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

func NewPage[T any](items []T, total int64, page, limit int) Page[T] {
	if items == nil {
		items = []T{}
	}
	pages := 0
	if limit > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Page[T]{Items: items, Total: total, Page: page, Limit: limit, TotalPages: pages}
}

// UploadResult describes an image stored on the media host.
type UploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

// ReminderPayload is the body of a scheduled booking reminder.
type ReminderPayload struct {
	BookingID string `json:"bookingId"`
	UserID    string `json:"userId"`
	Title     string `json:"title"`
	Body      string `json:"body"`
}

// MediaDeletePayload identifies an asset to remove from the media host.
type MediaDeletePayload struct {
	PublicID string `json:"publicId"`
}
