package models

import "time"

const (
	BookingPending    = "pending"
	BookingConfirmed  = "confirmed"
	BookingInProgress = "in-progress"
	BookingCompleted  = "completed"
	BookingCancelled  = "cancelled"

	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"

	PaymentUnpaid     = "unpaid"
	PaymentProcessing = "processing"
	PaymentPaid       = "paid"
	PaymentRefunded   = "refunded"
)

// BookingStatuses lists every booking status in lifecycle order.
var BookingStatuses = []string{BookingPending, BookingConfirmed, BookingInProgress, BookingCompleted, BookingCancelled}

// Booking is a customer's request against one service.
type Booking struct {
	ID                 string     `bson:"id" json:"id"`
	UserID             string     `bson:"userId" json:"userId"`
	ServiceID          string     `bson:"serviceId" json:"serviceId"`
	CustomerName       string     `bson:"customerName,omitempty" json:"customerName,omitempty"`
	CustomerEmail      string     `bson:"customerEmail,omitempty" json:"customerEmail,omitempty"`
	CustomerPhone      string     `bson:"customerPhone" json:"customerPhone"`
	ServiceDescription string     `bson:"serviceDescription" json:"serviceDescription"`
	ServiceLocation    string     `bson:"serviceLocation" json:"serviceLocation"`
	PreferredDate      time.Time  `bson:"preferredDate" json:"preferredDate"`
	Status             string     `bson:"status" json:"status"`
	Priority           string     `bson:"priority" json:"priority"`
	EstimatedCost      *float64   `bson:"estimatedCost,omitempty" json:"estimatedCost"`
	ActualCost         *float64   `bson:"actualCost,omitempty" json:"actualCost"`
	ScheduledDate      *time.Time `bson:"scheduledDate,omitempty" json:"scheduledDate"`
	CompletedDate      *time.Time `bson:"completedDate,omitempty" json:"completedDate"`
	PaymentStatus      string     `bson:"paymentStatus" json:"paymentStatus"`
	PaymentIntentID    string     `bson:"paymentIntentId,omitempty" json:"paymentIntentId,omitempty"`
	CustomerRating     *int       `bson:"customerRating,omitempty" json:"customerRating"`
	CustomerFeedback   string     `bson:"customerFeedback,omitempty" json:"customerFeedback,omitempty"`
	AssignedTasker     string     `bson:"assignedTasker,omitempty" json:"assignedTasker,omitempty"`
	AdminNotes         string     `bson:"adminNotes,omitempty" json:"adminNotes,omitempty"`
	IdempotencyKey     string     `bson:"idempotencyKey,omitempty" json:"-"`
	Version            int64      `bson:"version" json:"version"`
	CreatedAt          time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// BookingService is the service summary embedded in booking views.
type BookingService struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Price    string `json:"price"`
	TaskerID string `json:"taskerId"`
}

// BookingView is a booking enriched with its service, which may be nil when
// the service no longer resolves.
type BookingView struct {
	Booking
	Service *BookingService `json:"service"`
}

// CreateBookingRequest fields are plain strings so that absent values can be
// reported individually.
type CreateBookingRequest struct {
	UserID             string `json:"userId"`
	ServiceID          string `json:"serviceId"`
	CustomerName       string `json:"customerName" validate:"omitempty,max=100"`
	CustomerEmail      string `json:"customerEmail" validate:"omitempty,email"`
	CustomerPhone      string `json:"customerPhone" validate:"max=30"`
	ServiceDescription string `json:"serviceDescription" validate:"max=5000"`
	ServiceLocation    string `json:"serviceLocation" validate:"max=500"`
	PreferredDate      string `json:"preferredDate"`
	IdempotencyKey     string `json:"-"`
}

type UpdateBookingStatusRequest struct {
	Status         *string  `json:"status" validate:"omitempty,booking_status"`
	Priority       *string  `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	AssignedTasker *string  `json:"assignedTasker"`
	ScheduledDate  *string  `json:"scheduledDate"`
	EstimatedCost  *float64 `json:"estimatedCost" validate:"omitempty,gte=0"`
	ActualCost     *float64 `json:"actualCost" validate:"omitempty,gte=0"`
	PaymentStatus  *string  `json:"paymentStatus" validate:"omitempty,oneof=unpaid processing paid refunded"`
	AdminNotes     *string  `json:"adminNotes" validate:"omitempty,max=2000"`
	Override       bool     `json:"override"`
	Version        *int64   `json:"version"`
}

type FeedbackRequest struct {
	Rating   *int   `json:"rating" validate:"required,min=1,max=5"`
	Feedback string `json:"feedback" validate:"max=2000"`
}

// FeedbackResult echoes the stored rating.
type FeedbackResult struct {
	BookingID string `json:"bookingId"`
	Rating    int    `json:"rating"`
	Feedback  string `json:"feedback"`
}

// BookingFilter is shared by the booking listings.
type BookingFilter struct {
	ServiceIDs []string
	UserID     string
	Status     string
	Priority   string
	Search     string
	Page       int
	Limit      int
}

// BookingPage is a page of bookings with a per-status breakdown.
type BookingPage struct {
	Page[BookingView]
	StatusCounts map[string]int64 `json:"statusCounts"`
}

type BookingStats struct {
	Total         int64            `json:"total"`
	ByStatus      map[string]int64 `json:"byStatus"`
	ByPriority    map[string]int64 `json:"byPriority"`
	AverageRating float64          `json:"averageRating"`
	RatedCount    int64            `json:"ratedCount"`
	TotalRevenue  float64          `json:"totalRevenue"`
}

// PaymentIntent is returned to the customer to confirm payment client-side.
type PaymentIntent struct {
	BookingID       string  `json:"bookingId"`
	PaymentIntentID string  `json:"paymentIntentId"`
	ClientSecret    string  `json:"clientSecret"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
	PaymentStatus   string  `json:"paymentStatus"`
}

func IsBookingStatus(status string) bool {
	for _, s := range BookingStatuses {
		if s == status {
			return true
		}
	}
	return false
}
