package models

import "time"

const (
	ServiceStatusActive   = "active"
	ServiceStatusInactive = "inactive"

	ServiceStatePending  = "pending"
	ServiceStateApproved = "approved"
	ServiceStateRejected = "rejected"
)

// Service is a listing owned by one tasker.
type Service struct {
	ID            string     `bson:"id" json:"id"`
	TaskerID      string     `bson:"taskerId" json:"taskerId"`
	Title         string     `bson:"title" json:"title"`
	Category      string     `bson:"category" json:"category"`
	Description   string     `bson:"description" json:"description"`
	Price         string     `bson:"price" json:"price"`
	Image         string     `bson:"image" json:"image"`
	Tags          []string   `bson:"tags" json:"tags"`
	Status        string     `bson:"status" json:"status"`
	State         string     `bson:"state" json:"state"`
	Rating        float64    `bson:"rating" json:"rating"`
	JobsCompleted int        `bson:"jobsCompleted" json:"jobsCompleted"`
	ReviewedAt    *time.Time `bson:"reviewedAt" json:"reviewedAt"`
	ReviewNotes   string     `bson:"reviewNotes" json:"reviewNotes"`
	ReviewedBy    string     `bson:"reviewedBy" json:"reviewedBy"`
	Version       int64      `bson:"version" json:"version"`
	CreatedAt     time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// ServiceTasker is the owner summary attached to public listings.
type ServiceTasker struct {
	ID           string  `bson:"id" json:"id"`
	UserID       string  `bson:"userId" json:"userId"`
	Name         string  `bson:"name" json:"name"`
	City         string  `bson:"city" json:"city"`
	Region       string  `bson:"region" json:"region"`
	Country      string  `bson:"country" json:"country"`
	HourlyRate   float64 `bson:"hourlyRate" json:"hourlyRate"`
	ProfileImage string  `bson:"profileImage" json:"profileImage"`
}

// ServiceListing is a service joined with its tasker.
type ServiceListing struct {
	Service `bson:",inline"`
	Tasker  *ServiceTasker `bson:"tasker,omitempty" json:"tasker,omitempty"`
}

// ServiceRating is derived from completed bookings of one service.
type ServiceRating struct {
	ServiceID     string  `bson:"_id" json:"serviceId"`
	Rating        float64 `bson:"rating" json:"rating"`
	JobsCompleted int     `bson:"jobsCompleted" json:"jobsCompleted"`
}

type CreateServiceRequest struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Category    string   `json:"category" validate:"required,service_category"`
	Description string   `json:"description" validate:"required,max=5000"`
	Price       string   `json:"price" validate:"required,max=100"`
	Image       string   `json:"image" validate:"required"`
	Tags        []string `json:"tags" validate:"max=20,dive,max=50"`
	// Status and State are accepted and ignored; new services always start inactive and pending.
	Status string `json:"status"`
	State  string `json:"state"`
}

type UpdateServiceRequest struct {
	Title       *string   `json:"title" validate:"omitempty,min=1,max=200"`
	Category    *string   `json:"category" validate:"omitempty,service_category"`
	Description *string   `json:"description" validate:"omitempty,min=1,max=5000"`
	Price       *string   `json:"price" validate:"omitempty,min=1,max=100"`
	Image       *string   `json:"image" validate:"omitempty,min=1"`
	Tags        *[]string `json:"tags" validate:"omitempty,max=20"`
	Version     *int64    `json:"version"`
}

type ServiceReviewRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approved rejected"`
	Notes    string `json:"notes" validate:"max=1000"`
	Version  *int64 `json:"version"`
}

// PublicServiceFilter narrows the public catalogue.
type PublicServiceFilter struct {
	Category string
	Search   string
}

// ServiceSearch filters the admin service listing.
type ServiceSearch struct {
	State    string
	Status   string
	Category string
	Page     int
	Limit    int
}

// ServiceStats summarises a tasker's own services.
type ServiceStats struct {
	Total              int     `json:"total"`
	Active             int     `json:"active"`
	Inactive           int     `json:"inactive"`
	Pending            int     `json:"pending"`
	Approved           int     `json:"approved"`
	Rejected           int     `json:"rejected"`
	AverageRating      float64 `json:"averageRating"`
	TotalJobsCompleted int     `json:"totalJobsCompleted"`
	AverageJobs        float64 `json:"averageJobs"`
}
