package models

import "time"

const (
	TaskerStatusPending  = "pending"
	TaskerStatusApproved = "approved"
	TaskerStatusRejected = "rejected"
)

// Tasker extends a User of role tasker with a public profile.
type Tasker struct {
	ID           string     `bson:"id" json:"id"`
	UserID       string     `bson:"userId" json:"userId"`
	Phone        string     `bson:"phone,omitempty" json:"phone,omitempty"`
	AddressLine1 string     `bson:"addressLine1" json:"addressLine1"`
	AddressLine2 string     `bson:"addressLine2,omitempty" json:"addressLine2,omitempty"`
	City         string     `bson:"city" json:"city"`
	Region       string     `bson:"region,omitempty" json:"region,omitempty"`
	PostalCode   string     `bson:"postalCode" json:"postalCode"`
	Country      string     `bson:"country" json:"country"`
	Category     string     `bson:"category" json:"category"`
	Experience   string     `bson:"experience" json:"experience"`
	HourlyRate   float64    `bson:"hourlyRate" json:"hourlyRate"`
	Bio          string     `bson:"bio" json:"bio"`
	Skills       []string   `bson:"skills" json:"skills"`
	ProfileImage string     `bson:"profileImage,omitempty" json:"profileImage,omitempty"`
	Status       string     `bson:"status" json:"status"`
	ReviewNotes  string     `bson:"reviewNotes,omitempty" json:"reviewNotes,omitempty"`
	ReviewedBy   string     `bson:"reviewedBy,omitempty" json:"reviewedBy,omitempty"`
	ReviewedAt   *time.Time `bson:"reviewedAt,omitempty" json:"reviewedAt,omitempty"`
	CreatedAt    time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// TaskerProfile is the flattened view of a tasker merged with its user.
type TaskerProfile struct {
	Tasker `bson:",inline"`
	Name   string `bson:"name" json:"name"`
	Email  string `bson:"email" json:"email"`
}

type CreateTaskerProfileRequest struct {
	Phone        string     `json:"phone" validate:"omitempty,max=30"`
	AddressLine1 string     `json:"addressLine1" validate:"required"`
	AddressLine2 string     `json:"addressLine2"`
	City         string     `json:"city" validate:"required"`
	Region       string     `json:"region"`
	PostalCode   string     `json:"postalCode" validate:"required"`
	Country      string     `json:"country" validate:"required"`
	Category     string     `json:"category" validate:"required,service_category"`
	Experience   string     `json:"experience" validate:"required"`
	HourlyRate   *float64   `json:"hourlyRate" validate:"required,gt=0"`
	Bio          string     `json:"bio" validate:"required,max=2000"`
	Skills       SkillInput `json:"skills"`
	ProfileImage string     `json:"profileImage" validate:"omitempty,url"`
}

type UpdateTaskerProfileRequest struct {
	Phone        *string     `json:"phone" validate:"omitempty,max=30"`
	AddressLine1 *string     `json:"addressLine1" validate:"omitempty,min=1"`
	AddressLine2 *string     `json:"addressLine2"`
	City         *string     `json:"city" validate:"omitempty,min=1"`
	Region       *string     `json:"region"`
	PostalCode   *string     `json:"postalCode" validate:"omitempty,min=1"`
	Country      *string     `json:"country" validate:"omitempty,min=1"`
	Category     *string     `json:"category" validate:"omitempty,service_category"`
	Experience   *string     `json:"experience" validate:"omitempty,min=1"`
	HourlyRate   *float64    `json:"hourlyRate" validate:"omitempty,gt=0"`
	Bio          *string     `json:"bio" validate:"omitempty,max=2000"`
	Skills       *SkillInput `json:"skills"`
	ProfileImage *string     `json:"profileImage" validate:"omitempty,url"`
}

// TaskerReviewRequest carries an admin's approval decision notes.
type TaskerReviewRequest struct {
	Notes string `json:"notes" validate:"max=1000"`
}

// TaskerSearch filters the admin tasker listing and approval queue.
type TaskerSearch struct {
	Search string
	Status string
	Page   int
	Limit  int
}
