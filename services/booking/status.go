package booking

import (
	"context"
	"fmt"
	"strings"

	"taskhive/models"
	"taskhive/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// UpdateBookingStatus is used by admins and by the tasker who owns the booked
// service. Illegal lifecycle moves need an admin override.
func (s *DefaultBookingService) UpdateBookingStatus(ctx context.Context, actor models.Identity, bookingID string, req models.UpdateBookingStatusRequest) (*models.BookingView, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !s.canManage(ctx, actor, b) {
		return nil, utils.ErrForbidden("You cannot manage this booking")
	}
	if req.Override && !actor.IsAdmin() {
		return nil, utils.ErrForbidden("Only admins can override the booking lifecycle")
	}
	if req.Version != nil && *req.Version != b.Version {
		return nil, utils.ErrConflict("Booking was modified by another request; reload and retry")
	}

	set := bson.M{}
	statusChanged := false
	if req.Status != nil && *req.Status != b.Status {
		if !canTransition(b.Status, *req.Status) && !req.Override {
			return nil, utils.ErrConflict(fmt.Sprintf("Cannot move booking from %s to %s", b.Status, *req.Status))
		}
		set["status"] = *req.Status
		statusChanged = true
		switch {
		case *req.Status == models.BookingCompleted:
			set["completedDate"] = s.Now().UTC()
		case b.Status == models.BookingCompleted:
			// reopened by an override; the job has to be completed and rated again
			set["completedDate"] = nil
			set["customerRating"] = nil
			set["customerFeedback"] = ""
		}
	}
	if req.Priority != nil {
		set["priority"] = *req.Priority
	}
	if req.AssignedTasker != nil {
		set["assignedTasker"] = strings.TrimSpace(*req.AssignedTasker)
	}
	if req.ScheduledDate != nil {
		if strings.TrimSpace(*req.ScheduledDate) == "" {
			set["scheduledDate"] = nil
		} else {
			scheduled, ok := parseDate(*req.ScheduledDate, s.Now().Location())
			if !ok {
				return nil, utils.ErrInvalidDate("scheduledDate is not a valid date")
			}
			set["scheduledDate"] = scheduled.UTC()
		}
	}
	if req.EstimatedCost != nil {
		set["estimatedCost"] = *req.EstimatedCost
	}
	if req.ActualCost != nil {
		set["actualCost"] = *req.ActualCost
	}
	if req.PaymentStatus != nil {
		set["paymentStatus"] = *req.PaymentStatus
	}
	if req.AdminNotes != nil {
		set["adminNotes"] = strings.TrimSpace(*req.AdminNotes)
	}
	if len(set) == 0 {
		if req.Status != nil {
			return s.view(ctx, b), nil
		}
		return nil, utils.ErrValidation("No fields to update")
	}

	updated, err := s.update(ctx, b, set)
	if err != nil {
		return nil, err
	}

	if statusChanged {
		s.Logger.Info("Booking status changed",
			zap.String("bookingId", b.ID), zap.String("from", b.Status), zap.String("to", updated.Status),
			zap.String("by", actor.UserID), zap.Bool("override", req.Override))
		s.notify(ctx, updated.UserID, "Booking update",
			fmt.Sprintf("Your booking is now %s.", updated.Status),
			map[string]string{"bookingId": updated.ID, "status": updated.Status, "type": "booking_status"})
	}
	return s.view(ctx, updated), nil
}

// AddFeedback rates a completed booking. A later submission replaces the
// earlier one.
func (s *DefaultBookingService) AddFeedback(ctx context.Context, actor models.Identity, bookingID string, req models.FeedbackRequest) (*models.FeedbackResult, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.UserID != actor.UserID && !actor.IsAdmin() {
		return nil, utils.ErrForbidden("Only the customer can rate this booking")
	}
	if b.Status != models.BookingCompleted {
		return nil, utils.ErrConflict("Feedback can only be left on completed bookings")
	}

	feedback := strings.TrimSpace(req.Feedback)
	if _, err := s.update(ctx, b, bson.M{"customerRating": *req.Rating, "customerFeedback": feedback}); err != nil {
		return nil, err
	}
	return &models.FeedbackResult{BookingID: b.ID, Rating: *req.Rating, Feedback: feedback}, nil
}
