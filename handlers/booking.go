package handlers

import (
	"net/http"
	"strings"

	"taskhive/middleware"
	"taskhive/models"
	"taskhive/services/booking"
	"taskhive/utils"

	"github.com/gin-gonic/gin"
)

const IdempotencyKeyHeader = "Idempotency-Key"

// BookingHandler serves booking creation, tracking and payment.
type BookingHandler struct {
	BookingService booking.BookingService
}

func NewBookingHandler(bs booking.BookingService) *BookingHandler {
	return &BookingHandler{BookingService: bs}
}

// CreateBookingHandler handles POST /bookings. Authentication is optional;
// a replayed Idempotency-Key answers 200 with the original booking.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	var req models.CreateBookingRequest
	if !bindJSON(c, &req) {
		return
	}
	req.IdempotencyKey = strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))

	var actor *models.Identity
	if id, ok := middleware.CurrentIdentity(c); ok {
		actor = &id
	}
	view, created, err := h.BookingService.CreateBooking(c.Request.Context(), actor, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if !created {
		utils.RespondOK(c, http.StatusOK, "Booking already submitted", view)
		return
	}
	utils.RespondOK(c, http.StatusCreated, "Booking created", view)
}

func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	view, err := h.BookingService.GetBooking(c.Request.Context(), identity(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, "", view)
}

func (h *BookingHandler) TaskerBookingsHandler(c *gin.Context) {
	page, err := h.BookingService.ListByTasker(c.Request.Context(), identity(c), c.Param("id"), bookingFilter(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, "", page)
}

// CustomerBookingsHandler handles GET /bookings/customer/:identifier where
// identifier is a user id or an email.
func (h *BookingHandler) CustomerBookingsHandler(c *gin.Context) {
	page, err := h.BookingService.ListByCustomer(c.Request.Context(), identity(c), c.Param("identifier"), bookingFilter(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, "", page)
}

func (h *BookingHandler) UpdateStatusHandler(c *gin.Context) {
	var req models.UpdateBookingStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	view, err := h.BookingService.UpdateBookingStatus(c.Request.Context(), identity(c), c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, "Booking updated", view)
}

func (h *BookingHandler) FeedbackHandler(c *gin.Context) {
	var req models.FeedbackRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.BookingService.AddFeedback(c.Request.Context(), identity(c), c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, "Thanks for your feedback", result)
}

func (h *BookingHandler) PaymentIntentHandler(c *gin.Context) {
	intent, err := h.BookingService.CreatePaymentIntent(c.Request.Context(), identity(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, "", intent)
}

// ListBookingsHandler handles the admin GET /bookings listing.
func (h *BookingHandler) ListBookingsHandler(c *gin.Context) {
	page, err := h.BookingService.ListAll(c.Request.Context(), bookingFilter(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, "", page)
}

func (h *BookingHandler) StatisticsHandler(c *gin.Context) {
	stats, err := h.BookingService.Stats(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, "", stats)
}
