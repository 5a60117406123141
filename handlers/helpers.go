package handlers

import (
	"strings"

	"taskhive/middleware"
	"taskhive/models"
	"taskhive/utils"

	"github.com/gin-gonic/gin"
)

// bindJSON decodes the request body, responding with a validation error on failure.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		utils.RespondError(c, utils.ErrValidation("Invalid request body: "+err.Error()))
		return false
	}
	return true
}

// identity returns the caller set by the auth middleware.
func identity(c *gin.Context) models.Identity {
	id, _ := middleware.CurrentIdentity(c)
	return id
}

func bookingFilter(c *gin.Context) models.BookingFilter {
	page, limit := utils.GetPaginationParams(c)
	return models.BookingFilter{
		Status:   strings.TrimSpace(c.Query("status")),
		Priority: strings.TrimSpace(c.Query("priority")),
		Search:   strings.TrimSpace(c.Query("search")),
		Page:     page,
		Limit:    limit,
	}
}
