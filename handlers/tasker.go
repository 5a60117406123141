package handlers

import (
	"net/http"

	"taskhive/models"
	"taskhive/services/tasker"
	"taskhive/utils"

	"github.com/gin-gonic/gin"
)

// TaskerHandler serves the signed-in tasker's own profile.
type TaskerHandler struct {
	TaskerService tasker.TaskerService
}

func NewTaskerHandler(ts tasker.TaskerService) *TaskerHandler {
	return &TaskerHandler{TaskerService: ts}
}

func (h *TaskerHandler) CreateProfileHandler(c *gin.Context) {
	var req models.CreateTaskerProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.TaskerService.CreateProfile(c.Request.Context(), identity(c).UserID, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusCreated, "Tasker profile created", p)
}

func (h *TaskerHandler) GetProfileHandler(c *gin.Context) {
	p, err := h.TaskerService.GetProfile(c.Request.Context(), identity(c).UserID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, "", p)
}

func (h *TaskerHandler) UpdateProfileHandler(c *gin.Context) {
	var req models.UpdateTaskerProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.TaskerService.UpdateProfile(c.Request.Context(), identity(c).UserID, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, "Tasker profile updated", p)
}

// CheckProfileHandler handles GET /taskers/profile/check.
func (h *TaskerHandler) CheckProfileHandler(c *gin.Context) {
	exists, err := h.TaskerService.ProfileExists(c.Request.Context(), identity(c).UserID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, "", gin.H{"exists": exists})
}
