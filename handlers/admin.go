package handlers

import (
	"net/http"
	"strings"

	"taskhive/models"
	"taskhive/services/admin"
	"taskhive/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler encapsulates elevated admin-level operations.
type AdminHandler struct {
	AdminService admin.AdminService
}

func NewAdminHandler(as admin.AdminService) *AdminHandler {
	return &AdminHandler{AdminService: as}
}

func (h *AdminHandler) DashboardHandler(c *gin.Context) {
	d, err := h.AdminService.Dashboard(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, "", d)
}

// UsersHandler handles GET /admin/users?search=&role=&status=.
func (h *AdminHandler) UsersHandler(c *gin.Context) {
	page, limit := utils.GetPaginationParams(c)
	result, err := h.AdminService.ListUsers(c.Request.Context(), models.UserSearch{
		Search: strings.TrimSpace(c.Query("search")),
		Role:   c.Query("role"),
		Status: c.Query("status"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, "", result)
}

func taskerSearch(c *gin.Context) models.TaskerSearch {
	page, limit := utils.GetPaginationParams(c)
	return models.TaskerSearch{
		Search: strings.TrimSpace(c.Query("search")),
		Status: c.Query("status"),
		Page:   page,
		Limit:  limit,
	}
}

func (h *AdminHandler) TaskersHandler(c *gin.Context) {
	result, err := h.AdminService.ListTaskers(c.Request.Context(), taskerSearch(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, "", result)
}

func (h *AdminHandler) ApprovalQueueHandler(c *gin.Context) {
	result, err := h.AdminService.ApprovalQueue(c.Request.Context(), taskerSearch(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, "", result)
}

// reviewNotes reads the optional {notes} body of an approve or reject call.
func reviewNotes(c *gin.Context) (string, bool) {
	var req models.TaskerReviewRequest
	if c.Request.ContentLength == 0 {
		return "", true
	}
	if !bindJSON(c, &req) {
		return "", false
	}
	return req.Notes, true
}

func (h *AdminHandler) ApproveTaskerHandler(c *gin.Context) {
	notes, ok := reviewNotes(c)
	if !ok {
		return
	}
	t, err := h.AdminService.ApproveTasker(c.Request.Context(), identity(c).UserID, c.Param("id"), notes)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, "Tasker approved", t)
}

func (h *AdminHandler) RejectTaskerHandler(c *gin.Context) {
	notes, ok := reviewNotes(c)
	if !ok {
		return
	}
	t, err := h.AdminService.RejectTasker(c.Request.Context(), identity(c).UserID, c.Param("id"), notes)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, "Tasker rejected", t)
}

func (h *AdminHandler) SuspendUserHandler(c *gin.Context) {
	u, err := h.AdminService.SuspendUser(c.Request.Context(), identity(c).UserID, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, "User suspended", u)
}

func (h *AdminHandler) ActivateUserHandler(c *gin.Context) {
	u, err := h.AdminService.ActivateUser(c.Request.Context(), identity(c).UserID, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, "User activated", u)
}

func (h *AdminHandler) DeleteUserHandler(c *gin.Context) {
	if err := h.AdminService.DeleteUser(c.Request.Context(), identity(c).UserID, c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, "User deleted", nil)
}
