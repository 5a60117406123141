package handlers

import (
	"net/http"

	"taskhive/middleware"
	"taskhive/models"
	"taskhive/services/user"
	"taskhive/utils"

	"github.com/gin-gonic/gin"
)

// UserHandler serves registration, login and account self-service.
type UserHandler struct {
	UserService user.UserService
}

func NewUserHandler(us user.UserService) *UserHandler {
	return &UserHandler{UserService: us}
}

func (h *UserHandler) register(c *gin.Context, role string) {
	var req models.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.UserService.Register(c.Request.Context(), req, role)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusCreated, "Registration successful", resp)
}

// RegisterUserHandler handles POST /users.
func (h *UserHandler) RegisterUserHandler(c *gin.Context) { h.register(c, models.RoleUser) }

// RegisterTaskerHandler handles POST /users/tasker.
func (h *UserHandler) RegisterTaskerHandler(c *gin.Context) { h.register(c, models.RoleTasker) }

// LoginHandler handles POST /users/login.
func (h *UserHandler) LoginHandler(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.UserService.Login(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, "Login successful", resp)
}

func (h *UserHandler) MeHandler(c *gin.Context) {
	u, err := h.UserService.GetUserByID(c.Request.Context(), identity(c).UserID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, "", u)
}

func (h *UserHandler) UpdateProfileHandler(c *gin.Context) {
	var req models.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.UserService.UpdateProfile(c.Request.Context(), identity(c).UserID, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, "Profile updated", u)
}

func (h *UserHandler) ChangePasswordHandler(c *gin.Context) {
	var req models.ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.UserService.ChangePassword(c.Request.Context(), identity(c).UserID, middleware.CurrentToken(c), req); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, "Password changed; please sign in again", nil)
}

func (h *UserHandler) LogoutHandler(c *gin.Context) {
	if err := h.UserService.Logout(c.Request.Context(), middleware.CurrentToken(c)); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, "Logged out", nil)
}

func (h *UserHandler) UpdateFCMTokenHandler(c *gin.Context) {
	var req models.FCMTokenRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.UserService.UpdateFCMToken(c.Request.Context(), identity(c).UserID, req.Token); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, "Device token saved", nil)
}
