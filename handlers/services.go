package handlers

import (
	"net/http"
	"strings"

	"taskhive/models"
	"taskhive/services/catalog"
	"taskhive/utils"

	"github.com/gin-gonic/gin"
)

// ServiceHandler serves the service catalogue.
type ServiceHandler struct {
	Catalog catalog.CatalogService
}

func NewServiceHandler(cs catalog.CatalogService) *ServiceHandler {
	return &ServiceHandler{Catalog: cs}
}

// PublicServicesHandler handles GET /services/public?category=&search=.
func (h *ServiceHandler) PublicServicesHandler(c *gin.Context) {
	listings, err := h.Catalog.ListPublicServices(c.Request.Context(), models.PublicServiceFilter{
		Category: strings.TrimSpace(c.Query("category")),
		Search:   c.Query("search"),
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, "", listings)
}

func (h *ServiceHandler) GetServiceHandler(c *gin.Context) {
	listing, err := h.Catalog.GetService(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, "", listing)
}

func (h *ServiceHandler) CategoriesHandler(c *gin.Context) {
	utils.RespondOK(c, http.StatusOK, "", h.Catalog.Categories())
}

func (h *ServiceHandler) TaskerServicesHandler(c *gin.Context) {
	services, err := h.Catalog.ListByTasker(c.Request.Context(), identity(c), c.Param("taskerId"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, "", services)
}

func (h *ServiceHandler) CreateServiceHandler(c *gin.Context) {
	var req models.CreateServiceRequest
	if !bindJSON(c, &req) {
		return
	}
	svc, err := h.Catalog.CreateService(c.Request.Context(), identity(c), c.Param("taskerId"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusCreated, "Service submitted for review", svc)
}

func (h *ServiceHandler) TaskerStatsHandler(c *gin.Context) {
	stats, err := h.Catalog.ServiceStats(c.Request.Context(), identity(c), c.Param("taskerId"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, "", stats)
}

func (h *ServiceHandler) UpdateServiceHandler(c *gin.Context) {
	var req models.UpdateServiceRequest
	if !bindJSON(c, &req) {
		return
	}
	svc, err := h.Catalog.UpdateService(c.Request.Context(), identity(c), c.Param("serviceId"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, "Service updated", svc)
}

// ToggleServiceHandler handles PATCH /services/:serviceId.
func (h *ServiceHandler) ToggleServiceHandler(c *gin.Context) {
	svc, err := h.Catalog.ToggleActivation(c.Request.Context(), identity(c), c.Param("serviceId"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, "Service is now "+svc.Status, svc)
}

func (h *ServiceHandler) DeleteServiceHandler(c *gin.Context) {
	if err := h.Catalog.DeleteService(c.Request.Context(), identity(c), c.Param("serviceId")); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, "Service deleted", nil)
}

// AdminServicesHandler handles GET /services/admin/all?state=&status=&category=.
func (h *ServiceHandler) AdminServicesHandler(c *gin.Context) {
	page, limit := utils.GetPaginationParams(c)
	result, err := h.Catalog.ListAll(c.Request.Context(), models.ServiceSearch{
		State:    c.Query("state"),
		Status:   c.Query("status"),
		Category: c.Query("category"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, "", result)
}

func (h *ServiceHandler) PendingServicesHandler(c *gin.Context) {
	page, limit := utils.GetPaginationParams(c)
	result, err := h.Catalog.ListPending(c.Request.Context(), page, limit)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, "", result)
}

// ReviewServiceHandler handles PUT /services/admin/:serviceId/review.
func (h *ServiceHandler) ReviewServiceHandler(c *gin.Context) {
	var req models.ServiceReviewRequest
	if !bindJSON(c, &req) {
		return
	}
	svc, err := h.Catalog.AdminReview(c.Request.Context(), identity(c).UserID, c.Param("serviceId"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, "Service "+svc.State, svc)
}
