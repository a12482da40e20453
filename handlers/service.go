package handlers

import (
	"net/http"

	serviceRepo "glowdesk/database/repository/service"
	"glowdesk/models"
	"glowdesk/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ServiceHandler exposes the service catalog.
type ServiceHandler struct {
	services serviceRepo.ServiceRepository
}

// NewServiceHandler creates a ServiceHandler.
func NewServiceHandler(services serviceRepo.ServiceRepository) *ServiceHandler {
	return &ServiceHandler{services: services}
}

type serviceRequest struct {
	Name        string               `json:"name" binding:"required"`
	Description string               `json:"description"`
	Duration    int                  `json:"duration" binding:"required,min=5"`
	Price       float64              `json:"price" binding:"required,min=0"`
	StaffIDs    []string             `json:"staffIds"`
	Items       []models.ServiceItem `json:"items"`
}

// Create adds a service to the catalog.
func (h *ServiceHandler) Create(c *gin.Context) {
	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	service := &models.Service{
		ID:          uuid.NewString(),
		TenantID:    c.GetString("tenantID"),
		Name:        req.Name,
		Description: req.Description,
		Duration:    req.Duration,
		Price:       req.Price,
		IsActive:    true,
		StaffIDs:    req.StaffIDs,
		Items:       req.Items,
	}
	if err := h.services.Create(service); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create service", err.Error())
		return
	}
	c.JSON(http.StatusCreated, service)
}

// List returns the catalog; ?active=true narrows to bookable services.
func (h *ServiceHandler) List(c *gin.Context) {
	var (
		services []models.Service
		err      error
	)
	if c.Query("active") == "true" {
		services, err = h.services.GetActiveByTenant(c.GetString("tenantID"))
	} else {
		services, err = h.services.GetByTenant(c.GetString("tenantID"))
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list services", err.Error())
		return
	}
	c.JSON(http.StatusOK, services)
}

// Update modifies a service.
func (h *ServiceHandler) Update(c *gin.Context) {
	service, err := h.services.GetByID(c.Param("id"))
	if err != nil || service.TenantID != c.GetString("tenantID") {
		utils.JSONError(c, http.StatusNotFound, "service not found", "")
		return
	}

	var req struct {
		Name        string               `json:"name"`
		Description string               `json:"description"`
		Duration    *int                 `json:"duration"`
		Price       *float64             `json:"price"`
		IsActive    *bool                `json:"isActive"`
		StaffIDs    []string             `json:"staffIds"`
		Items       []models.ServiceItem `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if req.Name != "" {
		service.Name = req.Name
	}
	if req.Description != "" {
		service.Description = req.Description
	}
	if req.Duration != nil {
		service.Duration = *req.Duration
	}
	if req.Price != nil {
		service.Price = *req.Price
	}
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}
	if req.StaffIDs != nil {
		service.StaffIDs = req.StaffIDs
	}
	if req.Items != nil {
		service.Items = req.Items
	}

	if err := h.services.Update(service); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update service", err.Error())
		return
	}
	c.JSON(http.StatusOK, service)
}

// Delete removes a service from the catalog.
func (h *ServiceHandler) Delete(c *gin.Context) {
	service, err := h.services.GetByID(c.Param("id"))
	if err != nil || service.TenantID != c.GetString("tenantID") {
		utils.JSONError(c, http.StatusNotFound, "service not found", "")
		return
	}

	if err := h.services.Delete(service.ID); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete service", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
