package handlers

import (
	"net/http"

	tenantRepo "glowdesk/database/repository/tenant"
	"glowdesk/utils"

	"github.com/gin-gonic/gin"
)

// TenantHandler exposes the tenant profile.
type TenantHandler struct {
	tenants tenantRepo.TenantRepository
}

// NewTenantHandler creates a TenantHandler.
func NewTenantHandler(tenants tenantRepo.TenantRepository) *TenantHandler {
	return &TenantHandler{tenants: tenants}
}

// Get returns the caller's tenant.
func (h *TenantHandler) Get(c *gin.Context) {
	tenant, err := h.tenants.GetByID(c.GetString("tenantID"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "tenant not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, tenant)
}

// Update modifies the tenant profile.
func (h *TenantHandler) Update(c *gin.Context) {
	tenant, err := h.tenants.GetByID(c.GetString("tenantID"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "tenant not found", err.Error())
		return
	}

	var req struct {
		BusinessName string `json:"businessName"`
		Logo         string `json:"logo"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if req.BusinessName != "" {
		tenant.BusinessName = req.BusinessName
	}
	if req.Logo != "" {
		tenant.Logo = req.Logo
	}

	if err := h.tenants.Update(tenant); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update tenant", err.Error())
		return
	}
	c.JSON(http.StatusOK, tenant)
}
