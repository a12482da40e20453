package handlers

import (
	"net/http"
	"strconv"
	"time"

	clientRepo "glowdesk/database/repository/client"
	"glowdesk/models"
	"glowdesk/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ClientHandler exposes the customer directory.
type ClientHandler struct {
	clients clientRepo.ClientRepository
}

// NewClientHandler creates a ClientHandler.
func NewClientHandler(clients clientRepo.ClientRepository) *ClientHandler {
	return &ClientHandler{clients: clients}
}

// Create adds a client.
func (h *ClientHandler) Create(c *gin.Context) {
	var req struct {
		Name        string     `json:"name" binding:"required"`
		Phone       string     `json:"phone" binding:"required"`
		Email       string     `json:"email"`
		DateOfBirth *time.Time `json:"dateOfBirth"`
		Address     string     `json:"address"`
		Notes       string     `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	tenantID := c.GetString("tenantID")
	existing, err := h.clients.GetByPhone(tenantID, req.Phone)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to check phone", err.Error())
		return
	}
	if existing != nil {
		utils.JSONError(c, http.StatusConflict, "a client with this phone number already exists", "")
		return
	}

	client := &models.Client{
		ID:          uuid.NewString(),
		TenantID:    tenantID,
		Name:        req.Name,
		Phone:       req.Phone,
		Email:       req.Email,
		DateOfBirth: req.DateOfBirth,
		Address:     req.Address,
		Notes:       req.Notes,
	}
	if err := h.clients.Create(client); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create client", err.Error())
		return
	}
	c.JSON(http.StatusCreated, client)
}

// List returns a page of the tenant's clients, filterable by search text and
// loyalty tier.
func (h *ClientHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	clients, total, err := h.clients.GetByTenant(c.GetString("tenantID"), clientRepo.ClientQuery{
		Search:      c.Query("search"),
		LoyaltyTier: c.Query("tier"),
		Page:        page,
		Limit:       limit,
	})
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list clients", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"clients": clients, "total": total, "page": page, "limit": limit})
}

// Get returns one client.
func (h *ClientHandler) Get(c *gin.Context) {
	client, err := h.clients.GetByID(c.Param("id"))
	if err != nil || client.TenantID != c.GetString("tenantID") {
		utils.JSONError(c, http.StatusNotFound, "client not found", "")
		return
	}
	c.JSON(http.StatusOK, client)
}

// Update modifies a client.
func (h *ClientHandler) Update(c *gin.Context) {
	client, err := h.clients.GetByID(c.Param("id"))
	if err != nil || client.TenantID != c.GetString("tenantID") {
		utils.JSONError(c, http.StatusNotFound, "client not found", "")
		return
	}

	var req struct {
		Name        string     `json:"name"`
		Phone       string     `json:"phone"`
		Email       string     `json:"email"`
		DateOfBirth *time.Time `json:"dateOfBirth"`
		Address     string     `json:"address"`
		Notes       string     `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if req.Name != "" {
		client.Name = req.Name
	}
	if req.Phone != "" {
		client.Phone = req.Phone
	}
	if req.Email != "" {
		client.Email = req.Email
	}
	if req.DateOfBirth != nil {
		client.DateOfBirth = req.DateOfBirth
	}
	if req.Address != "" {
		client.Address = req.Address
	}
	if req.Notes != "" {
		client.Notes = req.Notes
	}

	if err := h.clients.Update(client); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update client", err.Error())
		return
	}
	c.JSON(http.StatusOK, client)
}
