package handlers

import (
	"net/http"

	inventoryRepo "glowdesk/database/repository/inventory"
	"glowdesk/models"
	"glowdesk/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// InventoryHandler exposes stock management.
type InventoryHandler struct {
	inventory inventoryRepo.InventoryRepository
}

// NewInventoryHandler creates an InventoryHandler.
func NewInventoryHandler(inventory inventoryRepo.InventoryRepository) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

// Create adds an inventory item.
func (h *InventoryHandler) Create(c *gin.Context) {
	var req struct {
		Name         string  `json:"name" binding:"required"`
		Unit         string  `json:"unit" binding:"required"`
		Quantity     float64 `json:"quantity"`
		Threshold    float64 `json:"threshold"`
		Supplier     string  `json:"supplier"`
		CostPrice    float64 `json:"costPrice"`
		SellingPrice float64 `json:"sellingPrice"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	item := &models.InventoryItem{
		ID:           uuid.NewString(),
		TenantID:     c.GetString("tenantID"),
		Name:         req.Name,
		Unit:         req.Unit,
		Quantity:     req.Quantity,
		Threshold:    req.Threshold,
		Supplier:     req.Supplier,
		CostPrice:    req.CostPrice,
		SellingPrice: req.SellingPrice,
		IsActive:     true,
	}
	if err := h.inventory.Create(item); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create inventory item", err.Error())
		return
	}
	c.JSON(http.StatusCreated, item)
}

// List returns the tenant's inventory; ?lowStock=true narrows to items at or
// below their threshold.
func (h *InventoryHandler) List(c *gin.Context) {
	var (
		items []models.InventoryItem
		err   error
	)
	if c.Query("lowStock") == "true" {
		items, err = h.inventory.GetLowStock(c.GetString("tenantID"))
	} else {
		items, err = h.inventory.GetByTenant(c.GetString("tenantID"))
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list inventory", err.Error())
		return
	}
	c.JSON(http.StatusOK, items)
}

// Update modifies an item.
func (h *InventoryHandler) Update(c *gin.Context) {
	item, err := h.inventory.GetByID(c.Param("id"))
	if err != nil || item.TenantID != c.GetString("tenantID") {
		utils.JSONError(c, http.StatusNotFound, "inventory item not found", "")
		return
	}

	var req struct {
		Name         string   `json:"name"`
		Unit         string   `json:"unit"`
		Quantity     *float64 `json:"quantity"`
		Threshold    *float64 `json:"threshold"`
		Supplier     string   `json:"supplier"`
		CostPrice    *float64 `json:"costPrice"`
		SellingPrice *float64 `json:"sellingPrice"`
		IsActive     *bool    `json:"isActive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if req.Name != "" {
		item.Name = req.Name
	}
	if req.Unit != "" {
		item.Unit = req.Unit
	}
	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}
	if req.Threshold != nil {
		item.Threshold = *req.Threshold
	}
	if req.Supplier != "" {
		item.Supplier = req.Supplier
	}
	if req.CostPrice != nil {
		item.CostPrice = *req.CostPrice
	}
	if req.SellingPrice != nil {
		item.SellingPrice = *req.SellingPrice
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}

	if err := h.inventory.Update(item); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update inventory item", err.Error())
		return
	}
	c.JSON(http.StatusOK, item)
}

// Delete removes an item.
func (h *InventoryHandler) Delete(c *gin.Context) {
	item, err := h.inventory.GetByID(c.Param("id"))
	if err != nil || item.TenantID != c.GetString("tenantID") {
		utils.JSONError(c, http.StatusNotFound, "inventory item not found", "")
		return
	}

	if err := h.inventory.Delete(item.ID); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete inventory item", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
