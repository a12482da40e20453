package handlers

import (
	"net/http"

	branchRepo "glowdesk/database/repository/branch"
	"glowdesk/models"
	"glowdesk/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BranchHandler exposes branch CRUD.
type BranchHandler struct {
	branches branchRepo.BranchRepository
}

// NewBranchHandler creates a BranchHandler.
func NewBranchHandler(branches branchRepo.BranchRepository) *BranchHandler {
	return &BranchHandler{branches: branches}
}

// Create adds a branch to the caller's tenant.
func (h *BranchHandler) Create(c *gin.Context) {
	var req struct {
		Name    string `json:"name" binding:"required"`
		Address string `json:"address"`
		Phone   string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	branch := &models.Branch{
		ID:       uuid.NewString(),
		TenantID: c.GetString("tenantID"),
		Name:     req.Name,
		Address:  req.Address,
		Phone:    req.Phone,
	}
	if err := h.branches.Create(branch); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create branch", err.Error())
		return
	}
	c.JSON(http.StatusCreated, branch)
}

// List returns the tenant's branches.
func (h *BranchHandler) List(c *gin.Context) {
	branches, err := h.branches.GetByTenant(c.GetString("tenantID"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list branches", err.Error())
		return
	}
	c.JSON(http.StatusOK, branches)
}

// Update modifies a branch.
func (h *BranchHandler) Update(c *gin.Context) {
	branch, err := h.branches.GetByID(c.Param("id"))
	if err != nil || branch.TenantID != c.GetString("tenantID") {
		utils.JSONError(c, http.StatusNotFound, "branch not found", "")
		return
	}

	var req struct {
		Name    string `json:"name"`
		Address string `json:"address"`
		Phone   string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if req.Name != "" {
		branch.Name = req.Name
	}
	if req.Address != "" {
		branch.Address = req.Address
	}
	if req.Phone != "" {
		branch.Phone = req.Phone
	}

	if err := h.branches.Update(branch); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update branch", err.Error())
		return
	}
	c.JSON(http.StatusOK, branch)
}

// Delete removes a branch.
func (h *BranchHandler) Delete(c *gin.Context) {
	branch, err := h.branches.GetByID(c.Param("id"))
	if err != nil || branch.TenantID != c.GetString("tenantID") {
		utils.JSONError(c, http.StatusNotFound, "branch not found", "")
		return
	}

	if err := h.branches.Delete(branch.ID); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete branch", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
