package handlers

import (
	"net/http"

	staffRepo "glowdesk/database/repository/staff"
	userRepo "glowdesk/database/repository/user"
	"glowdesk/models"
	"glowdesk/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// StaffHandler exposes staff management. Creating a staff member also creates
// their login account.
type StaffHandler struct {
	staff staffRepo.StaffRepository
	users userRepo.UserRepository
}

// NewStaffHandler creates a StaffHandler.
func NewStaffHandler(staff staffRepo.StaffRepository, users userRepo.UserRepository) *StaffHandler {
	return &StaffHandler{staff: staff, users: users}
}

// Create adds a staff member and their login account.
func (h *StaffHandler) Create(c *gin.Context) {
	var req struct {
		BranchID   string  `json:"branchId" binding:"required"`
		Name       string  `json:"name" binding:"required"`
		Email      string  `json:"email" binding:"required,email"`
		Phone      string  `json:"phone" binding:"required"`
		Password   string  `json:"password" binding:"required,min=8"`
		Role       string  `json:"role"`
		ShiftStart string  `json:"shiftStart"`
		ShiftEnd   string  `json:"shiftEnd"`
		Salary     float64 `json:"salary"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	existing, err := h.users.GetByEmail(req.Email)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to check email", err.Error())
		return
	}
	if existing != nil {
		utils.JSONError(c, http.StatusConflict, "an account with this email already exists", "")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to hash password", err.Error())
		return
	}

	tenantID := c.GetString("tenantID")
	role := req.Role
	if role == "" {
		role = models.RoleStaff
	}

	account := &models.User{
		ID:       uuid.NewString(),
		TenantID: tenantID,
		BranchID: req.BranchID,
		Email:    req.Email,
		Password: string(hashed),
		Name:     req.Name,
		Phone:    req.Phone,
		Role:     role,
		IsActive: true,
	}
	if err := h.users.Create(account); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create account", err.Error())
		return
	}

	member := &models.Staff{
		ID:         uuid.NewString(),
		TenantID:   tenantID,
		UserID:     account.ID,
		BranchID:   req.BranchID,
		Name:       req.Name,
		Role:       role,
		ShiftStart: req.ShiftStart,
		ShiftEnd:   req.ShiftEnd,
		Salary:     req.Salary,
		IsActive:   true,
	}
	if err := h.staff.Create(member); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create staff", err.Error())
		return
	}
	c.JSON(http.StatusCreated, member)
}

// List returns the tenant's staff.
func (h *StaffHandler) List(c *gin.Context) {
	var (
		members []models.Staff
		err     error
	)
	if c.Query("active") == "true" {
		members, err = h.staff.GetActiveByTenant(c.GetString("tenantID"))
	} else {
		members, err = h.staff.GetByTenant(c.GetString("tenantID"))
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list staff", err.Error())
		return
	}
	c.JSON(http.StatusOK, members)
}

// Get returns one staff member.
func (h *StaffHandler) Get(c *gin.Context) {
	member, err := h.staff.GetByID(c.Param("id"))
	if err != nil || member.TenantID != c.GetString("tenantID") {
		utils.JSONError(c, http.StatusNotFound, "staff not found", "")
		return
	}
	c.JSON(http.StatusOK, member)
}

// Update modifies a staff member.
func (h *StaffHandler) Update(c *gin.Context) {
	member, err := h.staff.GetByID(c.Param("id"))
	if err != nil || member.TenantID != c.GetString("tenantID") {
		utils.JSONError(c, http.StatusNotFound, "staff not found", "")
		return
	}

	var req struct {
		BranchID   string   `json:"branchId"`
		Name       string   `json:"name"`
		Role       string   `json:"role"`
		ShiftStart string   `json:"shiftStart"`
		ShiftEnd   string   `json:"shiftEnd"`
		Salary     *float64 `json:"salary"`
		IsActive   *bool    `json:"isActive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if req.BranchID != "" {
		member.BranchID = req.BranchID
	}
	if req.Name != "" {
		member.Name = req.Name
	}
	if req.Role != "" {
		member.Role = req.Role
	}
	if req.ShiftStart != "" {
		member.ShiftStart = req.ShiftStart
	}
	if req.ShiftEnd != "" {
		member.ShiftEnd = req.ShiftEnd
	}
	if req.Salary != nil {
		member.Salary = *req.Salary
	}
	if req.IsActive != nil {
		member.IsActive = *req.IsActive
	}

	if err := h.staff.Update(member); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update staff", err.Error())
		return
	}
	c.JSON(http.StatusOK, member)
}
