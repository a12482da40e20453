package handlers

import (
	"errors"
	"net/http"
	"time"

	"glowdesk/models"
	"glowdesk/services/booking"
	"glowdesk/utils"

	"github.com/gin-gonic/gin"
)

// AppointmentHandler exposes the appointment lifecycle.
type AppointmentHandler struct {
	svc booking.BookingService
}

// NewAppointmentHandler creates an AppointmentHandler.
func NewAppointmentHandler(svc booking.BookingService) *AppointmentHandler {
	return &AppointmentHandler{svc: svc}
}

// Create books an appointment. A conflicting slot yields 409.
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req booking.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	appointment, err := h.svc.Create(c.GetString("tenantID"), req)
	if err != nil {
		if errors.Is(err, booking.ErrSlotTaken) {
			utils.JSONError(c, http.StatusConflict, err.Error(), "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to create appointment", err.Error())
		return
	}
	c.JSON(http.StatusCreated, appointment)
}

// List returns appointments narrowed by query filters.
func (h *AppointmentHandler) List(c *gin.Context) {
	filter := models.AppointmentFilter{
		Status:   c.Query("status"),
		StaffID:  c.Query("staffId"),
		ClientID: c.Query("clientId"),
		BranchID: c.Query("branchId"),
	}
	if from := c.Query("from"); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			filter.StartDate = &t
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			filter.EndDate = &t
		}
	}

	appointments, err := h.svc.List(c.GetString("tenantID"), filter)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list appointments", err.Error())
		return
	}
	c.JSON(http.StatusOK, appointments)
}

// Get returns one appointment.
func (h *AppointmentHandler) Get(c *gin.Context) {
	appointment, err := h.svc.GetByID(c.GetString("tenantID"), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "appointment not found", "")
		return
	}
	c.JSON(http.StatusOK, appointment)
}

// UpdateStatus transitions an appointment.
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	appointment, err := h.svc.UpdateStatus(c.GetString("tenantID"), c.Param("id"), req.Status)
	if err != nil {
		if errors.Is(err, booking.ErrInvalidTransition) {
			utils.JSONError(c, http.StatusBadRequest, err.Error(), "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to update appointment", err.Error())
		return
	}
	c.JSON(http.StatusOK, appointment)
}

// Slots returns a staff member's open slots for a day (?staffId=&date=YYYY-MM-DD).
func (h *AppointmentHandler) Slots(c *gin.Context) {
	staffID := c.Query("staffId")
	dateStr := c.Query("date")
	if staffID == "" || dateStr == "" {
		utils.JSONError(c, http.StatusBadRequest, "staffId and date are required", "")
		return
	}
	date, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "date must be YYYY-MM-DD", err.Error())
		return
	}

	slots, err := h.svc.AvailableSlots(staffID, date)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to compute slots", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}
