package handlers

import (
	"net/http"
	"time"

	"glowdesk/models"
	"glowdesk/services/invoice"
	"glowdesk/utils"

	"github.com/gin-gonic/gin"
)

// InvoiceHandler exposes billing.
type InvoiceHandler struct {
	svc invoice.InvoiceService
}

// NewInvoiceHandler creates an InvoiceHandler.
func NewInvoiceHandler(svc invoice.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{svc: svc}
}

// Create issues an invoice for an appointment.
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req invoice.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	inv, err := h.svc.Create(c.GetString("tenantID"), req)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create invoice", err.Error())
		return
	}
	c.JSON(http.StatusCreated, inv)
}

// List returns invoices narrowed by query filters.
func (h *InvoiceHandler) List(c *gin.Context) {
	filter := models.InvoiceFilter{
		ClientID:      c.Query("clientId"),
		PaymentStatus: c.Query("paymentStatus"),
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

	invoices, err := h.svc.List(c.GetString("tenantID"), filter)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list invoices", err.Error())
		return
	}
	c.JSON(http.StatusOK, invoices)
}

// Get returns one invoice.
func (h *InvoiceHandler) Get(c *gin.Context) {
	inv, err := h.svc.GetByID(c.GetString("tenantID"), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "invoice not found", "")
		return
	}
	c.JSON(http.StatusOK, inv)
}

// RecordPayment settles an invoice.
func (h *InvoiceHandler) RecordPayment(c *gin.Context) {
	var req invoice.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	inv, err := h.svc.RecordPayment(c.GetString("tenantID"), c.Param("id"), req)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to record payment", err.Error())
		return
	}
	c.JSON(http.StatusOK, inv)
}
