package handlers

import (
	"net/http"
	"time"

	"glowdesk/services/analytics"
	"glowdesk/utils"

	"github.com/gin-gonic/gin"
)

// AnalyticsHandler exposes the owner dashboard.
type AnalyticsHandler struct {
	svc analytics.AnalyticsService
}

// NewAnalyticsHandler creates an AnalyticsHandler.
func NewAnalyticsHandler(svc analytics.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc}
}

// Sales returns paid revenue over standard windows.
func (h *AnalyticsHandler) Sales(c *gin.Context) {
	overview, err := h.svc.SalesOverview(c.GetString("tenantID"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to compute sales overview", err.Error())
		return
	}
	c.JSON(http.StatusOK, overview)
}

// StaffLeaderboard ranks staff by revenue.
func (h *AnalyticsHandler) StaffLeaderboard(c *gin.Context) {
	entries, err := h.svc.StaffLeaderboard(c.GetString("tenantID"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to compute leaderboard", err.Error())
		return
	}
	c.JSON(http.StatusOK, entries)
}

// ServicePopularity ranks services by bookings over the requested window
// (defaults to the last 30 days).
func (h *AnalyticsHandler) ServicePopularity(c *gin.Context) {
	to := time.Now()
	from := to.AddDate(0, 0, -30)
	if s := c.Query("from"); s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			from = t
		}
	}
	if s := c.Query("to"); s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			to = t
		}
	}

	entries, err := h.svc.ServicePopularity(c.GetString("tenantID"), from, to)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to compute service popularity", err.Error())
		return
	}
	c.JSON(http.StatusOK, entries)
}

// Customers splits the client base into new and repeat visitors.
func (h *AnalyticsHandler) Customers(c *gin.Context) {
	insights, err := h.svc.CustomerInsights(c.GetString("tenantID"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to compute customer insights", err.Error())
		return
	}
	c.JSON(http.StatusOK, insights)
}

// InventoryAlerts lists items at or below their threshold.
func (h *AnalyticsHandler) InventoryAlerts(c *gin.Context) {
	alerts, err := h.svc.InventoryAlerts(c.GetString("tenantID"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to compute inventory alerts", err.Error())
		return
	}
	c.JSON(http.StatusOK, alerts)
}
