package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"glowdesk/models"
	"glowdesk/services/feedback"
	"glowdesk/utils"

	"github.com/gin-gonic/gin"
)

// FeedbackHandler exposes client ratings.
type FeedbackHandler struct {
	svc feedback.FeedbackService
}

// NewFeedbackHandler creates a FeedbackHandler.
func NewFeedbackHandler(svc feedback.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{svc: svc}
}

// Create submits a rating.
func (h *FeedbackHandler) Create(c *gin.Context) {
	var req feedback.CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	fb, err := h.svc.Create(c.GetString("tenantID"), req)
	if err != nil {
		if errors.Is(err, feedback.ErrInvalidRating) {
			utils.JSONError(c, http.StatusBadRequest, err.Error(), "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to create feedback", err.Error())
		return
	}
	c.JSON(http.StatusCreated, fb)
}

// List returns feedback narrowed by query filters.
func (h *FeedbackHandler) List(c *gin.Context) {
	filter := models.FeedbackFilter{
		StaffID: c.Query("staffId"),
	}
	if mr := c.Query("minRating"); mr != "" {
		if n, err := strconv.Atoi(mr); err == nil {
			filter.MinRating = n
		}
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

	items, err := h.svc.List(c.GetString("tenantID"), filter)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list feedback", err.Error())
		return
	}
	c.JSON(http.StatusOK, items)
}

// Summary returns the tenant-wide average rating.
func (h *FeedbackHandler) Summary(c *gin.Context) {
	average, count, err := h.svc.Summary(c.GetString("tenantID"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to summarize feedback", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"averageRating": average, "count": count})
}
