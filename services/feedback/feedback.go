// Package feedback records client ratings and folds them into staff
// performance.
package feedback

import (
	"errors"

	feedbackRepo "glowdesk/database/repository/feedback"
	staffRepo "glowdesk/database/repository/staff"
	"glowdesk/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrInvalidRating = errors.New("rating must be between 1 and 5")

// CreateFeedbackRequest submits a rating.
type CreateFeedbackRequest struct {
	ClientID      string `json:"clientId" binding:"required"`
	AppointmentID string `json:"appointmentId"`
	StaffID       string `json:"staffId"`
	Rating        int    `json:"rating" binding:"required"`
	Comment       string `json:"comment"`
	IsPublic      bool   `json:"isPublic"`
}

// FeedbackService is the ratings API.
type FeedbackService interface {
	Create(tenantID string, req CreateFeedbackRequest) (*models.Feedback, error)
	List(tenantID string, filter models.FeedbackFilter) ([]models.Feedback, error)
	Summary(tenantID string) (average float64, count int64, err error)
}

// DefaultFeedbackService is the production implementation.
type DefaultFeedbackService struct {
	feedback feedbackRepo.FeedbackRepository
	staff    staffRepo.StaffRepository
	logger   *zap.Logger
}

// NewFeedbackService wires a feedback service.
func NewFeedbackService(feedback feedbackRepo.FeedbackRepository, staff staffRepo.StaffRepository, logger *zap.Logger) *DefaultFeedbackService {
	return &DefaultFeedbackService{feedback: feedback, staff: staff, logger: logger}
}

// Create stores the rating and updates the staff member's rolling average
// when the feedback names one.
func (s *DefaultFeedbackService) Create(tenantID string, req CreateFeedbackRequest) (*models.Feedback, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}

	feedback := &models.Feedback{
		ID:            uuid.NewString(),
		TenantID:      tenantID,
		ClientID:      req.ClientID,
		AppointmentID: req.AppointmentID,
		StaffID:       req.StaffID,
		Rating:        req.Rating,
		Comment:       req.Comment,
		IsPublic:      req.IsPublic,
	}
	if err := s.feedback.Create(feedback); err != nil {
		return nil, err
	}

	if req.StaffID != "" {
		if err := s.staff.RecordRating(req.StaffID, req.Rating); err != nil {
			s.logger.Warn("failed to update staff rating", zap.String("staffId", req.StaffID), zap.Error(err))
		}
	}
	return feedback, nil
}

// List returns a tenant's feedback narrowed by the filter.
func (s *DefaultFeedbackService) List(tenantID string, filter models.FeedbackFilter) ([]models.Feedback, error) {
	return s.feedback.GetByTenant(tenantID, filter)
}

// Summary returns the tenant-wide average rating and rating count.
func (s *DefaultFeedbackService) Summary(tenantID string) (float64, int64, error) {
	return s.feedback.AverageRating(tenantID)
}
