package feedbackRepo

import "glowdesk/models"

// FeedbackRepository defines data access for client ratings.
type FeedbackRepository interface {
	Create(feedback *models.Feedback) error
	GetByID(id string) (*models.Feedback, error)
	GetByTenant(tenantID string, filter models.FeedbackFilter) ([]models.Feedback, error)
	AverageRating(tenantID string) (float64, int64, error)
}
