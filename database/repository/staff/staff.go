package staffRepo

import "glowdesk/models"

// StaffRepository defines data access for staff members and their performance.
type StaffRepository interface {
	Create(staff *models.Staff) error
	GetByID(id string) (*models.Staff, error)
	GetByIDs(ids []string) ([]models.Staff, error)
	GetByTenant(tenantID string) ([]models.Staff, error)
	GetActiveByTenant(tenantID string) ([]models.Staff, error)
	Update(staff *models.Staff) error
	RecordCompletion(staffID string, revenue float64) error
	RecordRating(staffID string, rating int) error
}
