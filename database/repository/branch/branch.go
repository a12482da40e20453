package branchRepo

import "glowdesk/models"

// BranchRepository defines data access for salon branches.
type BranchRepository interface {
	Create(branch *models.Branch) error
	GetByID(id string) (*models.Branch, error)
	GetByTenant(tenantID string) ([]models.Branch, error)
	Update(branch *models.Branch) error
	Delete(id string) error
}
