package serviceRepo

import "glowdesk/models"

// ServiceRepository defines data access for the tenant's service catalog.
type ServiceRepository interface {
	Create(service *models.Service) error
	GetByID(id string) (*models.Service, error)
	GetByTenant(tenantID string) ([]models.Service, error)
	GetActiveByTenant(tenantID string) ([]models.Service, error)
	FindActiveByName(tenantID, name string) (*models.Service, error)
	Update(service *models.Service) error
	Delete(id string) error
}
