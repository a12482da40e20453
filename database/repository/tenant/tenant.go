package tenantRepo

import "glowdesk/models"

// TenantRepository defines data access for salon business accounts.
type TenantRepository interface {
	Create(tenant *models.Tenant) error
	GetByID(id string) (*models.Tenant, error)
	GetAll() ([]models.Tenant, error)
	Update(tenant *models.Tenant) error
}
