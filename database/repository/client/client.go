package clientRepo

import "glowdesk/models"

// ClientQuery narrows a tenant-scoped client listing.
type ClientQuery struct {
	Search      string
	LoyaltyTier string
	Page        int
	Limit       int
}

// ClientRepository defines data access for salon customers.
type ClientRepository interface {
	Create(client *models.Client) error
	GetByID(id string) (*models.Client, error)
	GetByPhone(tenantID, phone string) (*models.Client, error)
	GetByTenant(tenantID string, q ClientQuery) ([]models.Client, int64, error)
	Update(client *models.Client) error
	IncrementVisits(id string) error
	AddSpend(id string, amount float64) error
	SetLoyalty(id, tier string, totalSpend float64) error
	CountByVisits(tenantID string, repeat bool) (int64, error)
	GetWithBirthdays() ([]models.Client, error)
}
