package userRepo

import "glowdesk/models"

// UserRepository defines data access for login accounts.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetAdminByTenant(tenantID string) (*models.User, error)
	Update(user *models.User) error
}
