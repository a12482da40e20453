package inventoryRepo

import "glowdesk/models"

// InventoryRepository defines data access for stocked items.
type InventoryRepository interface {
	Create(item *models.InventoryItem) error
	GetByID(id string) (*models.InventoryItem, error)
	GetByTenant(tenantID string) ([]models.InventoryItem, error)
	Update(item *models.InventoryItem) error
	Delete(id string) error
	Deduct(id string, quantity float64) error
	GetLowStock(tenantID string) ([]models.InventoryItem, error)
}
