package models

import "time"

// ServiceItem is a consumable deducted from inventory when the service completes.
type ServiceItem struct {
	InventoryItemID string  `bson:"inventoryItemId" json:"inventoryItemId"`
	Quantity        float64 `bson:"quantity" json:"quantity"`
	Unit            string  `bson:"unit" json:"unit"`
}

// Service is an offering of a tenant (haircut, pedicure, ...). Staff eligible
// to perform it are linked by ID; consumables are embedded.
type Service struct {
	ID          string        `bson:"id" json:"id"`
	TenantID    string        `bson:"tenantId" json:"tenantId"`
	Name        string        `bson:"name" json:"name"`
	Description string        `bson:"description,omitempty" json:"description,omitempty"`
	Duration    int           `bson:"duration" json:"duration"` // minutes
	Price       float64       `bson:"price" json:"price"`
	IsActive    bool          `bson:"isActive" json:"isActive"`
	StaffIDs    []string      `bson:"staffIds,omitempty" json:"staffIds,omitempty"`
	Items       []ServiceItem `bson:"items,omitempty" json:"items,omitempty"`
	CreatedAt   time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time     `bson:"updatedAt" json:"updatedAt"`
}
