package models

import "time"

// InventoryItem is a stocked product or consumable.
type InventoryItem struct {
	ID           string    `bson:"id" json:"id"`
	TenantID     string    `bson:"tenantId" json:"tenantId"`
	Name         string    `bson:"name" json:"name"`
	Unit         string    `bson:"unit" json:"unit"`
	Quantity     float64   `bson:"quantity" json:"quantity"`
	Threshold    float64   `bson:"threshold" json:"threshold"`
	Supplier     string    `bson:"supplier,omitempty" json:"supplier,omitempty"`
	CostPrice    float64   `bson:"costPrice,omitempty" json:"costPrice,omitempty"`
	SellingPrice float64   `bson:"sellingPrice,omitempty" json:"sellingPrice,omitempty"`
	IsActive     bool      `bson:"isActive" json:"isActive"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// LowStock reports whether the item has fallen to or below its threshold.
func (i InventoryItem) LowStock() bool {
	return i.Quantity <= i.Threshold
}
