package models

import "time"

// Loyalty tiers and their paid-spend thresholds.
const (
	TierSilver   = "Silver"
	TierGold     = "Gold"
	TierPlatinum = "Platinum"

	GoldThreshold     = 20000
	PlatinumThreshold = 50000
)

// LoyaltyTierForSpend maps a client's total paid spend to a loyalty tier.
func LoyaltyTierForSpend(totalSpend float64) string {
	switch {
	case totalSpend >= PlatinumThreshold:
		return TierPlatinum
	case totalSpend >= GoldThreshold:
		return TierGold
	default:
		return TierSilver
	}
}

// Client is a salon customer, unique per (tenant, phone).
type Client struct {
	ID          string     `bson:"id" json:"id"`
	TenantID    string     `bson:"tenantId" json:"tenantId"`
	Name        string     `bson:"name" json:"name"`
	Phone       string     `bson:"phone" json:"phone"`
	Email       string     `bson:"email,omitempty" json:"email,omitempty"`
	DateOfBirth *time.Time `bson:"dateOfBirth,omitempty" json:"dateOfBirth,omitempty"`
	Address     string     `bson:"address,omitempty" json:"address,omitempty"`
	Notes       string     `bson:"notes,omitempty" json:"notes,omitempty"`
	LoyaltyTier string     `bson:"loyaltyTier" json:"loyaltyTier"`
	TotalVisits int        `bson:"totalVisits" json:"totalVisits"`
	TotalSpend  float64    `bson:"totalSpend" json:"totalSpend"`
	CreatedAt   time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time  `bson:"updatedAt" json:"updatedAt"`
}
