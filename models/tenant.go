package models

import "time"

// Subscription lifecycle values.
const (
	SubscriptionTrial     = "trial"
	SubscriptionActive    = "active"
	SubscriptionExpired   = "expired"
	SubscriptionCancelled = "cancelled"
)

// Tenant is one salon business account. All data is scoped by tenant ID.
type Tenant struct {
	ID                 string    `bson:"id" json:"id"`
	BusinessName       string    `bson:"businessName" json:"businessName"`
	Logo               string    `bson:"logo,omitempty" json:"logo,omitempty"`
	SubscriptionPlan   string    `bson:"subscriptionPlan,omitempty" json:"subscriptionPlan,omitempty"`
	SubscriptionStatus string    `bson:"subscriptionStatus" json:"subscriptionStatus"`
	TrialEndsAt        time.Time `bson:"trialEndsAt,omitempty" json:"trialEndsAt,omitempty"`
	CreatedAt          time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time `bson:"updatedAt" json:"updatedAt"`
}
