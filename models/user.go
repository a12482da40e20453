package models

import "time"

// User roles.
const (
	RoleOwner        = "owner"
	RoleAdmin        = "admin"
	RoleReceptionist = "receptionist"
	RoleStaff        = "staff"
)

// User is a login account within a tenant (owner, admin, receptionist or staff).
type User struct {
	ID        string    `bson:"id" json:"id"`
	TenantID  string    `bson:"tenantId" json:"tenantId"`
	BranchID  string    `bson:"branchId,omitempty" json:"branchId,omitempty"`
	Email     string    `bson:"email" json:"email"`
	Password  string    `bson:"password" json:"-"`
	Name      string    `bson:"name" json:"name"`
	Phone     string    `bson:"phone" json:"phone"`
	Role      string    `bson:"role" json:"role"`
	FCMToken  string    `bson:"fcmToken,omitempty" json:"fcmToken,omitempty"`
	IsActive  bool      `bson:"isActive" json:"isActive"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
