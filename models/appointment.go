package models

import "time"

// Appointment status values.
const (
	StatusBooked    = "booked"
	StatusOngoing   = "ongoing"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusNoShow    = "no-show"
)

// ConflictWindow is the exclusion zone around a booking for the same
// staff member and branch.
const ConflictWindow = 30 * time.Minute

// Appointment is one scheduled service for a client.
type Appointment struct {
	ID          string     `bson:"id" json:"id"`
	TenantID    string     `bson:"tenantId" json:"tenantId"`
	BranchID    string     `bson:"branchId" json:"branchId"`
	ClientID    string     `bson:"clientId" json:"clientId"`
	ServiceID   string     `bson:"serviceId" json:"serviceId"`
	StaffID     string     `bson:"staffId" json:"staffId"`
	ScheduledAt time.Time  `bson:"scheduledAt" json:"scheduledAt"`
	Status      string     `bson:"status" json:"status"`
	Notes       string     `bson:"notes,omitempty" json:"notes,omitempty"`
	CompletedAt *time.Time `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	CreatedAt   time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// AppointmentFilter narrows tenant-scoped appointment listings.
type AppointmentFilter struct {
	Status    string
	StaffID   string
	ClientID  string
	BranchID  string
	StartDate *time.Time
	EndDate   *time.Time
}
