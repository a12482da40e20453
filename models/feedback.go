package models

import "time"

// Feedback is a client rating, optionally tied to an appointment and staff member.
type Feedback struct {
	ID            string    `bson:"id" json:"id"`
	TenantID      string    `bson:"tenantId" json:"tenantId"`
	ClientID      string    `bson:"clientId" json:"clientId"`
	AppointmentID string    `bson:"appointmentId,omitempty" json:"appointmentId,omitempty"`
	StaffID       string    `bson:"staffId,omitempty" json:"staffId,omitempty"`
	Rating        int       `bson:"rating" json:"rating"` // 1..5
	Comment       string    `bson:"comment,omitempty" json:"comment,omitempty"`
	IsPublic      bool      `bson:"isPublic" json:"isPublic"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}

// FeedbackFilter narrows tenant-scoped feedback listings.
type FeedbackFilter struct {
	StaffID   string
	MinRating int
	StartDate *time.Time
	EndDate   *time.Time
}
