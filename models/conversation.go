package models

import "time"

// Conversation steps. The flow only moves forward; "cancel" deletes the state.
const (
	StepService = "service"
	StepDate    = "date"
	StepTime    = "time"
	StepStaff   = "staff"
	StepConfirm = "confirm"
)

// StaffOption is a staff candidate shown to the user during selection.
type StaffOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// ServiceOption is a catalog entry shown when no service matched.
type ServiceOption struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// ConversationState holds one in-flight WhatsApp booking negotiation,
// keyed by the customer's phone number.
type ConversationState struct {
	Phone          string          `json:"phone"`
	TenantID       string          `json:"tenantId,omitempty"`
	ClientID       string          `json:"clientId,omitempty"`
	Step           string          `json:"step"`
	ServiceID      string          `json:"serviceId,omitempty"`
	ServiceName    string          `json:"serviceName,omitempty"`
	SelectedDate   string          `json:"selectedDate,omitempty"` // YYYY-MM-DD
	SelectedTime   string          `json:"selectedTime,omitempty"` // RFC 3339
	StaffID        string          `json:"staffId,omitempty"`
	BranchID       string          `json:"branchId,omitempty"`
	AvailableSlots []string        `json:"availableSlots,omitempty"`
	StaffOptions   []StaffOption   `json:"staffOptions,omitempty"`
	ServiceOptions []ServiceOption `json:"serviceOptions,omitempty"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}
