package models

// ReminderPayload is the asynq task body for an appointment reminder.
type ReminderPayload struct {
	AppointmentID string `json:"appointmentId"`
	TenantID      string `json:"tenantId"`
	Phone         string `json:"phone"`
	Body          string `json:"body"`
}
