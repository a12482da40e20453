package appointmentRepo

import (
	"time"

	"glowdesk/models"
)

// AppointmentRepository defines data access for appointments.
type AppointmentRepository interface {
	Create(appointment *models.Appointment) error
	GetByID(id string) (*models.Appointment, error)
	GetByTenant(tenantID string, filter models.AppointmentFilter) ([]models.Appointment, error)
	Update(appointment *models.Appointment) error
	UpdateStatus(id, status string, completedAt *time.Time) error
	// HasConflict reports whether the staff member already has a booked or
	// ongoing appointment at the branch within the conflict window around at.
	HasConflict(staffID, branchID string, at time.Time) (bool, error)
	GetForStaffOnDay(staffID string, day time.Time) ([]models.Appointment, error)
	GetBetween(tenantID string, from, to time.Time) ([]models.Appointment, error)
	CountByStatus(tenantID, status string, from, to time.Time) (int64, error)
}
