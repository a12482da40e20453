// Package booking manages appointments: creation with conflict checks,
// status transitions with their side effects, and slot availability.
package booking

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	appointmentRepo "glowdesk/database/repository/appointment"
	clientRepo "glowdesk/database/repository/client"
	inventoryRepo "glowdesk/database/repository/inventory"
	serviceRepo "glowdesk/database/repository/service"
	staffRepo "glowdesk/database/repository/staff"
	"glowdesk/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Sentinel errors surfaced to handlers.
var (
	ErrSlotTaken         = errors.New("time slot is not available")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Default shift hours when a staff member has none configured.
const (
	defaultShiftStartHour = 9
	defaultShiftEndHour   = 18
	slotInterval          = 30 * time.Minute
)

// ReminderScheduler queues a pre-appointment reminder message.
type ReminderScheduler interface {
	ScheduleForAppointment(appointment *models.Appointment, phone string) error
}

// Notifier delivers booking lifecycle messages to clients and staff.
type Notifier interface {
	NotifyAppointmentBooked(ctx context.Context, appointment *models.Appointment) error
	NotifyAppointmentCancelled(ctx context.Context, appointment *models.Appointment) error
}

// CreateAppointmentRequest carries the fields needed to book.
type CreateAppointmentRequest struct {
	BranchID    string    `json:"branchId" binding:"required"`
	ClientID    string    `json:"clientId" binding:"required"`
	ServiceID   string    `json:"serviceId" binding:"required"`
	StaffID     string    `json:"staffId" binding:"required"`
	ScheduledAt time.Time `json:"scheduledAt" binding:"required"`
	Notes       string    `json:"notes"`
}

// BookingService is the appointment lifecycle API.
type BookingService interface {
	Create(tenantID string, req CreateAppointmentRequest) (*models.Appointment, error)
	GetByID(tenantID, id string) (*models.Appointment, error)
	List(tenantID string, filter models.AppointmentFilter) ([]models.Appointment, error)
	UpdateStatus(tenantID, id, status string) (*models.Appointment, error)
	AvailableSlots(staffID string, date time.Time) ([]time.Time, error)
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	appointments appointmentRepo.AppointmentRepository
	services     serviceRepo.ServiceRepository
	staff        staffRepo.StaffRepository
	clients      clientRepo.ClientRepository
	inventory    inventoryRepo.InventoryRepository
	reminders    ReminderScheduler
	notifier     Notifier
	logger       *zap.Logger
	now          func() time.Time
}

// NewBookingService wires a booking service. reminders and notifier may be nil.
func NewBookingService(
	appointments appointmentRepo.AppointmentRepository,
	services serviceRepo.ServiceRepository,
	staff staffRepo.StaffRepository,
	clients clientRepo.ClientRepository,
	inventory inventoryRepo.InventoryRepository,
	reminders ReminderScheduler,
	notifier Notifier,
	logger *zap.Logger,
) *DefaultBookingService {
	return &DefaultBookingService{
		appointments: appointments,
		services:     services,
		staff:        staff,
		clients:      clients,
		inventory:    inventory,
		reminders:    reminders,
		notifier:     notifier,
		logger:       logger,
		now:          time.Now,
	}
}

// Create books an appointment after a conflict check.
func (s *DefaultBookingService) Create(tenantID string, req CreateAppointmentRequest) (*models.Appointment, error) {
	conflict, err := s.appointments.HasConflict(req.StaffID, req.BranchID, req.ScheduledAt)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, ErrSlotTaken
	}

	appointment := &models.Appointment{
		ID:          uuid.NewString(),
		TenantID:    tenantID,
		BranchID:    req.BranchID,
		ClientID:    req.ClientID,
		ServiceID:   req.ServiceID,
		StaffID:     req.StaffID,
		ScheduledAt: req.ScheduledAt,
		Status:      models.StatusBooked,
		Notes:       req.Notes,
	}
	if err := s.appointments.Create(appointment); err != nil {
		return nil, err
	}

	if err := s.clients.IncrementVisits(req.ClientID); err != nil {
		s.logger.Warn("failed to increment client visits", zap.String("clientId", req.ClientID), zap.Error(err))
	}

	if s.reminders != nil {
		client, err := s.clients.GetByID(req.ClientID)
		if err != nil {
			s.logger.Warn("failed to load client for reminder", zap.String("clientId", req.ClientID), zap.Error(err))
		} else if err := s.reminders.ScheduleForAppointment(appointment, client.Phone); err != nil {
			s.logger.Warn("failed to schedule reminder", zap.String("appointmentId", appointment.ID), zap.Error(err))
		}
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyAppointmentBooked(context.Background(), appointment); err != nil {
			s.logger.Warn("failed to notify booking", zap.String("appointmentId", appointment.ID), zap.Error(err))
		}
	}

	return appointment, nil
}

// GetByID fetches an appointment, enforcing tenant ownership.
func (s *DefaultBookingService) GetByID(tenantID, id string) (*models.Appointment, error) {
	appointment, err := s.appointments.GetByID(id)
	if err != nil {
		return nil, err
	}
	if appointment.TenantID != tenantID {
		return nil, fmt.Errorf("appointment with id %s not found", id)
	}
	return appointment, nil
}

// List returns a tenant's appointments narrowed by the filter.
func (s *DefaultBookingService) List(tenantID string, filter models.AppointmentFilter) ([]models.Appointment, error) {
	return s.appointments.GetByTenant(tenantID, filter)
}

// validTransitions maps a status to the statuses it may move to.
var validTransitions = map[string][]string{
	models.StatusBooked:  {models.StatusOngoing, models.StatusCompleted, models.StatusCancelled, models.StatusNoShow},
	models.StatusOngoing: {models.StatusCompleted, models.StatusCancelled},
}

func transitionAllowed(from, to string) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// UpdateStatus transitions an appointment. Completing it deducts the
// service's consumables from inventory and credits the staff member's
// performance.
func (s *DefaultBookingService) UpdateStatus(tenantID, id, status string) (*models.Appointment, error) {
	appointment, err := s.GetByID(tenantID, id)
	if err != nil {
		return nil, err
	}
	if !transitionAllowed(appointment.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appointment.Status, status)
	}

	var completedAt *time.Time
	if status == models.StatusCompleted {
		now := s.now()
		completedAt = &now
	}
	if err := s.appointments.UpdateStatus(id, status, completedAt); err != nil {
		return nil, err
	}
	appointment.Status = status
	appointment.CompletedAt = completedAt

	if status == models.StatusCompleted {
		s.applyCompletion(appointment)
	}
	if status == models.StatusCancelled && s.notifier != nil {
		if err := s.notifier.NotifyAppointmentCancelled(context.Background(), appointment); err != nil {
			s.logger.Warn("failed to notify cancellation", zap.String("appointmentId", appointment.ID), zap.Error(err))
		}
	}
	return appointment, nil
}

// applyCompletion runs the completion side effects. Failures are logged, not
// surfaced: the appointment is already completed at this point.
func (s *DefaultBookingService) applyCompletion(appointment *models.Appointment) {
	service, err := s.services.GetByID(appointment.ServiceID)
	if err != nil {
		s.logger.Error("failed to load service for completion", zap.String("serviceId", appointment.ServiceID), zap.Error(err))
		return
	}

	for _, item := range service.Items {
		if err := s.inventory.Deduct(item.InventoryItemID, item.Quantity); err != nil {
			s.logger.Error("failed to deduct consumable",
				zap.String("itemId", item.InventoryItemID),
				zap.Float64("quantity", item.Quantity),
				zap.Error(err))
		}
	}

	if err := s.staff.RecordCompletion(appointment.StaffID, service.Price); err != nil {
		s.logger.Error("failed to record staff completion", zap.String("staffId", appointment.StaffID), zap.Error(err))
	}
}

// AvailableSlots lists the staff member's open 30-minute slots for a day:
// within the shift window, clear of existing bookings, and not in the past.
func (s *DefaultBookingService) AvailableSlots(staffID string, date time.Time) ([]time.Time, error) {
	member, err := s.staff.GetByID(staffID)
	if err != nil {
		return nil, err
	}

	existing, err := s.appointments.GetForStaffOnDay(staffID, date)
	if err != nil {
		return nil, err
	}

	startHour := shiftHour(member.ShiftStart, defaultShiftStartHour)
	endHour := shiftHour(member.ShiftEnd, defaultShiftEndHour)
	now := s.now()

	var slots []time.Time
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	for slot := day.Add(time.Duration(startHour) * time.Hour); slot.Hour() < endHour; slot = slot.Add(slotInterval) {
		if !slot.After(now) {
			continue
		}
		if hasNearbyBooking(existing, slot) {
			continue
		}
		slots = append(slots, slot)
	}
	return slots, nil
}

func hasNearbyBooking(appointments []models.Appointment, slot time.Time) bool {
	for _, a := range appointments {
		diff := a.ScheduledAt.Sub(slot)
		if diff < 0 {
			diff = -diff
		}
		if diff < models.ConflictWindow {
			return true
		}
	}
	return false
}

// shiftHour parses the hour from a "HH:MM" shift boundary.
func shiftHour(shift string, fallback int) int {
	if shift == "" {
		return fallback
	}
	parts := strings.SplitN(shift, ":", 2)
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return fallback
	}
	return hour
}
