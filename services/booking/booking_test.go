package booking

import (
	"context"
	"fmt"
	"testing"
	"time"

	clientRepo "glowdesk/database/repository/client"
	"glowdesk/models"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubAppointments struct {
	appointments []models.Appointment
}

func (s *stubAppointments) Create(appointment *models.Appointment) error {
	s.appointments = append(s.appointments, *appointment)
	return nil
}

func (s *stubAppointments) GetByID(id string) (*models.Appointment, error) {
	for i := range s.appointments {
		if s.appointments[i].ID == id {
			cp := s.appointments[i]
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("appointment with id %s not found", id)
}

func (s *stubAppointments) GetByTenant(string, models.AppointmentFilter) ([]models.Appointment, error) {
	return s.appointments, nil
}

func (s *stubAppointments) Update(*models.Appointment) error { return nil }

func (s *stubAppointments) UpdateStatus(id, status string, completedAt *time.Time) error {
	for i := range s.appointments {
		if s.appointments[i].ID == id {
			s.appointments[i].Status = status
			s.appointments[i].CompletedAt = completedAt
		}
	}
	return nil
}

func (s *stubAppointments) HasConflict(staffID, branchID string, at time.Time) (bool, error) {
	for _, a := range s.appointments {
		if a.StaffID != staffID || a.BranchID != branchID {
			continue
		}
		if a.Status != models.StatusBooked && a.Status != models.StatusOngoing {
			continue
		}
		diff := a.ScheduledAt.Sub(at)
		if diff < 0 {
			diff = -diff
		}
		if diff < models.ConflictWindow {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubAppointments) GetForStaffOnDay(staffID string, day time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range s.appointments {
		if a.StaffID == staffID && a.ScheduledAt.Year() == day.Year() && a.ScheduledAt.YearDay() == day.YearDay() {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *stubAppointments) GetBetween(string, time.Time, time.Time) ([]models.Appointment, error) {
	return s.appointments, nil
}

func (s *stubAppointments) CountByStatus(string, string, time.Time, time.Time) (int64, error) {
	return int64(len(s.appointments)), nil
}

type stubServices struct {
	services map[string]*models.Service
}

func (s *stubServices) Create(*models.Service) error { return nil }

func (s *stubServices) GetByID(id string) (*models.Service, error) {
	if svc, ok := s.services[id]; ok {
		return svc, nil
	}
	return nil, fmt.Errorf("service with id %s not found", id)
}

func (s *stubServices) GetByTenant(string) ([]models.Service, error)       { return nil, nil }
func (s *stubServices) GetActiveByTenant(string) ([]models.Service, error) { return nil, nil }
func (s *stubServices) FindActiveByName(string, string) (*models.Service, error) {
	return nil, nil
}
func (s *stubServices) Update(*models.Service) error { return nil }
func (s *stubServices) Delete(string) error          { return nil }

type stubStaff struct {
	members     map[string]*models.Staff
	completions map[string]float64
}

func (s *stubStaff) Create(*models.Staff) error { return nil }

func (s *stubStaff) GetByID(id string) (*models.Staff, error) {
	if m, ok := s.members[id]; ok {
		return m, nil
	}
	return nil, fmt.Errorf("staff with id %s not found", id)
}

func (s *stubStaff) GetByIDs([]string) ([]models.Staff, error)        { return nil, nil }
func (s *stubStaff) GetByTenant(string) ([]models.Staff, error)       { return nil, nil }
func (s *stubStaff) GetActiveByTenant(string) ([]models.Staff, error) { return nil, nil }
func (s *stubStaff) Update(*models.Staff) error                       { return nil }

func (s *stubStaff) RecordCompletion(staffID string, revenue float64) error {
	if s.completions == nil {
		s.completions = make(map[string]float64)
	}
	s.completions[staffID] += revenue
	return nil
}

func (s *stubStaff) RecordRating(string, int) error { return nil }

type stubClients struct {
	clients map[string]*models.Client
	visits  map[string]int
}

func (s *stubClients) Create(*models.Client) error { return nil }

func (s *stubClients) GetByID(id string) (*models.Client, error) {
	if c, ok := s.clients[id]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("client with id %s not found", id)
}

func (s *stubClients) GetByPhone(string, string) (*models.Client, error) { return nil, nil }
func (s *stubClients) GetByTenant(string, clientRepo.ClientQuery) ([]models.Client, int64, error) {
	return nil, 0, nil
}
func (s *stubClients) Update(*models.Client) error { return nil }

func (s *stubClients) IncrementVisits(id string) error {
	if s.visits == nil {
		s.visits = make(map[string]int)
	}
	s.visits[id]++
	return nil
}

func (s *stubClients) AddSpend(string, float64) error            { return nil }
func (s *stubClients) SetLoyalty(string, string, float64) error  { return nil }
func (s *stubClients) CountByVisits(string, bool) (int64, error) { return 0, nil }
func (s *stubClients) GetWithBirthdays() ([]models.Client, error) {
	return nil, nil
}

type stubInventory struct {
	deductions map[string]float64
}

func (s *stubInventory) Create(*models.InventoryItem) error { return nil }
func (s *stubInventory) GetByID(string) (*models.InventoryItem, error) {
	return nil, nil
}
func (s *stubInventory) GetByTenant(string) ([]models.InventoryItem, error) { return nil, nil }
func (s *stubInventory) Update(*models.InventoryItem) error                 { return nil }
func (s *stubInventory) Delete(string) error                                { return nil }

func (s *stubInventory) Deduct(id string, quantity float64) error {
	if s.deductions == nil {
		s.deductions = make(map[string]float64)
	}
	s.deductions[id] += quantity
	return nil
}

func (s *stubInventory) GetLowStock(string) ([]models.InventoryItem, error) { return nil, nil }

type stubReminders struct {
	phones []string
}

func (s *stubReminders) ScheduleForAppointment(_ *models.Appointment, phone string) error {
	s.phones = append(s.phones, phone)
	return nil
}

type stubNotifier struct {
	booked    []string
	cancelled []string
}

func (s *stubNotifier) NotifyAppointmentBooked(_ context.Context, appointment *models.Appointment) error {
	s.booked = append(s.booked, appointment.ID)
	return nil
}

func (s *stubNotifier) NotifyAppointmentCancelled(_ context.Context, appointment *models.Appointment) error {
	s.cancelled = append(s.cancelled, appointment.ID)
	return nil
}

type bookingFixture struct {
	svc          *DefaultBookingService
	appointments *stubAppointments
	services     *stubServices
	staff        *stubStaff
	clients      *stubClients
	inventory    *stubInventory
	reminders    *stubReminders
	notifier     *stubNotifier
}

func newBookingFixture(now time.Time) *bookingFixture {
	f := &bookingFixture{
		appointments: &stubAppointments{},
		services: &stubServices{services: map[string]*models.Service{
			"svc-1": {
				ID:       "svc-1",
				TenantID: "tenant-1",
				Name:     "Haircut",
				Price:    500,
				Duration: 30,
				IsActive: true,
				Items: []models.ServiceItem{
					{InventoryItemID: "shampoo", Quantity: 30, Unit: "ml"},
					{InventoryItemID: "conditioner", Quantity: 10, Unit: "ml"},
				},
			},
		}},
		staff: &stubStaff{members: map[string]*models.Staff{
			"staff-1": {ID: "staff-1", TenantID: "tenant-1", Name: "Asha", IsActive: true},
		}},
		clients: &stubClients{clients: map[string]*models.Client{
			"client-1": {ID: "client-1", TenantID: "tenant-1", Name: "Rhea", Phone: "+911234567890"},
		}},
		inventory: &stubInventory{},
		reminders: &stubReminders{},
		notifier:  &stubNotifier{},
	}
	f.svc = NewBookingService(f.appointments, f.services, f.staff, f.clients, f.inventory, f.reminders, f.notifier, zap.NewNop())
	f.svc.now = func() time.Time { return now }
	return f
}

var bookingClock = time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC)

func validRequest(at time.Time) CreateAppointmentRequest {
	return CreateAppointmentRequest{
		BranchID:    "branch-1",
		ClientID:    "client-1",
		ServiceID:   "svc-1",
		StaffID:     "staff-1",
		ScheduledAt: at,
	}
}

func TestCreateBooksAndSchedulesReminder(t *testing.T) {
	f := newBookingFixture(bookingClock)

	at := time.Date(2026, time.March, 10, 15, 0, 0, 0, time.UTC)
	appointment, err := f.svc.Create("tenant-1", validRequest(at))
	require.NoError(t, err)
	require.Equal(t, models.StatusBooked, appointment.Status)
	require.Equal(t, at, appointment.ScheduledAt)
	require.NotEmpty(t, appointment.ID)

	require.Equal(t, 1, f.clients.visits["client-1"])
	require.Equal(t, []string{"+911234567890"}, f.reminders.phones)
	require.Equal(t, []string{appointment.ID}, f.notifier.booked)
}

func TestCreateRejectsConflictingSlot(t *testing.T) {
	f := newBookingFixture(bookingClock)

	at := time.Date(2026, time.March, 10, 15, 0, 0, 0, time.UTC)
	_, err := f.svc.Create("tenant-1", validRequest(at))
	require.NoError(t, err)

	// 15 minutes later is inside the conflict window.
	_, err = f.svc.Create("tenant-1", validRequest(at.Add(15*time.Minute)))
	require.ErrorIs(t, err, ErrSlotTaken)
	require.Len(t, f.appointments.appointments, 1)
}

func TestGetByIDEnforcesTenantOwnership(t *testing.T) {
	f := newBookingFixture(bookingClock)

	at := time.Date(2026, time.March, 10, 15, 0, 0, 0, time.UTC)
	appointment, err := f.svc.Create("tenant-1", validRequest(at))
	require.NoError(t, err)

	_, err = f.svc.GetByID("tenant-2", appointment.ID)
	require.Error(t, err)
}

func TestUpdateStatusRejectsInvalidTransition(t *testing.T) {
	f := newBookingFixture(bookingClock)

	at := time.Date(2026, time.March, 10, 15, 0, 0, 0, time.UTC)
	appointment, err := f.svc.Create("tenant-1", validRequest(at))
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus("tenant-1", appointment.ID, models.StatusCompleted)
	require.NoError(t, err)

	// Completed is terminal.
	_, err = f.svc.UpdateStatus("tenant-1", appointment.ID, models.StatusOngoing)
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCompletionDeductsConsumablesAndCreditsStaff(t *testing.T) {
	f := newBookingFixture(bookingClock)

	at := time.Date(2026, time.March, 10, 15, 0, 0, 0, time.UTC)
	appointment, err := f.svc.Create("tenant-1", validRequest(at))
	require.NoError(t, err)

	updated, err := f.svc.UpdateStatus("tenant-1", appointment.ID, models.StatusCompleted)
	require.NoError(t, err)
	require.NotNil(t, updated.CompletedAt)

	require.Equal(t, float64(30), f.inventory.deductions["shampoo"])
	require.Equal(t, float64(10), f.inventory.deductions["conditioner"])
	require.Equal(t, float64(500), f.staff.completions["staff-1"])
}

func TestCancellationHasNoCompletionSideEffects(t *testing.T) {
	f := newBookingFixture(bookingClock)

	at := time.Date(2026, time.March, 10, 15, 0, 0, 0, time.UTC)
	appointment, err := f.svc.Create("tenant-1", validRequest(at))
	require.NoError(t, err)

	updated, err := f.svc.UpdateStatus("tenant-1", appointment.ID, models.StatusCancelled)
	require.NoError(t, err)
	require.Nil(t, updated.CompletedAt)
	require.Empty(t, f.inventory.deductions)
	require.Empty(t, f.staff.completions)
	require.Equal(t, []string{appointment.ID}, f.notifier.cancelled)
}

func TestAvailableSlotsRespectShiftBookingsAndClock(t *testing.T) {
	f := newBookingFixture(bookingClock)

	day := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	booked := time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC)
	_, err := f.svc.Create("tenant-1", validRequest(booked))
	require.NoError(t, err)

	slots, err := f.svc.AvailableSlots("staff-1", day)
	require.NoError(t, err)

	// Default shift 09:00-18:00 yields 18 half-hour slots; the 10:00 booking
	// blocks 09:30, 10:00 and 10:30.
	require.Len(t, slots, 15)
	require.Equal(t, time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC), slots[0])
	for _, slot := range slots {
		diff := slot.Sub(booked)
		if diff < 0 {
			diff = -diff
		}
		require.GreaterOrEqual(t, diff, models.ConflictWindow, "slot %v too close to booking", slot)
	}
}

func TestAvailableSlotsUsesConfiguredShift(t *testing.T) {
	f := newBookingFixture(bookingClock)
	f.staff.members["staff-1"].ShiftStart = "11:00"
	f.staff.members["staff-1"].ShiftEnd = "14:00"

	day := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	slots, err := f.svc.AvailableSlots("staff-1", day)
	require.NoError(t, err)

	require.Len(t, slots, 6)
	require.Equal(t, time.Date(2026, time.March, 10, 11, 0, 0, 0, time.UTC), slots[0])
	require.Equal(t, time.Date(2026, time.March, 10, 13, 30, 0, 0, time.UTC), slots[5])
}

func TestAvailableSlotsSkipsThePast(t *testing.T) {
	// Mid-afternoon: only the rest of the day remains.
	f := newBookingFixture(time.Date(2026, time.March, 10, 16, 0, 0, 0, time.UTC))

	day := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	slots, err := f.svc.AvailableSlots("staff-1", day)
	require.NoError(t, err)

	require.Len(t, slots, 3) // 16:30, 17:00 and 17:30
	require.Equal(t, time.Date(2026, time.March, 10, 16, 30, 0, 0, time.UTC), slots[0])
}
