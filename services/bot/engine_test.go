package bot

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	clientRepo "glowdesk/database/repository/client"
	"glowdesk/models"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// In-memory fakes for the engine's collaborators.

type memStore struct {
	states map[string]*models.ConversationState
}

func newMemStore() *memStore {
	return &memStore{states: make(map[string]*models.ConversationState)}
}

func (s *memStore) Get(_ context.Context, phone string) (*models.ConversationState, error) {
	state, ok := s.states[phone]
	if !ok {
		return nil, nil
	}
	cp := *state
	return &cp, nil
}

func (s *memStore) Set(_ context.Context, state *models.ConversationState) error {
	cp := *state
	s.states[state.Phone] = &cp
	return nil
}

func (s *memStore) Delete(_ context.Context, phone string) error {
	delete(s.states, phone)
	return nil
}

type fakeServices struct {
	services []models.Service
}

func (f *fakeServices) Create(service *models.Service) error {
	f.services = append(f.services, *service)
	return nil
}

func (f *fakeServices) GetByID(id string) (*models.Service, error) {
	for i := range f.services {
		if f.services[i].ID == id {
			return &f.services[i], nil
		}
	}
	return nil, fmt.Errorf("service with id %s not found", id)
}

func (f *fakeServices) GetByTenant(tenantID string) ([]models.Service, error) {
	var out []models.Service
	for _, s := range f.services {
		if s.TenantID == tenantID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeServices) GetActiveByTenant(tenantID string) ([]models.Service, error) {
	var out []models.Service
	for _, s := range f.services {
		if s.TenantID == tenantID && s.IsActive {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeServices) FindActiveByName(tenantID, name string) (*models.Service, error) {
	for i := range f.services {
		if f.services[i].TenantID == tenantID && f.services[i].IsActive &&
			strings.EqualFold(f.services[i].Name, name) {
			return &f.services[i], nil
		}
	}
	return nil, nil
}

func (f *fakeServices) Update(*models.Service) error { return nil }
func (f *fakeServices) Delete(string) error          { return nil }

type fakeBranches struct {
	branches []models.Branch
}

func (f *fakeBranches) Create(branch *models.Branch) error {
	f.branches = append(f.branches, *branch)
	return nil
}

func (f *fakeBranches) GetByID(id string) (*models.Branch, error) {
	for i := range f.branches {
		if f.branches[i].ID == id {
			return &f.branches[i], nil
		}
	}
	return nil, fmt.Errorf("branch with id %s not found", id)
}

func (f *fakeBranches) GetByTenant(tenantID string) ([]models.Branch, error) {
	var out []models.Branch
	for _, b := range f.branches {
		if b.TenantID == tenantID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBranches) Update(*models.Branch) error { return nil }
func (f *fakeBranches) Delete(string) error         { return nil }

type fakeStaff struct {
	members []models.Staff
}

func (f *fakeStaff) Create(member *models.Staff) error {
	f.members = append(f.members, *member)
	return nil
}

func (f *fakeStaff) GetByID(id string) (*models.Staff, error) {
	for i := range f.members {
		if f.members[i].ID == id {
			return &f.members[i], nil
		}
	}
	return nil, fmt.Errorf("staff with id %s not found", id)
}

func (f *fakeStaff) GetByIDs(ids []string) ([]models.Staff, error) {
	var out []models.Staff
	for _, id := range ids {
		for _, m := range f.members {
			if m.ID == id {
				out = append(out, m)
			}
		}
	}
	return out, nil
}

func (f *fakeStaff) GetByTenant(tenantID string) ([]models.Staff, error) {
	var out []models.Staff
	for _, m := range f.members {
		if m.TenantID == tenantID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeStaff) GetActiveByTenant(tenantID string) ([]models.Staff, error) {
	var out []models.Staff
	for _, m := range f.members {
		if m.TenantID == tenantID && m.IsActive {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeStaff) Update(*models.Staff) error             { return nil }
func (f *fakeStaff) RecordCompletion(string, float64) error { return nil }
func (f *fakeStaff) RecordRating(string, int) error         { return nil }

type fakeAppointments struct {
	appointments []models.Appointment
}

func (f *fakeAppointments) Create(appointment *models.Appointment) error {
	f.appointments = append(f.appointments, *appointment)
	return nil
}

func (f *fakeAppointments) GetByID(id string) (*models.Appointment, error) {
	for i := range f.appointments {
		if f.appointments[i].ID == id {
			return &f.appointments[i], nil
		}
	}
	return nil, fmt.Errorf("appointment with id %s not found", id)
}

func (f *fakeAppointments) GetByTenant(string, models.AppointmentFilter) ([]models.Appointment, error) {
	return f.appointments, nil
}

func (f *fakeAppointments) Update(*models.Appointment) error { return nil }

func (f *fakeAppointments) UpdateStatus(id, status string, completedAt *time.Time) error {
	for i := range f.appointments {
		if f.appointments[i].ID == id {
			f.appointments[i].Status = status
			f.appointments[i].CompletedAt = completedAt
		}
	}
	return nil
}

func (f *fakeAppointments) HasConflict(staffID, branchID string, at time.Time) (bool, error) {
	for _, a := range f.appointments {
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

func (f *fakeAppointments) GetForStaffOnDay(staffID string, day time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.appointments {
		if a.StaffID == staffID && a.ScheduledAt.YearDay() == day.YearDay() && a.ScheduledAt.Year() == day.Year() {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointments) GetBetween(tenantID string, from, to time.Time) ([]models.Appointment, error) {
	return f.appointments, nil
}

func (f *fakeAppointments) CountByStatus(string, string, time.Time, time.Time) (int64, error) {
	return int64(len(f.appointments)), nil
}

type fakeClients struct {
	clients []models.Client
	visits  map[string]int
}

func (f *fakeClients) Create(client *models.Client) error {
	f.clients = append(f.clients, *client)
	return nil
}

func (f *fakeClients) GetByID(id string) (*models.Client, error) {
	for i := range f.clients {
		if f.clients[i].ID == id {
			return &f.clients[i], nil
		}
	}
	return nil, fmt.Errorf("client with id %s not found", id)
}

func (f *fakeClients) GetByPhone(tenantID, phone string) (*models.Client, error) {
	for i := range f.clients {
		if f.clients[i].TenantID == tenantID && f.clients[i].Phone == phone {
			return &f.clients[i], nil
		}
	}
	return nil, nil
}

func (f *fakeClients) GetByTenant(string, clientRepo.ClientQuery) ([]models.Client, int64, error) {
	return f.clients, int64(len(f.clients)), nil
}

func (f *fakeClients) Update(*models.Client) error { return nil }

func (f *fakeClients) IncrementVisits(id string) error {
	if f.visits == nil {
		f.visits = make(map[string]int)
	}
	f.visits[id]++
	return nil
}

func (f *fakeClients) AddSpend(string, float64) error           { return nil }
func (f *fakeClients) SetLoyalty(string, string, float64) error { return nil }
func (f *fakeClients) CountByVisits(string, bool) (int64, error) {
	return int64(len(f.clients)), nil
}
func (f *fakeClients) GetWithBirthdays() ([]models.Client, error) { return nil, nil }

type fakeReminders struct {
	scheduled []string // appointment IDs
	phones    []string
}

func (f *fakeReminders) ScheduleForAppointment(appointment *models.Appointment, phone string) error {
	f.scheduled = append(f.scheduled, appointment.ID)
	f.phones = append(f.phones, phone)
	return nil
}

// fixture bundles an engine with its fakes, pinned to a fixed clock.

type fixture struct {
	engine       *Engine
	store        *memStore
	services     *fakeServices
	branches     *fakeBranches
	staff        *fakeStaff
	appointments *fakeAppointments
	clients      *fakeClients
	reminders    *fakeReminders
	now          time.Time
}

func newFixture(now time.Time) *fixture {
	f := &fixture{
		store:        newMemStore(),
		services:     &fakeServices{},
		branches:     &fakeBranches{},
		staff:        &fakeStaff{},
		appointments: &fakeAppointments{},
		clients:      &fakeClients{},
		reminders:    &fakeReminders{},
		now:          now,
	}
	f.engine = NewEngine(Deps{
		Store:        f.store,
		Services:     f.services,
		Branches:     f.branches,
		Staff:        f.staff,
		Appointments: f.appointments,
		Clients:      f.clients,
		Reminders:    f.reminders,
	}, zap.NewNop())
	f.engine.now = func() time.Time { return now }
	return f
}

// seedSalon loads a single-branch salon with a haircut and a pedicure.
// staffCount controls how many stylists can perform the haircut.
func (f *fixture) seedSalon(staffCount int) {
	f.branches.branches = []models.Branch{{ID: "branch-1", TenantID: "tenant-1", Name: "Main Branch"}}

	names := []string{"Asha", "Meera", "Priya"}
	var staffIDs []string
	for i := 0; i < staffCount; i++ {
		id := fmt.Sprintf("staff-%d", i+1)
		staffIDs = append(staffIDs, id)
		f.staff.members = append(f.staff.members, models.Staff{
			ID:       id,
			TenantID: "tenant-1",
			BranchID: "branch-1",
			Name:     names[i],
			Role:     "Stylist",
			IsActive: true,
		})
	}

	f.services.services = []models.Service{
		{ID: "svc-haircut", TenantID: "tenant-1", Name: "Haircut", Duration: 30, Price: 500, IsActive: true, StaffIDs: staffIDs},
		{ID: "svc-pedicure", TenantID: "tenant-1", Name: "Pedicure", Duration: 45, Price: 400, IsActive: true, StaffIDs: staffIDs},
	}
}

func (f *fixture) send(t *testing.T, phone, message string) string {
	t.Helper()
	reply, err := f.engine.ProcessMessage(context.Background(), phone, message, "tenant-1")
	require.NoError(t, err)
	return reply
}

var testClock = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func TestServiceMatchedInsideSentence(t *testing.T) {
	f := newFixture(testClock)
	f.seedSalon(1)

	reply := f.send(t, "+911111111111", "I want a haircut")
	require.Contains(t, reply, `Great! I found "Haircut" (₹500, 30 min)`)
	require.Contains(t, reply, "When would you like to book?")

	state := f.store.states["+911111111111"]
	require.NotNil(t, state)
	require.Equal(t, models.StepDate, state.Step)
	require.Equal(t, "svc-haircut", state.ServiceID)
	require.Equal(t, "branch-1", state.BranchID, "single branch should be picked automatically")
}

func TestUnknownServiceShowsCatalogAndAcceptsNumber(t *testing.T) {
	f := newFixture(testClock)
	f.seedSalon(1)

	reply := f.send(t, "+911111111111", "book something nice")
	require.Contains(t, reply, "Please select a service:")
	require.Contains(t, reply, "1. Haircut - ₹500")
	require.Contains(t, reply, "2. Pedicure - ₹400")

	reply = f.send(t, "+911111111111", "2")
	require.Contains(t, reply, `Great! I found "Pedicure" (₹400, 45 min)`)

	state := f.store.states["+911111111111"]
	require.Equal(t, "svc-pedicure", state.ServiceID)
	require.Empty(t, state.ServiceOptions, "catalog options should be cleared after selection")
}

func TestVanishedServiceSelectionReprompts(t *testing.T) {
	f := newFixture(testClock)
	f.seedSalon(1)

	f.send(t, "+911111111111", "book something nice")

	// The catalog list was shown, then the service disappears before the
	// customer picks it.
	f.services.services = nil
	reply := f.send(t, "+911111111111", "1")

	require.Equal(t, replyTryAgain, reply)
	require.Empty(t, f.appointments.appointments)
}

func TestDateAndTimeInOneMessageBooksWithSoleStylist(t *testing.T) {
	f := newFixture(testClock)
	f.seedSalon(1)

	f.send(t, "+911111111111", "haircut")
	reply := f.send(t, "+911111111111", "today at 5 PM")

	require.Contains(t, reply, "✅ Appointment confirmed!")
	require.Contains(t, reply, "Service: Haircut")
	require.Contains(t, reply, "Staff: Asha")
	require.Contains(t, reply, "We'll send you a reminder 1 hour before.")

	require.Len(t, f.appointments.appointments, 1)
	booked := f.appointments.appointments[0]
	require.Equal(t, models.StatusBooked, booked.Status)
	require.Equal(t, time.Date(2026, time.March, 10, 17, 0, 0, 0, time.UTC), booked.ScheduledAt)

	require.Nil(t, f.store.states["+911111111111"], "conversation should end after confirmation")
	require.Equal(t, []string{booked.ID}, f.reminders.scheduled)
}

func TestBareTimeDefaultsToToday(t *testing.T) {
	f := newFixture(testClock)
	f.seedSalon(2)

	f.send(t, "+911111111111", "haircut")
	reply := f.send(t, "+911111111111", "5 PM")

	// Two eligible stylists: the flow stops to ask which one.
	require.Contains(t, reply, "Please select a staff member:")
	require.Contains(t, reply, "1. Asha (Stylist)")
	require.Contains(t, reply, "2. Meera (Stylist)")

	state := f.store.states["+911111111111"]
	require.Equal(t, "2026-03-10", state.SelectedDate, "a bare time should book for today")
	require.Equal(t, time.Date(2026, time.March, 10, 17, 0, 0, 0, time.UTC).Format(time.RFC3339), state.SelectedTime)
}

func TestBareClockTimeDefaultsToToday(t *testing.T) {
	f := newFixture(testClock)
	f.seedSalon(1)

	f.send(t, "+911111111111", "haircut")
	reply := f.send(t, "+911111111111", "10:30")

	// The 30 in "10:30" is minutes, not a day of the month.
	require.Contains(t, reply, "✅ Appointment confirmed!")
	require.Len(t, f.appointments.appointments, 1)
	require.Equal(t, time.Date(2026, time.March, 10, 10, 30, 0, 0, time.UTC), f.appointments.appointments[0].ScheduledAt)
}

func TestStaffSelectedByNumber(t *testing.T) {
	f := newFixture(testClock)
	f.seedSalon(2)

	f.send(t, "+911111111111", "haircut")
	f.send(t, "+911111111111", "today at 5 PM")
	reply := f.send(t, "+911111111111", "2")

	require.Contains(t, reply, "✅ Appointment confirmed!")
	require.Contains(t, reply, "Staff: Meera")
	require.Len(t, f.appointments.appointments, 1)
	require.Equal(t, "staff-2", f.appointments.appointments[0].StaffID)
}

func TestInvalidStaffSelectionReprompts(t *testing.T) {
	f := newFixture(testClock)
	f.seedSalon(2)

	f.send(t, "+911111111111", "haircut")
	f.send(t, "+911111111111", "today at 5 PM")
	reply := f.send(t, "+911111111111", "9")

	require.Equal(t, replyInvalidStaff, reply)
	require.Empty(t, f.appointments.appointments)
}

func TestConflictAtConfirmRoutesBackToTime(t *testing.T) {
	f := newFixture(testClock)
	f.seedSalon(1)
	f.appointments.appointments = []models.Appointment{{
		ID:          "existing",
		TenantID:    "tenant-1",
		BranchID:    "branch-1",
		StaffID:     "staff-1",
		ScheduledAt: time.Date(2026, time.March, 10, 17, 0, 0, 0, time.UTC),
		Status:      models.StatusBooked,
	}}

	f.send(t, "+911111111111", "haircut")
	reply := f.send(t, "+911111111111", "today at 5 PM")

	require.Equal(t, replySlotTaken, reply)
	require.Len(t, f.appointments.appointments, 1, "no new appointment on conflict")

	state := f.store.states["+911111111111"]
	require.NotNil(t, state)
	require.Equal(t, models.StepTime, state.Step)
	require.Empty(t, state.SelectedTime)
	require.Equal(t, "svc-haircut", state.ServiceID, "chosen service survives the conflict")

	// Picking a clear time completes the booking.
	reply = f.send(t, "+911111111111", "6 PM")
	require.Contains(t, reply, "✅ Appointment confirmed!")
	require.Len(t, f.appointments.appointments, 2)
	require.Equal(t, time.Date(2026, time.March, 10, 18, 0, 0, 0, time.UTC), f.appointments.appointments[1].ScheduledAt)
}

func TestNearbyBookingAlsoConflicts(t *testing.T) {
	f := newFixture(testClock)
	f.seedSalon(1)
	f.appointments.appointments = []models.Appointment{{
		ID:          "existing",
		TenantID:    "tenant-1",
		BranchID:    "branch-1",
		StaffID:     "staff-1",
		ScheduledAt: time.Date(2026, time.March, 10, 17, 15, 0, 0, time.UTC),
		Status:      models.StatusBooked,
	}}

	f.send(t, "+911111111111", "haircut")
	reply := f.send(t, "+911111111111", "today at 5 PM")

	require.Equal(t, replySlotTaken, reply)
	require.Len(t, f.appointments.appointments, 1)
}

func TestCancelEndsConversationAtAnyStep(t *testing.T) {
	f := newFixture(testClock)
	f.seedSalon(2)

	f.send(t, "+911111111111", "haircut")
	f.send(t, "+911111111111", "today at 5 PM")
	reply := f.send(t, "+911111111111", "cancel")

	require.Equal(t, replyCancelled, reply)
	require.Nil(t, f.store.states["+911111111111"])
	require.Empty(t, f.appointments.appointments)
}

func TestMissingPreconditionsRestartFlow(t *testing.T) {
	f := newFixture(testClock)
	f.seedSalon(1)

	// A state that claims to be at staff selection but lost its branch.
	f.store.states["+911111111111"] = &models.ConversationState{
		Phone:        "+911111111111",
		TenantID:     "tenant-1",
		Step:         models.StepStaff,
		ServiceID:    "svc-haircut",
		SelectedTime: testClock.Format(time.RFC3339),
	}

	reply := f.send(t, "+911111111111", "1")
	require.Equal(t, replyMissingInfo, reply)
	require.Nil(t, f.store.states["+911111111111"])
}

func TestWalkInClientCreatedOnFirstBooking(t *testing.T) {
	f := newFixture(testClock)
	f.seedSalon(1)

	f.send(t, "+911234567890", "book a pedicure")
	reply := f.send(t, "+911234567890", "tomorrow at 11am")

	require.Contains(t, reply, "✅ Appointment confirmed!")
	require.Contains(t, reply, "Service: Pedicure")

	require.Len(t, f.clients.clients, 1)
	created := f.clients.clients[0]
	require.Equal(t, walkInClientName, created.Name)
	require.Equal(t, "+911234567890", created.Phone)
	require.Equal(t, 1, f.clients.visits[created.ID])

	require.Len(t, f.appointments.appointments, 1)
	require.Equal(t, time.Date(2026, time.March, 11, 11, 0, 0, 0, time.UTC), f.appointments.appointments[0].ScheduledAt)
	require.Equal(t, []string{"+911234567890"}, f.reminders.phones)
}

func TestReturningClientIsReused(t *testing.T) {
	f := newFixture(testClock)
	f.seedSalon(1)
	f.clients.clients = []models.Client{{
		ID:       "client-1",
		TenantID: "tenant-1",
		Name:     "Rhea",
		Phone:    "+911234567890",
	}}

	f.send(t, "+911234567890", "haircut")
	f.send(t, "+911234567890", "tomorrow at 11am")

	require.Len(t, f.clients.clients, 1, "no duplicate client for a known phone")
	require.Equal(t, "client-1", f.appointments.appointments[0].ClientID)
	require.Equal(t, 1, f.clients.visits["client-1"])
}

func TestNoActiveStaffForService(t *testing.T) {
	f := newFixture(testClock)
	f.seedSalon(1)
	f.staff.members[0].IsActive = false

	f.send(t, "+911111111111", "haircut")
	reply := f.send(t, "+911111111111", "today at 5 PM")

	require.Equal(t, replyNoStaff, reply)
	require.Empty(t, f.appointments.appointments)
}
