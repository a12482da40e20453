// Package bot implements the conversational booking flow for WhatsApp.
// One conversation is kept per phone number; the flow walks
// service -> date -> time -> staff -> confirm, with "cancel" available at
// every step.
package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	appointmentRepo "glowdesk/database/repository/appointment"
	branchRepo "glowdesk/database/repository/branch"
	clientRepo "glowdesk/database/repository/client"
	serviceRepo "glowdesk/database/repository/service"
	staffRepo "glowdesk/database/repository/staff"
	"glowdesk/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Replies used by the flow.
const (
	replyCancelled      = "Booking cancelled. How can I help you today?"
	replyNoServices     = "Sorry, no services available at the moment."
	replyAskDateTime    = "Please provide a date and time. For example: \"today at 5 PM\" or \"tomorrow at 10 AM\""
	replyAskTime        = "Please provide a time. For example: \"5 PM\" or \"10:30 AM\""
	replyNoStaff        = "Sorry, no staff available for this service."
	replyInvalidStaff   = "Please select a valid staff member from the list."
	replyMissingInfo    = "Missing information. Please start over."
	replySlotTaken      = "Sorry, that time slot is no longer available. Please choose another time."
	replyCreateFailed   = "Sorry, there was an error creating your appointment. Please try again or call us."
	replyTryAgain       = "Sorry, something went wrong. Please try again or type \"cancel\" to start over."
	replyNotUnderstood  = "I didn't understand that. Please try again or type \"cancel\" to start over."
	walkInClientName    = "WhatsApp Customer"
)

// ReminderScheduler queues a pre-appointment reminder message.
type ReminderScheduler interface {
	ScheduleForAppointment(appointment *models.Appointment, phone string) error
}

// Deps wires the engine to its collaborators. Reminders may be nil.
type Deps struct {
	Store        Store
	Services     serviceRepo.ServiceRepository
	Branches     branchRepo.BranchRepository
	Staff        staffRepo.StaffRepository
	Appointments appointmentRepo.AppointmentRepository
	Clients      clientRepo.ClientRepository
	Reminders    ReminderScheduler
}

// Engine drives the multi-step booking negotiation.
type Engine struct {
	store        Store
	services     serviceRepo.ServiceRepository
	branches     branchRepo.BranchRepository
	staff        staffRepo.StaffRepository
	appointments appointmentRepo.AppointmentRepository
	clients      clientRepo.ClientRepository
	reminders    ReminderScheduler
	logger       *zap.Logger
	now          func() time.Time
}

// NewEngine creates a booking engine.
func NewEngine(deps Deps, logger *zap.Logger) *Engine {
	return &Engine{
		store:        deps.Store,
		services:     deps.Services,
		branches:     deps.Branches,
		staff:        deps.Staff,
		appointments: deps.Appointments,
		clients:      deps.Clients,
		reminders:    deps.Reminders,
		logger:       logger,
		now:          time.Now,
	}
}

// ProcessMessage handles one inbound message and returns the reply text.
// Handlers fall through within a single message, so "today at 5 PM" can
// advance the flow several steps before replying.
func (e *Engine) ProcessMessage(ctx context.Context, phone, message, tenantID string) (string, error) {
	state, err := e.store.Get(ctx, phone)
	if err != nil {
		return "", err
	}
	if state == nil {
		state = &models.ConversationState{
			Phone:    phone,
			TenantID: tenantID,
			Step:     models.StepService,
		}
	}
	if state.TenantID == "" {
		state.TenantID = tenantID
	}

	lower := strings.ToLower(strings.TrimSpace(message))

	// Cancellation is a first-class transition from every step.
	if strings.Contains(lower, "cancel") || strings.Contains(lower, "start over") {
		if err := e.store.Delete(ctx, phone); err != nil {
			return "", err
		}
		return replyCancelled, nil
	}

	if state.Step == models.StepService {
		reply, done, err := e.handleServiceStep(ctx, state, message)
		if err != nil || done {
			return reply, err
		}
	}

	if state.Step == models.StepDate {
		reply, done, err := e.handleDateStep(ctx, state, message)
		if err != nil || done {
			return reply, err
		}
	}

	if state.Step == models.StepTime {
		reply, done, err := e.handleTimeStep(ctx, state, message)
		if err != nil || done {
			return reply, err
		}
	}

	if state.Step == models.StepStaff {
		reply, done, err := e.handleStaffStep(ctx, state, message)
		if err != nil || done {
			return reply, err
		}
	}

	if state.Step == models.StepConfirm {
		return e.handleConfirmStep(ctx, state)
	}

	if err := e.store.Set(ctx, state); err != nil {
		return "", err
	}
	return replyNotUnderstood, nil
}

// handleServiceStep matches the message against the service catalog. done is
// true when a reply was produced; false means the flow advanced and the next
// step should run against the same message.
func (e *Engine) handleServiceStep(ctx context.Context, state *models.ConversationState, message string) (string, bool, error) {
	var service *models.Service

	// A prior turn may have shown a numbered catalog list.
	if len(state.ServiceOptions) > 0 {
		if opt := matchServiceOption(state.ServiceOptions, message); opt != nil {
			found, err := e.services.GetByID(opt.ID)
			if err != nil {
				e.logger.Error("failed to load selected service", zap.String("serviceId", opt.ID), zap.Error(err))
				return replyTryAgain, true, nil
			}
			service = found
		}
	}

	if service == nil {
		found, err := e.findService(state.TenantID, message)
		if err != nil {
			return "", false, err
		}
		service = found
	}

	if service == nil {
		return e.listServices(ctx, state)
	}

	state.Step = models.StepDate
	state.ServiceID = service.ID
	state.ServiceName = service.Name
	state.ServiceOptions = nil

	branches, err := e.branches.GetByTenant(state.TenantID)
	if err != nil {
		e.logger.Warn("failed to list branches", zap.String("tenantId", state.TenantID), zap.Error(err))
	}
	if len(branches) == 1 {
		state.BranchID = branches[0].ID
	}

	if err := e.store.Set(ctx, state); err != nil {
		return "", false, err
	}
	reply := fmt.Sprintf("Great! I found %q (₹%s, %d min).\n\nWhen would you like to book? (e.g., \"today at 5 PM\" or \"tomorrow at 10 AM\")",
		service.Name, formatPrice(service.Price), service.Duration)
	return reply, true, nil
}

func (e *Engine) listServices(ctx context.Context, state *models.ConversationState) (string, bool, error) {
	services, err := e.services.GetActiveByTenant(state.TenantID)
	if err != nil {
		return "", false, err
	}
	if len(services) == 0 {
		return replyNoServices, true, nil
	}
	if len(services) > 10 {
		services = services[:10]
	}

	state.ServiceOptions = make([]models.ServiceOption, 0, len(services))
	var b strings.Builder
	b.WriteString("Please select a service:\n\n")
	for i, s := range services {
		state.ServiceOptions = append(state.ServiceOptions, models.ServiceOption{ID: s.ID, Name: s.Name, Price: s.Price})
		fmt.Fprintf(&b, "%d. %s - ₹%s\n", i+1, s.Name, formatPrice(s.Price))
	}
	b.WriteString("\nReply with the service name or number.")

	if err := e.store.Set(ctx, state); err != nil {
		return "", false, err
	}
	return b.String(), true, nil
}

func (e *Engine) handleDateStep(ctx context.Context, state *models.ConversationState, message string) (string, bool, error) {
	date, hasDate := ExtractDate(message, e.now())
	hhmm, hasTime := ExtractTime(message)

	switch {
	case hasDate && hasTime:
		if err := e.setSelectedTime(state, date, hhmm); err != nil {
			return replyAskDateTime, true, nil
		}
		state.Step = models.StepStaff
		return "", false, nil

	case hasDate:
		state.SelectedDate = date
		state.Step = models.StepTime
		if err := e.store.Set(ctx, state); err != nil {
			return "", false, err
		}
		parsed, _ := time.ParseInLocation("2006-01-02", date, e.now().Location())
		reply := fmt.Sprintf("Got it! Date: %s\n\nWhat time would you prefer? (e.g., \"5 PM\" or \"10:30 AM\")",
			parsed.Format("Mon, 02 Jan 2006"))
		return reply, true, nil

	case hasTime:
		// Only a time given; assume today.
		today := e.now().Format("2006-01-02")
		if err := e.setSelectedTime(state, today, hhmm); err != nil {
			return replyAskDateTime, true, nil
		}
		state.Step = models.StepStaff
		return "", false, nil

	default:
		return replyAskDateTime, true, nil
	}
}

func (e *Engine) handleTimeStep(ctx context.Context, state *models.ConversationState, message string) (string, bool, error) {
	hhmm, ok := ExtractTime(message)
	if !ok || state.SelectedDate == "" {
		return replyAskTime, true, nil
	}
	if err := e.setSelectedTime(state, state.SelectedDate, hhmm); err != nil {
		return replyAskTime, true, nil
	}
	state.Step = models.StepStaff
	return "", false, nil
}

func (e *Engine) handleStaffStep(ctx context.Context, state *models.ConversationState, message string) (string, bool, error) {
	if state.ServiceID == "" || state.SelectedTime == "" || state.BranchID == "" {
		if err := e.store.Delete(ctx, state.Phone); err != nil {
			return "", false, err
		}
		return replyMissingInfo, true, nil
	}

	// A prior turn may have shown a numbered staff list.
	if len(state.StaffOptions) > 0 {
		selected := matchStaffOption(state.StaffOptions, message)
		if selected == nil {
			return replyInvalidStaff, true, nil
		}
		state.StaffID = selected.ID
		state.StaffOptions = nil
		state.Step = models.StepConfirm
		return "", false, nil
	}

	service, err := e.services.GetByID(state.ServiceID)
	if err != nil {
		if derr := e.store.Delete(ctx, state.Phone); derr != nil {
			return "", false, derr
		}
		return "Service not found. Please start over.", true, nil
	}

	members, err := e.staff.GetByIDs(service.StaffIDs)
	if err != nil {
		return "", false, err
	}
	eligible := members[:0]
	for _, m := range members {
		if m.IsActive {
			eligible = append(eligible, m)
		}
	}

	switch len(eligible) {
	case 0:
		return replyNoStaff, true, nil
	case 1:
		state.StaffID = eligible[0].ID
		state.Step = models.StepConfirm
		return "", false, nil
	}

	state.StaffOptions = make([]models.StaffOption, 0, len(eligible))
	var b strings.Builder
	b.WriteString("Please select a staff member:\n\n")
	for i, m := range eligible {
		state.StaffOptions = append(state.StaffOptions, models.StaffOption{ID: m.ID, Name: m.Name, Role: m.Role})
		fmt.Fprintf(&b, "%d. %s (%s)\n", i+1, m.Name, m.Role)
	}
	b.WriteString("\nReply with the name or number.")

	if err := e.store.Set(ctx, state); err != nil {
		return "", false, err
	}
	return b.String(), true, nil
}

func (e *Engine) handleConfirmStep(ctx context.Context, state *models.ConversationState) (string, error) {
	if state.ServiceID == "" || state.StaffID == "" || state.SelectedTime == "" || state.BranchID == "" {
		if err := e.store.Delete(ctx, state.Phone); err != nil {
			return "", err
		}
		return replyMissingInfo, nil
	}

	scheduledAt, err := time.Parse(time.RFC3339, state.SelectedTime)
	if err != nil {
		if derr := e.store.Delete(ctx, state.Phone); derr != nil {
			return "", derr
		}
		return replyMissingInfo, nil
	}

	client, err := e.findOrCreateClient(state)
	if err != nil {
		e.logger.Error("failed to resolve client", zap.String("phone", state.Phone), zap.Error(err))
		return replyCreateFailed, nil
	}
	state.ClientID = client.ID

	// Second conflict check: the slot may have been taken between slot
	// display and confirmation.
	conflict, err := e.appointments.HasConflict(state.StaffID, state.BranchID, scheduledAt)
	if err != nil {
		e.logger.Error("failed to check slot conflict", zap.Error(err))
		return replyCreateFailed, nil
	}
	if conflict {
		// Route back to time selection; service, staff and branch stay chosen.
		state.SelectedTime = ""
		state.StaffID = ""
		state.Step = models.StepTime
		if err := e.store.Set(ctx, state); err != nil {
			return "", err
		}
		return replySlotTaken, nil
	}

	member, err := e.staff.GetByID(state.StaffID)
	if err != nil {
		e.logger.Error("failed to load staff", zap.String("staffId", state.StaffID), zap.Error(err))
		return replyCreateFailed, nil
	}

	appointment := &models.Appointment{
		ID:          uuid.NewString(),
		TenantID:    state.TenantID,
		BranchID:    state.BranchID,
		ClientID:    client.ID,
		ServiceID:   state.ServiceID,
		StaffID:     state.StaffID,
		ScheduledAt: scheduledAt,
		Status:      models.StatusBooked,
	}
	if err := e.appointments.Create(appointment); err != nil {
		e.logger.Error("failed to create appointment", zap.Error(err))
		return replyCreateFailed, nil
	}

	if err := e.clients.IncrementVisits(client.ID); err != nil {
		e.logger.Warn("failed to increment client visits", zap.String("clientId", client.ID), zap.Error(err))
	}
	if e.reminders != nil {
		if err := e.reminders.ScheduleForAppointment(appointment, state.Phone); err != nil {
			e.logger.Warn("failed to schedule reminder", zap.String("appointmentId", appointment.ID), zap.Error(err))
		}
	}

	if err := e.store.Delete(ctx, state.Phone); err != nil {
		return "", err
	}

	reply := fmt.Sprintf("✅ Appointment confirmed!\n\nService: %s\nStaff: %s\nDate & Time: %s\n\nWe'll send you a reminder 1 hour before. See you soon!",
		state.ServiceName, member.Name, scheduledAt.Format("Mon, 02 Jan 2006 at 3:04 PM"))
	return reply, nil
}

func (e *Engine) findOrCreateClient(state *models.ConversationState) (*models.Client, error) {
	client, err := e.clients.GetByPhone(state.TenantID, state.Phone)
	if err != nil {
		return nil, err
	}
	if client != nil {
		return client, nil
	}

	client = &models.Client{
		ID:       uuid.NewString(),
		TenantID: state.TenantID,
		Name:     walkInClientName,
		Phone:    state.Phone,
	}
	if err := e.clients.Create(client); err != nil {
		return nil, err
	}
	return client, nil
}

// findService matches the message against active services by name or
// description, in either containment direction, so both "haircut" and
// "I want a haircut" find "Haircut".
func (e *Engine) findService(tenantID, message string) (*models.Service, error) {
	services, err := e.services.GetActiveByTenant(tenantID)
	if err != nil {
		return nil, err
	}

	lower := strings.ToLower(strings.TrimSpace(message))
	for i, s := range services {
		name := strings.ToLower(s.Name)
		desc := strings.ToLower(s.Description)
		if strings.Contains(lower, name) || strings.Contains(name, lower) {
			return &services[i], nil
		}
		if desc != "" && strings.Contains(lower, desc) {
			return &services[i], nil
		}
	}
	return nil, nil
}

func (e *Engine) setSelectedTime(state *models.ConversationState, date, hhmm string) error {
	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+hhmm, e.now().Location())
	if err != nil {
		return err
	}
	state.SelectedDate = date
	state.SelectedTime = t.Format(time.RFC3339)
	return nil
}

func matchServiceOption(options []models.ServiceOption, message string) *models.ServiceOption {
	trimmed := strings.TrimSpace(message)
	lower := strings.ToLower(trimmed)
	for i, opt := range options {
		if trimmed == strconv.Itoa(i+1) {
			return &options[i]
		}
		name := strings.ToLower(opt.Name)
		if strings.Contains(lower, name) || strings.Contains(name, lower) {
			return &options[i]
		}
	}
	return nil
}

func matchStaffOption(options []models.StaffOption, message string) *models.StaffOption {
	trimmed := strings.TrimSpace(message)
	lower := strings.ToLower(trimmed)
	for i, opt := range options {
		if trimmed == strconv.Itoa(i+1) || strings.Contains(strings.ToLower(opt.Name), lower) {
			return &options[i]
		}
	}
	return nil
}

// formatPrice renders a price the way receipts show it: no trailing zeros.
func formatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}
