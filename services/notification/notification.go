// Package notification sends WhatsApp and push notifications: appointment
// reminders, stock alerts, birthday greetings and daily summaries.
package notification

import (
	"context"
	"fmt"
	"strings"
	"time"

	"firebase.google.com/go/v4/messaging"

	appointmentRepo "glowdesk/database/repository/appointment"
	clientRepo "glowdesk/database/repository/client"
	inventoryRepo "glowdesk/database/repository/inventory"
	invoiceRepo "glowdesk/database/repository/invoice"
	serviceRepo "glowdesk/database/repository/service"
	staffRepo "glowdesk/database/repository/staff"
	tenantRepo "glowdesk/database/repository/tenant"
	userRepo "glowdesk/database/repository/user"
	"glowdesk/models"
	"glowdesk/services/whatsapp"
	"glowdesk/utils"

	"go.uber.org/zap"
)

// NotificationService delivers outbound notifications.
type NotificationService interface {
	SendAppointmentReminder(ctx context.Context, payload models.ReminderPayload) error
	SendLowStockAlerts(ctx context.Context, tenantID string) error
	SendBirthdayMessages(ctx context.Context) error
	SendDailySalesSummary(ctx context.Context, tenantID string) error
	SendUserPush(ctx context.Context, userID, title, body string) error
	NotifyAppointmentBooked(ctx context.Context, appointment *models.Appointment) error
	NotifyAppointmentCancelled(ctx context.Context, appointment *models.Appointment) error
	NotifyInvoiceIssued(ctx context.Context, invoice *models.Invoice) error
	TenantIDs() ([]string, error)
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	appointments appointmentRepo.AppointmentRepository
	services     serviceRepo.ServiceRepository
	staff        staffRepo.StaffRepository
	clients      clientRepo.ClientRepository
	users        userRepo.UserRepository
	tenants      tenantRepo.TenantRepository
	inventory    inventoryRepo.InventoryRepository
	invoices     invoiceRepo.InvoiceRepository
	sender       whatsapp.Sender
	logger       *zap.Logger
	now          func() time.Time
}

// NewNotificationService wires a notification service.
func NewNotificationService(
	appointments appointmentRepo.AppointmentRepository,
	services serviceRepo.ServiceRepository,
	staff staffRepo.StaffRepository,
	clients clientRepo.ClientRepository,
	users userRepo.UserRepository,
	tenants tenantRepo.TenantRepository,
	inventory inventoryRepo.InventoryRepository,
	invoices invoiceRepo.InvoiceRepository,
	sender whatsapp.Sender,
	logger *zap.Logger,
) *DefaultNotificationService {
	return &DefaultNotificationService{
		appointments: appointments,
		services:     services,
		staff:        staff,
		clients:      clients,
		users:        users,
		tenants:      tenants,
		inventory:    inventory,
		invoices:     invoices,
		sender:       sender,
		logger:       logger,
		now:          time.Now,
	}
}

// SendAppointmentReminder delivers the pre-appointment reminder. Appointments
// that were cancelled or completed since scheduling are skipped silently.
func (s *DefaultNotificationService) SendAppointmentReminder(ctx context.Context, payload models.ReminderPayload) error {
	appointment, err := s.appointments.GetByID(payload.AppointmentID)
	if err != nil {
		return err
	}
	if appointment.Status != models.StatusBooked {
		s.logger.Info("skipping reminder for non-booked appointment",
			zap.String("appointmentId", appointment.ID),
			zap.String("status", appointment.Status))
		return nil
	}

	service, err := s.services.GetByID(appointment.ServiceID)
	if err != nil {
		return err
	}
	member, err := s.staff.GetByID(appointment.StaffID)
	if err != nil {
		return err
	}

	message := fmt.Sprintf("Reminder: Your appointment for %s with %s is in 1 hour at %s.",
		service.Name, member.Name, appointment.ScheduledAt.Format("Mon, 02 Jan 2006 at 3:04 PM"))
	return s.sender.Send(ctx, payload.Phone, message)
}

// SendLowStockAlerts messages the tenant's admin when items fall below threshold.
func (s *DefaultNotificationService) SendLowStockAlerts(ctx context.Context, tenantID string) error {
	items, err := s.inventory.GetLowStock(tenantID)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}

	admin, err := s.users.GetAdminByTenant(tenantID)
	if err != nil {
		return err
	}
	if admin == nil || admin.Phone == "" {
		s.logger.Warn("no admin to notify for low stock", zap.String("tenantId", tenantID))
		return nil
	}

	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%s (%g %s left)", item.Name, item.Quantity, item.Unit))
	}
	message := fmt.Sprintf("Stock Alert: %s are below threshold.", strings.Join(parts, ", "))
	return s.sender.Send(ctx, admin.Phone, message)
}

// SendBirthdayMessages greets every client whose birthday is today.
func (s *DefaultNotificationService) SendBirthdayMessages(ctx context.Context) error {
	clients, err := s.clients.GetWithBirthdays()
	if err != nil {
		return err
	}

	today := s.now()
	for _, client := range clients {
		dob := client.DateOfBirth
		if dob == nil || dob.Month() != today.Month() || dob.Day() != today.Day() {
			continue
		}
		message := fmt.Sprintf("Happy Birthday %s! 🎉 Enjoy a special discount on your next visit. Use code BIRTHDAY20 for 20%% off!", client.Name)
		if err := s.sender.Send(ctx, client.Phone, message); err != nil {
			s.logger.Warn("failed to send birthday message", zap.String("clientId", client.ID), zap.Error(err))
		}
	}
	return nil
}

// SendDailySalesSummary messages the tenant's admin with today's paid revenue.
func (s *DefaultNotificationService) SendDailySalesSummary(ctx context.Context, tenantID string) error {
	now := s.now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 1)

	invoices, err := s.invoices.GetByTenant(tenantID, models.InvoiceFilter{
		PaymentStatus: models.PaymentPaid,
		StartDate:     &start,
		EndDate:       &end,
	})
	if err != nil {
		return err
	}

	var revenue float64
	for _, inv := range invoices {
		revenue += inv.Total
	}

	admin, err := s.users.GetAdminByTenant(tenantID)
	if err != nil {
		return err
	}
	if admin == nil || admin.Phone == "" {
		return nil
	}

	message := fmt.Sprintf("Daily Summary - %s\nRevenue: ₹%g\nAppointments: %d",
		start.Format("02 Jan 2006"), revenue, len(invoices))
	return s.sender.Send(ctx, admin.Phone, message)
}

// SendUserPush delivers an FCM push to a staff user's registered device.
func (s *DefaultNotificationService) SendUserPush(ctx context.Context, userID, title, body string) error {
	if utils.FCMClient == nil {
		s.logger.Warn("FCM not configured, skipping push", zap.String("userId", userID))
		return nil
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		return err
	}
	if user.FCMToken == "" {
		return nil
	}

	msg := &messaging.Message{
		Token: user.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
	}
	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send push to user %s: %w", userID, err)
	}
	return nil
}

// NotifyAppointmentBooked confirms a dashboard-created booking to the client
// over WhatsApp and pushes the new booking to the staff member's device.
func (s *DefaultNotificationService) NotifyAppointmentBooked(ctx context.Context, appointment *models.Appointment) error {
	client, err := s.clients.GetByID(appointment.ClientID)
	if err != nil {
		return err
	}
	service, err := s.services.GetByID(appointment.ServiceID)
	if err != nil {
		return err
	}
	member, err := s.staff.GetByID(appointment.StaffID)
	if err != nil {
		return err
	}

	when := appointment.ScheduledAt.Format("Mon, 02 Jan 2006 at 3:04 PM")
	if client.Phone != "" {
		message := fmt.Sprintf("Your appointment for %s with %s on %s is confirmed. See you soon!",
			service.Name, member.Name, when)
		if err := s.sender.Send(ctx, client.Phone, message); err != nil {
			s.logger.Warn("failed to send booking confirmation", zap.String("clientId", client.ID), zap.Error(err))
		}
	}

	if member.UserID != "" {
		body := fmt.Sprintf("%s booked %s on %s", client.Name, service.Name, when)
		if err := s.SendUserPush(ctx, member.UserID, "New booking", body); err != nil {
			s.logger.Warn("failed to push new booking", zap.String("staffId", member.ID), zap.Error(err))
		}
	}
	return nil
}

// NotifyAppointmentCancelled tells the client their booking was cancelled.
func (s *DefaultNotificationService) NotifyAppointmentCancelled(ctx context.Context, appointment *models.Appointment) error {
	client, err := s.clients.GetByID(appointment.ClientID)
	if err != nil {
		return err
	}
	if client.Phone == "" {
		return nil
	}
	service, err := s.services.GetByID(appointment.ServiceID)
	if err != nil {
		return err
	}

	message := fmt.Sprintf("Your appointment for %s on %s has been cancelled. Message us anytime to rebook.",
		service.Name, appointment.ScheduledAt.Format("Mon, 02 Jan 2006 at 3:04 PM"))
	return s.sender.Send(ctx, client.Phone, message)
}

// NotifyInvoiceIssued sends the bill to the client over WhatsApp.
func (s *DefaultNotificationService) NotifyInvoiceIssued(ctx context.Context, invoice *models.Invoice) error {
	client, err := s.clients.GetByID(invoice.ClientID)
	if err != nil {
		return err
	}
	if client.Phone == "" {
		return nil
	}

	message := fmt.Sprintf("Invoice %s\nTotal: ₹%g\nStatus: %s\nThank you for visiting!",
		invoice.InvoiceNumber, invoice.Total, invoice.PaymentStatus)
	return s.sender.Send(ctx, client.Phone, message)
}

// TenantIDs lists every tenant ID, used by the periodic jobs.
func (s *DefaultNotificationService) TenantIDs() ([]string, error) {
	tenants, err := s.tenants.GetAll()
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(tenants))
	for _, t := range tenants {
		ids = append(ids, t.ID)
	}
	return ids, nil
}
