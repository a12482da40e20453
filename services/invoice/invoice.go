// Package invoice handles billing: invoice creation, payment recording, and
// the loyalty-tier recomputation that follows a payment.
package invoice

import (
	"context"
	"fmt"
	"time"

	appointmentRepo "glowdesk/database/repository/appointment"
	clientRepo "glowdesk/database/repository/client"
	invoiceRepo "glowdesk/database/repository/invoice"
	serviceRepo "glowdesk/database/repository/service"
	"glowdesk/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateInvoiceRequest bills an appointment. Items and ClientID default
// from the appointment when omitted.
type CreateInvoiceRequest struct {
	AppointmentID string               `json:"appointmentId" binding:"required"`
	ClientID      string               `json:"clientId"`
	Items         []models.InvoiceItem `json:"items"`
	Tax           float64              `json:"tax"`
	Discount      float64              `json:"discount"`
	PaymentMethod string               `json:"paymentMethod"`
	Notes         string               `json:"notes"`
}

// RecordPaymentRequest settles an open invoice.
type RecordPaymentRequest struct {
	PaymentMethod string `json:"paymentMethod" binding:"required"`
	PaymentStatus string `json:"paymentStatus" binding:"required"`
}

// Notifier sends the bill to the client once it is issued.
type Notifier interface {
	NotifyInvoiceIssued(ctx context.Context, invoice *models.Invoice) error
}

// InvoiceService is the billing API.
type InvoiceService interface {
	Create(tenantID string, req CreateInvoiceRequest) (*models.Invoice, error)
	GetByID(tenantID, id string) (*models.Invoice, error)
	List(tenantID string, filter models.InvoiceFilter) ([]models.Invoice, error)
	RecordPayment(tenantID, id string, req RecordPaymentRequest) (*models.Invoice, error)
}

// DefaultInvoiceService is the production implementation.
type DefaultInvoiceService struct {
	invoices     invoiceRepo.InvoiceRepository
	clients      clientRepo.ClientRepository
	appointments appointmentRepo.AppointmentRepository
	services     serviceRepo.ServiceRepository
	notifier     Notifier
	logger       *zap.Logger
	now          func() time.Time
}

// NewInvoiceService wires an invoice service. notifier may be nil.
func NewInvoiceService(
	invoices invoiceRepo.InvoiceRepository,
	clients clientRepo.ClientRepository,
	appointments appointmentRepo.AppointmentRepository,
	services serviceRepo.ServiceRepository,
	notifier Notifier,
	logger *zap.Logger,
) *DefaultInvoiceService {
	return &DefaultInvoiceService{
		invoices:     invoices,
		clients:      clients,
		appointments: appointments,
		services:     services,
		notifier:     notifier,
		logger:       logger,
		now:          time.Now,
	}
}

// Create issues an invoice. Giving a payment method marks it paid on the
// spot, which is the common walk-in case.
func (s *DefaultInvoiceService) Create(tenantID string, req CreateInvoiceRequest) (*models.Invoice, error) {
	appointment, err := s.appointments.GetByID(req.AppointmentID)
	if err != nil {
		return nil, err
	}
	if appointment.TenantID != tenantID {
		return nil, fmt.Errorf("appointment with id %s not found", req.AppointmentID)
	}

	clientID := req.ClientID
	if clientID == "" {
		clientID = appointment.ClientID
	}

	items := req.Items
	if len(items) == 0 {
		service, err := s.services.GetByID(appointment.ServiceID)
		if err != nil {
			return nil, err
		}
		items = []models.InvoiceItem{{
			ItemType: "service",
			ItemName: service.Name,
			Quantity: 1,
			Price:    service.Price,
			Total:    service.Price,
		}}
	}

	count, err := s.invoices.CountByTenant(tenantID)
	if err != nil {
		return nil, err
	}

	var subtotal float64
	for i := range items {
		item := &items[i]
		if item.Total == 0 {
			item.Total = item.Price * float64(item.Quantity)
		}
		subtotal += item.Total
	}

	now := s.now()
	invoice := &models.Invoice{
		ID:            uuid.NewString(),
		TenantID:      tenantID,
		AppointmentID: req.AppointmentID,
		ClientID:      clientID,
		InvoiceNumber: fmt.Sprintf("INV-%d-%d", now.Unix(), count+1),
		Subtotal:      subtotal,
		Tax:           req.Tax,
		Discount:      req.Discount,
		Total:         subtotal + req.Tax - req.Discount,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: models.PaymentPending,
		Notes:         req.Notes,
		Items:         items,
	}
	if req.PaymentMethod != "" {
		invoice.PaymentStatus = models.PaymentPaid
		invoice.PaidAt = &now
	}

	if err := s.invoices.Create(invoice); err != nil {
		return nil, err
	}

	if invoice.PaymentStatus == models.PaymentPaid {
		s.refreshLoyalty(invoice.ClientID)
	}
	if s.notifier != nil {
		if err := s.notifier.NotifyInvoiceIssued(context.Background(), invoice); err != nil {
			s.logger.Warn("failed to send bill message", zap.String("invoiceId", invoice.ID), zap.Error(err))
		}
	}
	return invoice, nil
}

// GetByID fetches an invoice, enforcing tenant ownership.
func (s *DefaultInvoiceService) GetByID(tenantID, id string) (*models.Invoice, error) {
	invoice, err := s.invoices.GetByID(id)
	if err != nil {
		return nil, err
	}
	if invoice.TenantID != tenantID {
		return nil, fmt.Errorf("invoice with id %s not found", id)
	}
	return invoice, nil
}

// List returns a tenant's invoices narrowed by the filter.
func (s *DefaultInvoiceService) List(tenantID string, filter models.InvoiceFilter) ([]models.Invoice, error) {
	return s.invoices.GetByTenant(tenantID, filter)
}

// RecordPayment settles an invoice and refreshes the client's loyalty tier.
func (s *DefaultInvoiceService) RecordPayment(tenantID, id string, req RecordPaymentRequest) (*models.Invoice, error) {
	invoice, err := s.GetByID(tenantID, id)
	if err != nil {
		return nil, err
	}

	var paidAt *time.Time
	if req.PaymentStatus == models.PaymentPaid {
		now := s.now()
		paidAt = &now
	}
	if err := s.invoices.UpdatePayment(id, req.PaymentMethod, req.PaymentStatus, paidAt); err != nil {
		return nil, err
	}
	invoice.PaymentMethod = req.PaymentMethod
	invoice.PaymentStatus = req.PaymentStatus
	invoice.PaidAt = paidAt

	if invoice.PaymentStatus == models.PaymentPaid {
		s.refreshLoyalty(invoice.ClientID)
	}
	return invoice, nil
}

// refreshLoyalty recomputes the client's tier from their paid-invoice total.
// Failures only log: billing already succeeded.
func (s *DefaultInvoiceService) refreshLoyalty(clientID string) {
	paid, err := s.invoices.GetPaidByClient(clientID)
	if err != nil {
		s.logger.Warn("failed to load paid invoices for loyalty", zap.String("clientId", clientID), zap.Error(err))
		return
	}

	var totalSpend float64
	for _, inv := range paid {
		totalSpend += inv.Total
	}

	tier := models.LoyaltyTierForSpend(totalSpend)
	if err := s.clients.SetLoyalty(clientID, tier, totalSpend); err != nil {
		s.logger.Warn("failed to update loyalty tier", zap.String("clientId", clientID), zap.Error(err))
	}
}
