package invoiceRepo

import (
	"time"

	"glowdesk/models"
)

// InvoiceRepository defines data access for invoices.
type InvoiceRepository interface {
	Create(invoice *models.Invoice) error
	GetByID(id string) (*models.Invoice, error)
	GetByTenant(tenantID string, filter models.InvoiceFilter) ([]models.Invoice, error)
	UpdatePayment(id, method, status string, paidAt *time.Time) error
	CountByTenant(tenantID string) (int64, error)
	GetPaidByClient(clientID string) ([]models.Invoice, error)
	SumPaidBetween(tenantID string, from, to time.Time) (float64, error)
}
