package invoice

import (
	"fmt"
	"testing"
	"time"

	clientRepo "glowdesk/database/repository/client"
	"glowdesk/models"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubInvoices struct {
	invoices []models.Invoice
}

func (s *stubInvoices) Create(invoice *models.Invoice) error {
	s.invoices = append(s.invoices, *invoice)
	return nil
}

func (s *stubInvoices) GetByID(id string) (*models.Invoice, error) {
	for i := range s.invoices {
		if s.invoices[i].ID == id {
			cp := s.invoices[i]
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("invoice with id %s not found", id)
}

func (s *stubInvoices) GetByTenant(string, models.InvoiceFilter) ([]models.Invoice, error) {
	return s.invoices, nil
}

func (s *stubInvoices) UpdatePayment(id, method, status string, paidAt *time.Time) error {
	for i := range s.invoices {
		if s.invoices[i].ID == id {
			s.invoices[i].PaymentMethod = method
			s.invoices[i].PaymentStatus = status
			s.invoices[i].PaidAt = paidAt
		}
	}
	return nil
}

func (s *stubInvoices) CountByTenant(string) (int64, error) {
	return int64(len(s.invoices)), nil
}

func (s *stubInvoices) GetPaidByClient(clientID string) ([]models.Invoice, error) {
	var out []models.Invoice
	for _, inv := range s.invoices {
		if inv.ClientID == clientID && inv.PaymentStatus == models.PaymentPaid {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (s *stubInvoices) SumPaidBetween(string, time.Time, time.Time) (float64, error) {
	var sum float64
	for _, inv := range s.invoices {
		if inv.PaymentStatus == models.PaymentPaid {
			sum += inv.Total
		}
	}
	return sum, nil
}

type loyaltyRecorder struct {
	tier  string
	spend float64
	calls int
}

func (r *loyaltyRecorder) Create(*models.Client) error            { return nil }
func (r *loyaltyRecorder) GetByID(string) (*models.Client, error) { return nil, nil }
func (r *loyaltyRecorder) GetByPhone(string, string) (*models.Client, error) {
	return nil, nil
}
func (r *loyaltyRecorder) GetByTenant(string, clientRepo.ClientQuery) ([]models.Client, int64, error) {
	return nil, 0, nil
}
func (r *loyaltyRecorder) Update(*models.Client) error    { return nil }
func (r *loyaltyRecorder) IncrementVisits(string) error   { return nil }
func (r *loyaltyRecorder) AddSpend(string, float64) error { return nil }

func (r *loyaltyRecorder) SetLoyalty(_, tier string, totalSpend float64) error {
	r.tier = tier
	r.spend = totalSpend
	r.calls++
	return nil
}

func (r *loyaltyRecorder) CountByVisits(string, bool) (int64, error) { return 0, nil }
func (r *loyaltyRecorder) GetWithBirthdays() ([]models.Client, error) {
	return nil, nil
}

type stubAppointments struct {
	appointments map[string]models.Appointment
}

func (s *stubAppointments) Create(*models.Appointment) error { return nil }
func (s *stubAppointments) GetByID(id string) (*models.Appointment, error) {
	a, ok := s.appointments[id]
	if !ok {
		return nil, fmt.Errorf("appointment with id %s not found", id)
	}
	return &a, nil
}
func (s *stubAppointments) GetByTenant(string, models.AppointmentFilter) ([]models.Appointment, error) {
	return nil, nil
}
func (s *stubAppointments) Update(*models.Appointment) error              { return nil }
func (s *stubAppointments) UpdateStatus(string, string, *time.Time) error { return nil }
func (s *stubAppointments) HasConflict(string, string, time.Time) (bool, error) {
	return false, nil
}
func (s *stubAppointments) GetForStaffOnDay(string, time.Time) ([]models.Appointment, error) {
	return nil, nil
}
func (s *stubAppointments) GetBetween(string, time.Time, time.Time) ([]models.Appointment, error) {
	return nil, nil
}
func (s *stubAppointments) CountByStatus(string, string, time.Time, time.Time) (int64, error) {
	return 0, nil
}

type stubServices struct {
	services map[string]models.Service
}

func (s *stubServices) Create(*models.Service) error { return nil }
func (s *stubServices) GetByID(id string) (*models.Service, error) {
	svc, ok := s.services[id]
	if !ok {
		return nil, fmt.Errorf("service with id %s not found", id)
	}
	return &svc, nil
}
func (s *stubServices) GetByTenant(string) ([]models.Service, error)       { return nil, nil }
func (s *stubServices) GetActiveByTenant(string) ([]models.Service, error) { return nil, nil }
func (s *stubServices) FindActiveByName(string, string) (*models.Service, error) {
	return nil, nil
}
func (s *stubServices) Update(*models.Service) error { return nil }
func (s *stubServices) Delete(string) error          { return nil }

func newInvoiceFixture(now time.Time) (*DefaultInvoiceService, *stubInvoices, *loyaltyRecorder) {
	invoices := &stubInvoices{}
	clients := &loyaltyRecorder{}
	appointments := &stubAppointments{appointments: map[string]models.Appointment{
		"appt-1": {ID: "appt-1", TenantID: "tenant-1", ClientID: "client-1", ServiceID: "svc-1"},
		"appt-2": {ID: "appt-2", TenantID: "tenant-1", ClientID: "client-1", ServiceID: "svc-1"},
	}}
	services := &stubServices{services: map[string]models.Service{
		"svc-1": {ID: "svc-1", TenantID: "tenant-1", Name: "Haircut", Price: 500},
	}}
	svc := NewInvoiceService(invoices, clients, appointments, services, nil, zap.NewNop())
	svc.now = func() time.Time { return now }
	return svc, invoices, clients
}

var invoiceClock = time.Date(2026, time.March, 10, 19, 0, 0, 0, time.UTC)

func TestCreateComputesTotals(t *testing.T) {
	svc, _, clients := newInvoiceFixture(invoiceClock)

	inv, err := svc.Create("tenant-1", CreateInvoiceRequest{
		AppointmentID: "appt-1",
		ClientID:      "client-1",
		Items: []models.InvoiceItem{
			{ItemType: "service", ItemName: "Haircut", Quantity: 1, Price: 500},
			{ItemType: "product", ItemName: "Shampoo", Quantity: 2, Price: 250},
		},
		Tax:      90,
		Discount: 50,
	})
	require.NoError(t, err)

	require.Equal(t, float64(1000), inv.Subtotal) // 500 + 2*250
	require.Equal(t, float64(1040), inv.Total)    // subtotal + tax - discount
	require.Equal(t, float64(500), inv.Items[0].Total)
	require.Equal(t, float64(500), inv.Items[1].Total)

	require.Equal(t, models.PaymentPending, inv.PaymentStatus)
	require.Nil(t, inv.PaidAt)
	require.Zero(t, clients.calls, "loyalty is untouched until payment")
}

func TestCreateDefaultsToServiceLineItem(t *testing.T) {
	svc, _, _ := newInvoiceFixture(invoiceClock)

	inv, err := svc.Create("tenant-1", CreateInvoiceRequest{AppointmentID: "appt-1"})
	require.NoError(t, err)

	require.Equal(t, "client-1", inv.ClientID, "client is taken from the appointment")
	require.Len(t, inv.Items, 1)
	require.Equal(t, "service", inv.Items[0].ItemType)
	require.Equal(t, "Haircut", inv.Items[0].ItemName)
	require.Equal(t, float64(500), inv.Items[0].Total)
	require.Equal(t, float64(500), inv.Total)
}

func TestCreateRejectsForeignAppointment(t *testing.T) {
	svc, _, _ := newInvoiceFixture(invoiceClock)

	_, err := svc.Create("tenant-2", CreateInvoiceRequest{AppointmentID: "appt-1"})
	require.Error(t, err)
}

func TestCreateNumbersInvoicesSequentially(t *testing.T) {
	svc, _, _ := newInvoiceFixture(invoiceClock)

	first, err := svc.Create("tenant-1", CreateInvoiceRequest{
		AppointmentID: "appt-1",
		ClientID:      "client-1",
		Items:         []models.InvoiceItem{{ItemName: "Haircut", Quantity: 1, Price: 500}},
	})
	require.NoError(t, err)
	second, err := svc.Create("tenant-1", CreateInvoiceRequest{
		AppointmentID: "appt-2",
		ClientID:      "client-1",
		Items:         []models.InvoiceItem{{ItemName: "Pedicure", Quantity: 1, Price: 400}},
	})
	require.NoError(t, err)

	prefix := fmt.Sprintf("INV-%d-", invoiceClock.Unix())
	require.Equal(t, prefix+"1", first.InvoiceNumber)
	require.Equal(t, prefix+"2", second.InvoiceNumber)
}

func TestCreateWithPaymentMethodIsPaidImmediately(t *testing.T) {
	svc, _, clients := newInvoiceFixture(invoiceClock)

	inv, err := svc.Create("tenant-1", CreateInvoiceRequest{
		AppointmentID: "appt-1",
		ClientID:      "client-1",
		Items:         []models.InvoiceItem{{ItemName: "Haircut", Quantity: 1, Price: 500}},
		PaymentMethod: models.PaymentUPI,
	})
	require.NoError(t, err)

	require.Equal(t, models.PaymentPaid, inv.PaymentStatus)
	require.NotNil(t, inv.PaidAt)
	require.Equal(t, 1, clients.calls)
	require.Equal(t, models.TierSilver, clients.tier)
	require.Equal(t, float64(500), clients.spend)
}

func TestRecordPaymentRefreshesLoyaltyTier(t *testing.T) {
	svc, invoices, clients := newInvoiceFixture(invoiceClock)

	// The client already has 19,600 in paid history; this payment crosses
	// the Gold threshold.
	invoices.invoices = []models.Invoice{
		{ID: "old", TenantID: "tenant-1", ClientID: "client-1", Total: 19600, PaymentStatus: models.PaymentPaid},
		{ID: "open", TenantID: "tenant-1", ClientID: "client-1", Total: 500, PaymentStatus: models.PaymentPending},
	}

	inv, err := svc.RecordPayment("tenant-1", "open", RecordPaymentRequest{
		PaymentMethod: models.PaymentCash,
		PaymentStatus: models.PaymentPaid,
	})
	require.NoError(t, err)
	require.Equal(t, models.PaymentPaid, inv.PaymentStatus)
	require.NotNil(t, inv.PaidAt)

	require.Equal(t, 1, clients.calls)
	require.Equal(t, models.TierGold, clients.tier)
	require.Equal(t, float64(20100), clients.spend)
}

func TestRecordPaymentNonPaidStatusSkipsLoyalty(t *testing.T) {
	svc, invoices, clients := newInvoiceFixture(invoiceClock)
	invoices.invoices = []models.Invoice{
		{ID: "open", TenantID: "tenant-1", ClientID: "client-1", Total: 500, PaymentStatus: models.PaymentPending},
	}

	inv, err := svc.RecordPayment("tenant-1", "open", RecordPaymentRequest{
		PaymentMethod: models.PaymentCard,
		PaymentStatus: models.PaymentPartial,
	})
	require.NoError(t, err)
	require.Equal(t, models.PaymentPartial, inv.PaymentStatus)
	require.Nil(t, inv.PaidAt)
	require.Zero(t, clients.calls)
}

func TestGetByIDEnforcesTenantOwnership(t *testing.T) {
	svc, invoices, _ := newInvoiceFixture(invoiceClock)
	invoices.invoices = []models.Invoice{
		{ID: "inv-1", TenantID: "tenant-1", ClientID: "client-1", Total: 500},
	}

	_, err := svc.GetByID("tenant-2", "inv-1")
	require.Error(t, err)
}
