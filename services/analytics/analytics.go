// Package analytics computes the owner dashboard: sales, staff leaderboard,
// service popularity, customer insights and stock alerts.
package analytics

import (
	"sort"
	"time"

	appointmentRepo "glowdesk/database/repository/appointment"
	clientRepo "glowdesk/database/repository/client"
	inventoryRepo "glowdesk/database/repository/inventory"
	invoiceRepo "glowdesk/database/repository/invoice"
	serviceRepo "glowdesk/database/repository/service"
	staffRepo "glowdesk/database/repository/staff"
	"glowdesk/models"

	"go.uber.org/zap"
)

// AnalyticsService is the reporting API.
type AnalyticsService interface {
	SalesOverview(tenantID string) (*models.SalesOverview, error)
	StaffLeaderboard(tenantID string) ([]models.StaffLeaderboardEntry, error)
	ServicePopularity(tenantID string, from, to time.Time) ([]models.ServicePopularity, error)
	CustomerInsights(tenantID string) (*models.CustomerInsights, error)
	InventoryAlerts(tenantID string) ([]models.InventoryAlert, error)
}

// DefaultAnalyticsService is the production implementation.
type DefaultAnalyticsService struct {
	invoices     invoiceRepo.InvoiceRepository
	appointments appointmentRepo.AppointmentRepository
	services     serviceRepo.ServiceRepository
	staff        staffRepo.StaffRepository
	clients      clientRepo.ClientRepository
	inventory    inventoryRepo.InventoryRepository
	logger       *zap.Logger
	now          func() time.Time
}

// NewAnalyticsService wires an analytics service.
func NewAnalyticsService(
	invoices invoiceRepo.InvoiceRepository,
	appointments appointmentRepo.AppointmentRepository,
	services serviceRepo.ServiceRepository,
	staff staffRepo.StaffRepository,
	clients clientRepo.ClientRepository,
	inventory inventoryRepo.InventoryRepository,
	logger *zap.Logger,
) *DefaultAnalyticsService {
	return &DefaultAnalyticsService{
		invoices:     invoices,
		appointments: appointments,
		services:     services,
		staff:        staff,
		clients:      clients,
		inventory:    inventory,
		logger:       logger,
		now:          time.Now,
	}
}

// SalesOverview sums paid revenue over today, the last 7 days, the last 30
// days, and all time.
func (s *DefaultAnalyticsService) SalesOverview(tenantID string) (*models.SalesOverview, error) {
	now := s.now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	epoch := time.Unix(0, 0)

	daily, err := s.invoices.SumPaidBetween(tenantID, startOfDay, now)
	if err != nil {
		return nil, err
	}
	weekly, err := s.invoices.SumPaidBetween(tenantID, startOfDay.AddDate(0, 0, -6), now)
	if err != nil {
		return nil, err
	}
	monthly, err := s.invoices.SumPaidBetween(tenantID, startOfDay.AddDate(0, 0, -29), now)
	if err != nil {
		return nil, err
	}
	total, err := s.invoices.SumPaidBetween(tenantID, epoch, now)
	if err != nil {
		return nil, err
	}

	return &models.SalesOverview{Daily: daily, Weekly: weekly, Monthly: monthly, Total: total}, nil
}

// StaffLeaderboard ranks staff by revenue generated, descending.
func (s *DefaultAnalyticsService) StaffLeaderboard(tenantID string) ([]models.StaffLeaderboardEntry, error) {
	members, err := s.staff.GetByTenant(tenantID)
	if err != nil {
		return nil, err
	}

	entries := make([]models.StaffLeaderboardEntry, 0, len(members))
	for _, m := range members {
		entries = append(entries, models.StaffLeaderboardEntry{
			StaffID:       m.ID,
			StaffName:     m.Name,
			Revenue:       m.Performance.RevenueGenerated,
			ClientsServed: m.Performance.ServicesCompleted,
			AverageRating: m.Performance.AverageRating,
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Revenue > entries[j].Revenue })
	return entries, nil
}

// ServicePopularity counts bookings per service in [from, to), ranked by volume.
func (s *DefaultAnalyticsService) ServicePopularity(tenantID string, from, to time.Time) ([]models.ServicePopularity, error) {
	appointments, err := s.appointments.GetBetween(tenantID, from, to)
	if err != nil {
		return nil, err
	}
	catalog, err := s.services.GetByTenant(tenantID)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*models.ServicePopularity, len(catalog))
	for _, svc := range catalog {
		byID[svc.ID] = &models.ServicePopularity{ServiceID: svc.ID, ServiceName: svc.Name}
	}
	priceOf := make(map[string]float64, len(catalog))
	for _, svc := range catalog {
		priceOf[svc.ID] = svc.Price
	}

	for _, a := range appointments {
		if a.Status == models.StatusCancelled || a.Status == models.StatusNoShow {
			continue
		}
		entry, ok := byID[a.ServiceID]
		if !ok {
			continue
		}
		entry.Bookings++
		entry.Revenue += priceOf[a.ServiceID]
	}

	result := make([]models.ServicePopularity, 0, len(byID))
	for _, entry := range byID {
		if entry.Bookings > 0 {
			result = append(result, *entry)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Bookings > result[j].Bookings })
	return result, nil
}

// CustomerInsights splits the client base into first-time and repeat visitors.
func (s *DefaultAnalyticsService) CustomerInsights(tenantID string) (*models.CustomerInsights, error) {
	newClients, err := s.clients.CountByVisits(tenantID, false)
	if err != nil {
		return nil, err
	}
	repeat, err := s.clients.CountByVisits(tenantID, true)
	if err != nil {
		return nil, err
	}
	return &models.CustomerInsights{NewClients: int(newClients), RepeatClients: int(repeat)}, nil
}

// InventoryAlerts lists items at or below their reorder threshold.
func (s *DefaultAnalyticsService) InventoryAlerts(tenantID string) ([]models.InventoryAlert, error) {
	items, err := s.inventory.GetLowStock(tenantID)
	if err != nil {
		return nil, err
	}

	alerts := make([]models.InventoryAlert, 0, len(items))
	for _, item := range items {
		alerts = append(alerts, models.InventoryAlert{
			ItemID:          item.ID,
			ItemName:        item.Name,
			CurrentQuantity: item.Quantity,
			Threshold:       item.Threshold,
			Unit:            item.Unit,
			Supplier:        item.Supplier,
		})
	}
	return alerts, nil
}
