package handlers

import (
	userRepo "glowdesk/database/repository/user"
)

// HandlerBundle groups all endpoint handlers into one struct so routes can be
// registered from a single place. The user repository rides along because the
// role-guard middleware needs it.
type HandlerBundle struct {
	Users userRepo.UserRepository

	Auth        *AuthHandler
	Tenant      *TenantHandler
	Branch      *BranchHandler
	Staff       *StaffHandler
	Service     *ServiceHandler
	Client      *ClientHandler
	Appointment *AppointmentHandler
	Inventory   *InventoryHandler
	Invoice     *InvoiceHandler
	Feedback    *FeedbackHandler
	Analytics   *AnalyticsHandler
	WhatsApp    *WhatsAppHandler
	Upload      *UploadHandler
}
