package routes

import (
	"net/http"
	"time"

	"glowdesk/handlers"
	"glowdesk/middleware"
	"glowdesk/models"
	"glowdesk/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers signup, login and session endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/signup", hb.Auth.Signup)
		api.POST("/login", hb.Auth.Login)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("/logout", hb.Auth.Logout)
		api.GET("/me", hb.Auth.Me)
		api.PUT("/fcm-token", hb.Auth.UpdateFCMToken)
	}
}

// RegisterTenantRoutes registers tenant profile endpoints.
func RegisterTenantRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/tenant")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("", hb.Tenant.Get)
		api.PUT("", middleware.RequireRoles(hb.Users, models.RoleOwner, models.RoleAdmin), hb.Tenant.Update)
	}
}

// RegisterDirectoryRoutes registers branch, staff and service management.
// Reads are open to every authenticated role; writes need owner or admin.
func RegisterDirectoryRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	manage := middleware.RequireRoles(hb.Users, models.RoleOwner, models.RoleAdmin)

	branches := r.Group("/api/branches")
	{
		branches.Use(middleware.JWTAuthMiddleware())
		branches.GET("", hb.Branch.List)
		branches.POST("", manage, hb.Branch.Create)
		branches.PUT("/:id", manage, hb.Branch.Update)
		branches.DELETE("/:id", manage, hb.Branch.Delete)
	}

	staff := r.Group("/api/staff")
	{
		staff.Use(middleware.JWTAuthMiddleware())
		staff.GET("", hb.Staff.List)
		staff.GET("/:id", hb.Staff.Get)
		staff.POST("", manage, hb.Staff.Create)
		staff.PUT("/:id", manage, hb.Staff.Update)
	}

	services := r.Group("/api/services")
	{
		services.Use(middleware.JWTAuthMiddleware())
		services.GET("", hb.Service.List)
		services.POST("", manage, hb.Service.Create)
		services.PUT("/:id", manage, hb.Service.Update)
		services.DELETE("/:id", manage, hb.Service.Delete)
	}
}

// RegisterClientRoutes registers the client book.
func RegisterClientRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/clients")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("", hb.Client.List)
		api.GET("/:id", hb.Client.Get)
		api.POST("", hb.Client.Create)
		api.PUT("/:id", hb.Client.Update)
	}
}

// RegisterAppointmentRoutes sets up the endpoints for the booking engine.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/appointments")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("", hb.Appointment.List)
		api.GET("/slots", hb.Appointment.Slots)
		api.GET("/:id", hb.Appointment.Get)
		api.POST("", hb.Appointment.Create)
		api.PATCH("/:id/status", hb.Appointment.UpdateStatus)
	}
}

// RegisterInventoryRoutes registers retail stock management.
func RegisterInventoryRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	manage := middleware.RequireRoles(hb.Users, models.RoleOwner, models.RoleAdmin)

	api := r.Group("/api/inventory")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("", hb.Inventory.List)
		api.POST("", manage, hb.Inventory.Create)
		api.PUT("/:id", manage, hb.Inventory.Update)
		api.DELETE("/:id", manage, hb.Inventory.Delete)
	}
}

// RegisterInvoiceRoutes registers billing endpoints.
func RegisterInvoiceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/invoices")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("", hb.Invoice.List)
		api.GET("/:id", hb.Invoice.Get)
		api.POST("", hb.Invoice.Create)
		api.POST("/:id/payment", hb.Invoice.RecordPayment)
	}
}

// RegisterFeedbackRoutes registers post-visit feedback endpoints.
func RegisterFeedbackRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/feedback")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("", hb.Feedback.List)
		api.GET("/summary", hb.Feedback.Summary)
		api.POST("", hb.Feedback.Create)
	}
}

// RegisterAnalyticsRoutes registers the owner dashboard. Owner and admin only.
func RegisterAnalyticsRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/analytics")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.Use(middleware.RequireRoles(hb.Users, models.RoleOwner, models.RoleAdmin))
		api.GET("/sales", hb.Analytics.Sales)
		api.GET("/staff", hb.Analytics.StaffLeaderboard)
		api.GET("/services", hb.Analytics.ServicePopularity)
		api.GET("/customers", hb.Analytics.Customers)
		api.GET("/inventory", hb.Analytics.InventoryAlerts)
	}
}

// RegisterWhatsAppRoutes registers the inbound webhook. The webhook is public
// because the messaging provider cannot carry our auth tokens; the test send
// endpoint requires a session.
func RegisterWhatsAppRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/whatsapp")
	{
		api.POST("/webhook", hb.WhatsApp.Webhook)
		api.POST("/send", middleware.JWTAuthMiddleware(), hb.WhatsApp.Send)
	}
}

// RegisterUploadRoutes registers media upload endpoints.
func RegisterUploadRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/uploads")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("/:bucket", hb.Upload.Upload)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.GetHealthStatus())
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterTenantRoutes(r, hb)
	RegisterDirectoryRoutes(r, hb)
	RegisterClientRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterInventoryRoutes(r, hb)
	RegisterInvoiceRoutes(r, hb)
	RegisterFeedbackRoutes(r, hb)
	RegisterAnalyticsRoutes(r, hb)
	RegisterWhatsAppRoutes(r, hb)
	RegisterUploadRoutes(r, hb)
	RegisterHealthRoute(r)
}
