// File: glowdesk/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"glowdesk/config"
	"glowdesk/cron"
	"glowdesk/database"
	appointmentRepoPkg "glowdesk/database/repository/appointment"
	branchRepoPkg "glowdesk/database/repository/branch"
	clientRepoPkg "glowdesk/database/repository/client"
	feedbackRepoPkg "glowdesk/database/repository/feedback"
	inventoryRepoPkg "glowdesk/database/repository/inventory"
	invoiceRepoPkg "glowdesk/database/repository/invoice"
	serviceRepoPkg "glowdesk/database/repository/service"
	staffRepoPkg "glowdesk/database/repository/staff"
	tenantRepoPkg "glowdesk/database/repository/tenant"
	userRepoPkg "glowdesk/database/repository/user"
	"glowdesk/handlers"
	"glowdesk/middleware"
	"glowdesk/routes"
	"glowdesk/services/analytics"
	"glowdesk/services/booking"
	"glowdesk/services/bot"
	"glowdesk/services/feedback"
	"glowdesk/services/invoice"
	"glowdesk/services/notification"
	"glowdesk/services/storage"
	"glowdesk/services/tasks"
	"glowdesk/services/user"
	"glowdesk/services/whatsapp"
	"glowdesk/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()
	utils.InitConversationCache()
	utils.FirebaseInit()

	var storageSvc storage.StorageService
	if cloudinaryStorage, err := storage.NewCloudinaryStorage(); err != nil {
		logger.Sugar().Warnf("main: media storage disabled: %v", err)
	} else {
		storageSvc = cloudinaryStorage
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	tenantRepo := tenantRepoPkg.NewMongoTenantRepo()
	branchRepo := branchRepoPkg.NewMongoBranchRepo()
	staffRepo := staffRepoPkg.NewMongoStaffRepo()
	serviceRepo := serviceRepoPkg.NewMongoServiceRepo()
	clientRepo := clientRepoPkg.NewMongoClientRepo()
	appointmentRepo := appointmentRepoPkg.NewMongoAppointmentRepo()
	inventoryRepo := inventoryRepoPkg.NewMongoInventoryRepo()
	invoiceRepo := invoiceRepoPkg.NewMongoInvoiceRepo()
	feedbackRepo := feedbackRepoPkg.NewMongoFeedbackRepo()

	// Background jobs: the asynq client enqueues reminders, the worker
	// consumes them and runs the daily scans.
	taskClient := cron.NewTaskClient()
	reminderScheduler := tasks.NewScheduler(taskClient)
	sender := whatsapp.NewSenderFromConfig()

	// services.
	notificationService := notification.NewNotificationService(
		appointmentRepo, serviceRepo, staffRepo, clientRepo,
		userRepo, tenantRepo, inventoryRepo, invoiceRepo,
		sender, logger,
	)
	userService := user.NewUserService(userRepo, tenantRepo, branchRepo, logger)
	bookingService := booking.NewBookingService(appointmentRepo, serviceRepo, staffRepo, clientRepo, inventoryRepo, reminderScheduler, notificationService, logger)
	invoiceService := invoice.NewInvoiceService(invoiceRepo, clientRepo, appointmentRepo, serviceRepo, notificationService, logger)
	feedbackService := feedback.NewFeedbackService(feedbackRepo, staffRepo, logger)
	analyticsService := analytics.NewAnalyticsService(invoiceRepo, appointmentRepo, serviceRepo, staffRepo, clientRepo, inventoryRepo, logger)

	conversationStore := bot.NewRedisStore(utils.GetConversationCacheClient())
	botEngine := bot.NewEngine(bot.Deps{
		Store:        conversationStore,
		Services:     serviceRepo,
		Branches:     branchRepo,
		Staff:        staffRepo,
		Appointments: appointmentRepo,
		Clients:      clientRepo,
		Reminders:    reminderScheduler,
	}, logger)

	cron.InitWorker(notificationService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Users: userRepo,

		Auth:        handlers.NewAuthHandler(userService),
		Tenant:      handlers.NewTenantHandler(tenantRepo),
		Branch:      handlers.NewBranchHandler(branchRepo),
		Staff:       handlers.NewStaffHandler(staffRepo, userRepo),
		Service:     handlers.NewServiceHandler(serviceRepo),
		Client:      handlers.NewClientHandler(clientRepo),
		Appointment: handlers.NewAppointmentHandler(bookingService),
		Inventory:   handlers.NewInventoryHandler(inventoryRepo),
		Invoice:     handlers.NewInvoiceHandler(invoiceService),
		Feedback:    handlers.NewFeedbackHandler(feedbackService),
		Analytics:   handlers.NewAnalyticsHandler(analyticsService),
		WhatsApp:    handlers.NewWhatsAppHandler(botEngine, conversationStore, tenantRepo, serviceRepo, sender, logger),
		Upload:      handlers.NewUploadHandler(storageSvc),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetAuthCacheClient(), utils.GetConversationCacheClient()},
		database.MongoClient,
	)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	if err := taskClient.Close(); err != nil {
		logger.Sugar().Warnf("main: failed to close task client: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
