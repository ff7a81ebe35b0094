// File: spritz/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"

	"spritz/config"
	"spritz/cron"
	"spritz/database"
	bookingRepo "spritz/database/repository/booking"
	integrationRepo "spritz/database/repository/integration"
	profileRepo "spritz/database/repository/profile"
	windowRepo "spritz/database/repository/window"
	"spritz/handlers"
	"spritz/middleware"
	"spritz/routes"
	"spritz/services/calendar"
	"spritz/services/notification"
	"spritz/services/scheduling"
	"spritz/services/tasks"
	"spritz/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()
	utils.FirebaseInit()
	tasks.InitTaskClient()

	if err := windowRepo.EnsureWindowIndexes(); err != nil {
		logger.Sugar().Warnf("main: failed to ensure window indexes: %v", err)
	}
	if err := bookingRepo.EnsureBookingIndexes(); err != nil {
		logger.Sugar().Warnf("main: failed to ensure booking indexes: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	windows := windowRepo.NewMongoWindowRepo()
	bookings := bookingRepo.NewMongoBookingRepo()
	profiles := profileRepo.NewMongoProfileRepo()
	integrations := integrationRepo.NewMongoIntegrationRepo()

	// services.
	notificationService := notification.NewDefaultNotificationService(profiles)

	schedulingService := &scheduling.DefaultSchedulingService{
		WindowRepo:      windows,
		BookingRepo:     bookings,
		ProfileRepo:     profiles,
		IntegrationRepo: integrations,
		BusySource:      calendar.NewGoogleBusySource(integrations),
		Cache:           utils.GetCacheClient(),
	}

	bookingService := &scheduling.DefaultBookingSessionService{
		SchedulingSvc: schedulingService,
		BookingRepo:   bookings,
		ProfileRepo:   profiles,
		Notification:  notificationService,
		Sessions:      scheduling.NewRedisSessionStore(utils.GetCacheClient()),
		Payments:      scheduling.StripeProvider{},
	}

	schedulingHandler := handlers.NewSchedulingHandler(schedulingService)
	bookingHandler := handlers.NewBookingHandler(bookingService, logger)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		GetAvailabilityHandler: schedulingHandler.GetAvailabilityHandler,
		GetWindowsHandler:      schedulingHandler.GetWindowsHandler,
		SetWindowsHandler:      schedulingHandler.SetWindowsHandler,
		DeleteWindowHandler:    schedulingHandler.DeleteWindowHandler,
		GetProfileHandler:      schedulingHandler.GetProfileHandler,
		UpdateProfileHandler:   schedulingHandler.UpdateProfileHandler,

		InitiateSession: bookingHandler.InitiateSession,
		ConfirmBooking:  bookingHandler.ConfirmBooking,
		CancelBooking:   bookingHandler.CancelBooking,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the reminder worker.
	cron.InitReminderWorker(notificationService)

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

	logger.Sugar().Info("main: server stopped gracefully")
}
