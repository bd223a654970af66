// File: slotsmith/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"slotsmith/config"
	"slotsmith/cron"
	"slotsmith/database"
	appttypeRepo "slotsmith/database/repository/appttype"
	blockedRepo "slotsmith/database/repository/blocked"
	bookingRepo "slotsmith/database/repository/booking"
	rulesRepo "slotsmith/database/repository/rules"
	"slotsmith/handlers"
	"slotsmith/routes"
	"slotsmith/services/calendar"
	"slotsmith/services/drivetime"
	"slotsmith/services/scheduling"
	"slotsmith/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	loc, err := time.LoadLocation(config.AppConfig.Timezone)
	if err != nil {
		logger.Sugar().Fatalf("main: invalid TIMEZONE %q: %v", config.AppConfig.Timezone, err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	typeRepo := appttypeRepo.NewMongoAppointmentTypeRepo()
	ruleRepo := rulesRepo.NewMongoRuleRepo()
	blockRepo := blockedRepo.NewMongoBlockedRepo()
	bookRepo := bookingRepo.NewMongoBookingRepo()

	// services.
	providerTimeout := time.Duration(config.AppConfig.ProviderTimeoutSecs) * time.Second
	calendarProvider := calendar.NewGoogleCalendar(
		config.AppConfig.GoogleClientID,
		config.AppConfig.GoogleClientSecret,
		config.AppConfig.GoogleRefreshToken,
		loc,
		providerTimeout,
	)
	driveCache := drivetime.NewRedisCache(
		utils.GetCacheClient(),
		time.Duration(config.AppConfig.DriveTimeCacheDays)*24*time.Hour,
	)
	driveService := drivetime.NewService(
		config.AppConfig.GoogleMapsAPIKey,
		driveCache,
		config.AppConfig.DriveTimeFailOpen,
		providerTimeout,
	)

	engine := scheduling.NewDefaultEngine(
		typeRepo,
		ruleRepo,
		blockRepo,
		calendarProvider,
		driveService,
		config.AppConfig.HomeAddress,
		config.AppConfig.MinAdvanceHours,
		config.ConflictCalendars(),
		config.AppConfig.DriveTimeFailOpen,
	)

	handlerBundle := &routes.HandlerBundle{
		Slots:   handlers.NewSlotsHandler(engine),
		Admin:   handlers.NewAdminHandler(ruleRepo, blockRepo, typeRepo),
		Booking: handlers.NewBookingHandler(engine, bookRepo, typeRepo),
	}
	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)
	cron.InitDriveTimeWorker(typeRepo, driveService)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	go func() {
		logger.Sugar().Infof("Starting server on %s...", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server error: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: forced shutdown: %v", err)
	}
	logger.Sugar().Info("Server stopped")
}
