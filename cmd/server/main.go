package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	_ "github.com/lib/pq"

	httpapi "unistay-backend/internal/api/http"
	"unistay-backend/internal/config"
	"unistay-backend/internal/logger"
	"unistay-backend/internal/migrate"
	"unistay-backend/internal/repository/postgres"
	"unistay-backend/internal/security"
	"unistay-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting UniStay Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Apply migrations when configured to
	if cfg.Migrations.Auto {
		migrator, err := migrate.NewMigrator(db, cfg.Migrations.Dir)
		if err != nil {
			logger.Error("Failed to initialize migrator", "error", err)
			log.Fatalf("Failed to initialize migrator: %v", err)
		}
		if err := migrator.Up(context.Background()); err != nil {
			logger.Error("Failed to apply migrations", "error", err)
			log.Fatalf("Failed to apply migrations: %v", err)
		}
	}

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Initialize Email Service
	emailSvc := service.NewEmailService(
		cfg.SendGrid.APIKey,
		cfg.SendGrid.From,
		cfg.SendGrid.FromName,
	)

	// Initialize Services
	authSvc := service.NewAuthService(store.Users, tokenManager)
	bookingSvc := service.NewBookingService(store, store.Bookings, emailSvc)
	paymentSvc := service.NewPaymentService(store, store.Payments, emailSvc)
	propertySvc := service.NewPropertyService(store.Properties)
	noteSvc := service.NewNotificationService(store.Notifications)
	adminSvc := service.NewAdminService(store.Users, store.Activity, store.Credit)

	// Initialize HTTP handlers and router
	handlers := httpapi.NewHandlers(authSvc, bookingSvc, paymentSvc, propertySvc, noteSvc, adminSvc)
	router := httpapi.NewRouter(handlers, tokenManager)

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := server.ListenAndServe(); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
