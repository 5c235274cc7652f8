package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"rfp-desk/internal/api"
	"rfp-desk/internal/api/handlers"
	"rfp-desk/internal/repository"
	"rfp-desk/internal/service"
	"rfp-desk/pkg/config"
	"rfp-desk/pkg/logger"
	"rfp-desk/pkg/postgres"

	"go.uber.org/zap"
)

// @title rfp-desk API
// @version 1.0
// @description Turns RFP descriptions and vendor replies into structured procurement data and compares proposals.

// @BasePath /

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level, cfg.Logger.Development); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting rfp-desk service")

	gateway, closeGateway := service.NewGateway(&cfg.GigaChat, appLogger)
	defer closeGateway()

	procurement := service.NewProcurementService(gateway, &cfg.Extraction, appLogger)

	// Storage is optional; without it only the stateless AI routes are served
	ctx := context.Background()
	var rfpHandler *handlers.RFPHandler
	if cfg.Database.Enabled {
		db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		if cfg.Database.AutoMigrate {
			if err := postgres.ApplyMigrations(ctx, db, appLogger); err != nil {
				appLogger.Fatal("Failed to apply migrations", zap.Error(err))
			}
		}

		rfpRepo := repository.NewRFPRepository(db, appLogger)
		proposalRepo := repository.NewProposalRepository(db, appLogger)
		vendorRepo := repository.NewVendorRepository(db, appLogger)

		rfpService := service.NewRFPService(procurement, rfpRepo, proposalRepo, vendorRepo, appLogger)
		rfpHandler = handlers.NewRFPHandler(rfpService, appLogger)
	}

	aiHandler := handlers.NewAIHandler(procurement, gateway, cfg.Database.Enabled, appLogger)

	// Setup router
	app := api.SetupRouter(api.RouterConfig{
		BodyLimit:    cfg.Server.BodyLimit,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, aiHandler, rfpHandler, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr), zap.Bool("gateway", gateway.Available()))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
