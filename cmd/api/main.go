// cmd/api/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/commerce-api/internal/config"
	"github.com/your-org/commerce-api/internal/domain/analytics"
	"github.com/your-org/commerce-api/internal/domain/customer"
	"github.com/your-org/commerce-api/internal/domain/inventory"
	"github.com/your-org/commerce-api/internal/domain/order"
	"github.com/your-org/commerce-api/internal/domain/product"
	"github.com/your-org/commerce-api/internal/domain/recommendation"
	"github.com/your-org/commerce-api/internal/domain/whatsapp"
	"github.com/your-org/commerce-api/internal/infrastructure/database/postgres"
	"github.com/your-org/commerce-api/internal/infrastructure/database/redis"
	"github.com/your-org/commerce-api/internal/interfaces/http"
	"github.com/your-org/commerce-api/internal/interfaces/http/handlers"
	"github.com/your-org/commerce-api/internal/interfaces/http/routes"
	"github.com/your-org/commerce-api/internal/pkg/logger"
	"github.com/your-org/commerce-api/internal/pkg/pdf"
	"github.com/your-org/commerce-api/internal/pkg/pricing"
	"gorm.io/gorm"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	log := logger.New(cfg)
	log.WithFields(logrus.Fields{
		"name":        cfg.App.Name,
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	}).Info("Starting application")

	calc := pricing.NewCalculator(cfg.Platform.FeeRate)

	// Connect to database
	db, err := postgres.NewConnection(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	// Connect to Redis
	redisClient, err := redis.NewConnection(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to Redis")
	}
	defer redisClient.Close()

	// Run database migrations
	migration := postgres.NewMigration(db.GetDB(), calc, log)

	if err := migration.RunAutoMigrations(); err != nil {
		log.WithError(err).Fatal("Database migration failed")
	}

	if err := migration.CreateIndexes(); err != nil {
		log.WithError(err).Warn("Index creation failed")
	}

	// Seed initial data in development
	if cfg.IsDevelopment() {
		if err := migration.SeedInitialData(); err != nil {
			log.WithError(err).Warn("Data seeding failed")
		}
		if err := migration.GetTableInfo(); err != nil {
			log.WithError(err).Warn("Failed to read table info")
		}
	}

	server := http.NewServer(cfg, log, buildHandlers(cfg, db.GetDB(), calc, log), db, redisClient, redisClient.GetClient())

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		log.WithError(err).Error("Failed to shutdown HTTP server gracefully")
	}

	log.Info("Server shutdown completed")
}

// buildHandlers wires repositories and services into HTTP handlers
func buildHandlers(cfg *config.Config, db *gorm.DB, calc *pricing.Calculator, log *logrus.Logger) *routes.Handlers {
	productRepo := product.NewRepository(db)
	orderService := order.NewService(order.NewRepository(db), calc, log)

	h := &routes.Handlers{
		Product:        handlers.NewProductHandler(product.NewService(productRepo, calc, log), log),
		Category:       handlers.NewCategoryHandler(product.NewCategoryService(productRepo), log),
		Order:          handlers.NewOrderHandler(orderService, log),
		Inventory:      handlers.NewInventoryHandler(inventory.NewService(inventory.NewRepository(db), log), log),
		Analytics:      handlers.NewAnalyticsHandler(analytics.NewService(analytics.NewRepository(db)), log),
		Recommendation: handlers.NewRecommendationHandler(recommendation.NewService(recommendation.NewRepository(db), log), log),
		WhatsApp: handlers.NewWhatsAppHandler(
			whatsapp.NewService(whatsapp.NewRepository(db), customer.NewRepository(db), log),
			log,
		),
	}

	if cfg.Invoice.Enabled {
		h.Invoice = handlers.NewInvoiceHandler(orderService, pdf.NewService(&cfg.Invoice), log)
	}

	return h
}
