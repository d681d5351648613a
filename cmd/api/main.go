package main

import (
	"github.com/daftar-app/daftar-api/internal/application/service"
	"github.com/daftar-app/daftar-api/internal/config"
	domainRepo "github.com/daftar-app/daftar-api/internal/domain/repository"
	"github.com/daftar-app/daftar-api/internal/infrastructure/database"
	"github.com/daftar-app/daftar-api/internal/infrastructure/export"
	"github.com/daftar-app/daftar-api/internal/infrastructure/repository"
	"github.com/daftar-app/daftar-api/internal/infrastructure/repository/memory"
	"github.com/daftar-app/daftar-api/internal/presentation/http/handler"
	"github.com/daftar-app/daftar-api/internal/presentation/http/routes"
	"github.com/daftar-app/daftar-api/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	var (
		customerRepo    domainRepo.CustomerRepository
		productRepo     domainRepo.ProductRepository
		billRepo        domainRepo.BillRepository
		transactionRepo domainRepo.TransactionRepository
	)

	switch cfg.Storage.Driver {
	case "memory":
		log.Info().Msg("Using in-memory storage")
		customerRepo = memory.NewCustomerRepository()
		productRepo = memory.NewProductRepository()
		billRepo = memory.NewBillRepository()
		transactionRepo = memory.NewTransactionRepository()
	default:
		db, err := database.NewPostgresDB(&cfg.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}

		if err := database.AutoMigrate(db); err != nil {
			log.Fatal().Err(err).Msg("Failed to run migrations")
		}

		customerRepo = repository.NewCustomerRepository(db)
		productRepo = repository.NewProductRepository(db)
		billRepo = repository.NewBillRepository(db)
		transactionRepo = repository.NewTransactionRepository(db)
	}

	// Initialize services
	inventoryService := service.NewInventoryService(productRepo)
	customerService := service.NewCustomerService(customerRepo)
	productService := service.NewProductService(productRepo)
	billService := service.NewBillService(billRepo, customerRepo, productRepo, inventoryService, log)
	transactionService := service.NewTransactionService(transactionRepo, productRepo, inventoryService, log)
	analyticsService := service.NewAnalyticsService(billRepo, transactionRepo, customerRepo, productRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Customer:    handler.NewCustomerHandler(customerService),
		Product:     handler.NewProductHandler(productService),
		Bill:        handler.NewBillHandler(billService),
		Transaction: handler.NewTransactionHandler(transactionService),
		Analytics:   handler.NewAnalyticsHandler(analyticsService, export.NewExcelExporter()),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		Cfg: cfg,
		Log: log,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Info().
		Str("service", cfg.App.Name).
		Str("env", cfg.App.Env).
		Str("port", port).
		Msg("Starting server")

	if err := router.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}
