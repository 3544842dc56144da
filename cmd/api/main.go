package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/latia/admin-api/internal/application/service"
	"github.com/latia/admin-api/internal/config"
	"github.com/latia/admin-api/internal/infrastructure/database"
	"github.com/latia/admin-api/internal/infrastructure/repository"
	"github.com/latia/admin-api/internal/infrastructure/storage"
	"github.com/latia/admin-api/internal/infrastructure/watch"
	"github.com/latia/admin-api/internal/presentation/http/handler"
	"github.com/latia/admin-api/internal/presentation/http/routes"
	"github.com/latia/admin-api/pkg/oauth"
	"github.com/latia/admin-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize receipt storage
	receiptStore, err := storage.NewLocalReceiptStore(cfg.Storage.UploadDir, cfg.Storage.UploadBaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize receipt storage: %v", err)
	}

	// Change hub for the watch (SSE) endpoints
	hub := watch.NewHub()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	productRepo := repository.NewProductRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	clientRepo := repository.NewClientRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	expenseCategoryRepo := repository.NewExpenseCategoryRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize Google OAuth service
	googleOAuthService := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:           cfg.OAuth.GoogleClientID,
		ClientSecret:       cfg.OAuth.GoogleClientSecret,
		RedirectURL:        cfg.OAuth.GoogleRedirectURL,
		FrontendSuccessURL: cfg.OAuth.FrontendSuccessURL,
		FrontendErrorURL:   cfg.OAuth.FrontendErrorURL,
	})

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager, googleOAuthService)
	adminService := service.NewAdminService(adminRepo, cfg.Admin.SuperAdminEmail)
	productService := service.NewProductService(productRepo, hub)
	invoiceService := service.NewInvoiceService(invoiceRepo, productRepo, clientRepo, hub)
	clientService := service.NewClientService(clientRepo)
	saleService := service.NewSaleService(saleRepo)
	expenseService := service.NewExpenseService(expenseRepo, expenseCategoryRepo, receiptStore, hub)
	dashboardService := service.NewDashboardService(saleRepo, invoiceRepo, productRepo, expenseRepo, clientRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Product:   handler.NewProductHandler(productService, hub),
		Invoice:   handler.NewInvoiceHandler(invoiceService, hub),
		Client:    handler.NewClientHandler(clientService),
		Sale:      handler.NewSaleHandler(saleService, hub, &cfg.Company),
		Expense:   handler.NewExpenseHandler(expenseService, hub, &cfg.Company),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Admin:     handler.NewAdminHandler(adminService),
		Public:    handler.NewPublicHandler(invoiceService, &cfg.Company),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		AdminChecker:    adminService,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
