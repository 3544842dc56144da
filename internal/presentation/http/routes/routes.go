package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/latia/admin-api/internal/config"
	domainRepo "github.com/latia/admin-api/internal/domain/repository"
	"github.com/latia/admin-api/internal/presentation/http/handler"
	"github.com/latia/admin-api/internal/presentation/http/middleware"
	"github.com/latia/admin-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Product   *handler.ProductHandler
	Invoice   *handler.InvoiceHandler
	Client    *handler.ClientHandler
	Sale      *handler.SaleHandler
	Expense   *handler.ExpenseHandler
	Dashboard *handler.DashboardHandler
	Admin     *handler.AdminHandler
	Public    *handler.PublicHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	AdminChecker    middleware.AdminChecker
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// Receipt files are public once their URL is known
	router.Static(deps.Cfg.Storage.UploadBaseURL, deps.Cfg.Storage.UploadDir)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		registerAuthRoutes(v1, h)
		registerPublicRoutes(v1, h)

		// Protected routes: authentication first, then the admin allow-list
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(middleware.RequireAdmin(deps.AdminChecker))

		rateLimiter := middleware.NewIPRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
		// Google OAuth routes
		auth.GET("/google", h.Auth.GoogleLogin)
		auth.GET("/google/callback", h.Auth.GoogleCallback)
	}
}

// registerPublicRoutes wires the customer-facing invoice views. They require
// knowing the invoice UUID, which is the shared link itself.
func registerPublicRoutes(v1 *gin.RouterGroup, h *Handlers) {
	public := v1.Group("/public")
	{
		public.GET("/invoices/:id", h.Public.Invoice)
		public.GET("/invoices/:id/pdf", h.Public.InvoicePDF)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	idempotency := middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo}

	// Profile
	protected.GET("/profile", h.Auth.Profile)

	// Dashboard
	protected.GET("/dashboard", h.Dashboard.Stats)

	// Products. Mutations may opt into deduplication by sending an
	// idempotency key; reads pass through untouched.
	products := protected.Group("/products")
	products.Use(middleware.Idempotency(idempotency))
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.GET("/watch", h.Product.Watch)
		products.GET("/low-stock", h.Product.LowStock)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
	}

	// Invoices. Creation and the lifecycle transitions have side effects
	// that must happen exactly once, so they demand an idempotency key.
	invoices := protected.Group("/invoices")
	{
		invoices.GET("", h.Invoice.List)
		invoices.POST("", middleware.IdempotencyRequired(idempotency), h.Invoice.Create)
		invoices.GET("/watch", h.Invoice.Watch)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.PUT("/:id", h.Invoice.Update)
		invoices.DELETE("/:id", h.Invoice.Delete)
		invoices.POST("/:id/pay", middleware.IdempotencyRequired(idempotency), h.Invoice.MarkPaid)
		invoices.POST("/:id/deliver", middleware.IdempotencyRequired(idempotency), h.Invoice.MarkDelivered)
	}

	// Clients
	clients := protected.Group("/clients")
	clients.Use(middleware.Idempotency(idempotency))
	{
		clients.GET("", h.Client.List)
		clients.POST("", h.Client.Create)
		clients.GET("/:id", h.Client.Get)
		clients.PUT("/:id", h.Client.Update)
		clients.DELETE("/:id", h.Client.Delete)
	}

	// Sales (append-only, written by the paid transition)
	sales := protected.Group("/sales")
	{
		sales.GET("", h.Sale.List)
		sales.GET("/watch", h.Sale.Watch)
		sales.GET("/export", h.Sale.Export)
	}

	// Expenses
	expenses := protected.Group("/expenses")
	expenses.Use(middleware.Idempotency(idempotency))
	{
		expenses.GET("", h.Expense.List)
		expenses.POST("", h.Expense.Create)
		expenses.GET("/watch", h.Expense.Watch)
		expenses.GET("/export", h.Expense.Export)
		expenses.GET("/categories", h.Expense.ListCategories)
		expenses.POST("/categories", h.Expense.AddCategory)
		expenses.DELETE("/categories/:id", h.Expense.RemoveCategory)
		expenses.GET("/:id", h.Expense.Get)
		expenses.PUT("/:id", h.Expense.Update)
		expenses.DELETE("/:id", h.Expense.Delete)
	}

	// Admin allow-list (super admin only)
	admins := protected.Group("/admins")
	admins.Use(middleware.RequireSuperAdmin(deps.AdminChecker))
	{
		admins.GET("", h.Admin.List)
		admins.POST("", h.Admin.Add)
		admins.DELETE("/:email", h.Admin.Remove)
	}
}
