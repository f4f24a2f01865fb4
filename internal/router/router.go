package router

import (
	"github.com/gin-gonic/gin"

	"tradebook/internal/domain"
	"tradebook/internal/handler"
	"tradebook/internal/middleware"
	"tradebook/internal/service"
)

// Handlers bundles everything Setup needs to wire the route table.
type Handlers struct {
	Auth       *handler.AuthHandler
	Customer   *handler.CustomerHandler
	Job        *handler.JobHandler
	Document   *handler.DocumentHandler
	CreditNote *handler.CreditNoteHandler
	Payment    *handler.PaymentHandler
	Milestone  *handler.MilestoneHandler
	Expense    *handler.ExpenseHandler
	Report     *handler.ReportHandler
	Settings   *handler.SettingsHandler
	User       *handler.UserHandler
	Health     *handler.HealthHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(authSvc service.AuthService, allowedOrigins []string, h Handlers) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health check
	r.GET("/health", h.Health.Health)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.RefreshToken)

	// Public customer-facing share link
	v1.GET("/share/:token", h.Document.Shared)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	// Customers
	customers := protected.Group("/customers")
	customers.POST("", h.Customer.Create)
	customers.GET("", h.Customer.List)
	customers.GET("/:id", h.Customer.Get)
	customers.PUT("/:id", h.Customer.Update)
	customers.DELETE("/:id", h.Customer.Delete)

	// Jobs
	jobs := protected.Group("/jobs")
	jobs.POST("", h.Job.Create)
	jobs.GET("", h.Job.List)
	jobs.GET("/:id", h.Job.Get)
	jobs.PUT("/:id", h.Job.Update)
	jobs.DELETE("/:id", h.Job.Delete)

	// Documents and their sub-resources
	documents := protected.Group("/documents")
	documents.POST("", h.Document.Create)
	documents.GET("", h.Document.List)
	documents.GET("/:id", h.Document.Get)
	documents.PUT("/:id", h.Document.Update)
	documents.PATCH("/:id/status", h.Document.UpdateStatus)
	documents.POST("/:id/convert", h.Document.Convert)
	documents.POST("/:id/send", h.Document.Send)
	documents.DELETE("/:id", h.Document.Delete)
	documents.GET("/:id/pdf", h.Document.DownloadPDF)
	documents.POST("/:id/share-pdf", h.Document.SharePDF)
	documents.POST("/:id/credit-notes", h.CreditNote.Create)
	documents.GET("/:id/credit-notes", h.CreditNote.ListForInvoice)
	documents.POST("/:id/payments", h.Payment.Record)
	documents.GET("/:id/payments", h.Payment.Summary)
	documents.POST("/:id/milestones", h.Milestone.Create)
	documents.GET("/:id/milestones", h.Milestone.ListByDocument)

	// Milestones addressed directly
	milestones := protected.Group("/milestones")
	milestones.PUT("/:id", h.Milestone.Update)
	milestones.POST("/:id/invoice", h.Milestone.MarkInvoiced)
	milestones.POST("/:id/paid", h.Milestone.MarkPaid)
	milestones.DELETE("/:id", h.Milestone.Delete)

	// Expenses
	expenses := protected.Group("/expenses")
	expenses.POST("", h.Expense.Create)
	expenses.GET("", h.Expense.List)
	expenses.DELETE("/:id", h.Expense.Delete)

	// Reports
	reports := protected.Group("/reports")
	reports.GET("/profit", h.Report.Profit)
	reports.GET("/profit/xlsx", h.Report.ProfitXLSX)

	// Settings (admin only for writes)
	settings := protected.Group("/settings")
	settings.GET("", h.Settings.Get)
	settings.PUT("", middleware.RequireRole(domain.RoleAdmin), h.Settings.Update)

	// User management (admin only)
	users := protected.Group("/users")
	users.Use(middleware.RequireRole(domain.RoleAdmin))
	users.POST("", h.User.Invite)
	users.GET("", h.User.List)
	users.DELETE("/:id", h.User.Deactivate)

	return r
}
