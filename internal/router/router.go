// Package router assembles the HTTP API.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"ledgerline/internal/config"
	"ledgerline/internal/handlers"
	"ledgerline/internal/middleware"
	"ledgerline/internal/realize"
	"ledgerline/internal/schedule"
	"ledgerline/internal/services"

	_ "ledgerline/internal/docs" // swagger docs
)

// Services bundles the service layer the router dispatches to.
type Services struct {
	Accounts     services.AccountServicer
	Transactions services.TransactionServicer
	Recurring    services.RecurringServicer
	Budgets      services.BudgetServicer
	Snapshots    services.SnapshotServicer
	Audit        services.AuditServicer
}

// NewServices builds the gorm-backed service layer.
func NewServices(db *gorm.DB, cfg *config.Config) *Services {
	accounts := services.NewAccountService(db)
	engine := schedule.NewEngine(schedule.WithCacheSize(cfg.ScheduleCacheSize))
	return &Services{
		Accounts:     accounts,
		Transactions: services.NewTransactionService(db, accounts),
		Recurring:    services.NewRecurringService(db, realize.NewService(engine)),
		Budgets:      services.NewBudgetService(db),
		Snapshots:    services.NewSnapshotService(db),
		Audit:        services.NewAuditService(db),
	}
}

// New returns a gin engine with every route registered.
func New(cfg *config.Config, svc *Services) *gin.Engine {
	accountHandler := handlers.NewAccountHandler(svc.Accounts, svc.Audit)
	transactionHandler := handlers.NewTransactionHandler(svc.Transactions, svc.Audit)
	recurringHandler := handlers.NewRecurringHandler(svc.Recurring, svc.Audit)
	budgetHandler := handlers.NewBudgetHandler(svc.Budgets, svc.Audit)
	snapshotHandler := handlers.NewSnapshotHandler(svc.Snapshots)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.Metrics())
	router.Use(middleware.ErrorHandler())
	router.Use(cors())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Scheduler-facing routes
	pipeline := v1.Group("/pipeline")
	pipeline.Use(middleware.PipelineAuthMiddleware(cfg.PipelineAPIKey))
	pipeline.POST("/realize", recurringHandler.RealizeAll)
	pipeline.POST("/snapshots", snapshotHandler.ComputeSnapshots)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	accounts := protected.Group("/accounts")
	accounts.POST("", accountHandler.CreateAccount)
	accounts.GET("", accountHandler.GetUserAccounts)
	accounts.GET("/summary", accountHandler.GetSummary)
	accounts.GET("/:id", accountHandler.GetAccountByID)
	accounts.PUT("/:id", accountHandler.UpdateAccount)
	accounts.GET("/:id/transactions", transactionHandler.GetAccountTransactions)
	accounts.GET("/:id/running-balances", accountHandler.GetRunningBalances)

	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetUserTransactions)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	recurring := protected.Group("/recurring")
	recurring.POST("", recurringHandler.CreateTemplate)
	recurring.GET("", recurringHandler.GetTemplates)
	recurring.POST("/realize", recurringHandler.RealizeDue)
	recurring.GET("/:id", recurringHandler.GetTemplate)
	recurring.PUT("/:id", recurringHandler.UpdateTemplate)
	recurring.DELETE("/:id", recurringHandler.DeleteTemplate)
	recurring.GET("/:id/upcoming", recurringHandler.GetUpcoming)

	budgets := protected.Group("/budgets")
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.GET("/:id", budgetHandler.GetBudget)
	budgets.PUT("/:id", budgetHandler.UpdateBudget)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)
	budgets.GET("/:id/progress", budgetHandler.GetBudgetProgress)

	protected.GET("/snapshots", snapshotHandler.GetSnapshots)

	return router
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
