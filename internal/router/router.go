// Package router assembles the HTTP surface: middleware, public routes and
// the JWT-protected /api/v1 tree.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"finledger/internal/config"
	"finledger/internal/handlers"
	"finledger/internal/middleware"
	"finledger/internal/services"
)

// Services bundles everything the handlers depend on.
type Services struct {
	Transactions services.TransactionServicer
	Savings      services.SavingsServicer
	Cards        services.CardServicer
	Categories   services.CategoryServicer
	Goals        services.GoalServicer
	Reports      services.ReportServicer
	Export       services.ExportServicer
	Auth         services.AuthServicer
}

// NewServices wires every service over one shared Gate.
func NewServices(db *gorm.DB, cfg *config.Config) (*Services, error) {
	authService, err := services.NewAuthService(cfg.AuthUsername, cfg.AuthPassword, cfg.AuthPasswordHash)
	if err != nil {
		return nil, err
	}

	gate := services.NewGate(db)
	return &Services{
		Transactions: services.NewTransactionService(gate),
		Savings:      services.NewSavingsService(gate),
		Cards:        services.NewCardService(gate),
		Categories:   services.NewCategoryService(gate),
		Goals:        services.NewGoalService(gate),
		Reports:      services.NewReportService(gate),
		Export:       services.NewExportService(gate),
		Auth:         authService,
	}, nil
}

// New builds the gin engine. backupAPIKey guards the machine backup route;
// an empty key leaves it answering 503.
func New(svc *Services, backupAPIKey string) *gin.Engine {
	authHandler := handlers.NewAuthHandler(svc.Auth)
	transactionHandler := handlers.NewTransactionHandler(svc.Transactions)
	savingsHandler := handlers.NewSavingsHandler(svc.Savings)
	cardHandler := handlers.NewCardHandler(svc.Cards)
	categoryHandler := handlers.NewCategoryHandler(svc.Categories)
	goalHandler := handlers.NewGoalHandler(svc.Goals)
	reportHandler := handlers.NewReportHandler(svc.Reports)
	exportHandler := handlers.NewExportHandler(svc.Export)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(cors())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Public routes
	v1.POST("/auth/login", authHandler.Login)

	backup := v1.Group("/backup", middleware.APIKeyMiddleware(backupAPIKey))
	backup.GET("/transactions.csv", exportHandler.ExportCSV)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)

	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.POST("/income/combined", transactionHandler.CreateCombinedIncome)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.DELETE("", transactionHandler.ResetTransactions)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	savings := protected.Group("/savings")
	savings.GET("", savingsHandler.GetSavings)
	savings.POST("/contributions", savingsHandler.ContributeSavings)
	savings.PUT("", savingsHandler.SetSavings)
	savings.DELETE("", savingsHandler.ResetSavings)

	cards := protected.Group("/cards")
	cards.GET("", cardHandler.ListCards)
	cards.POST("", cardHandler.CreateCard)
	cards.GET("/:name", cardHandler.GetCard)
	cards.PUT("/:name/limit", cardHandler.SetCardLimit)
	cards.DELETE("/:name", cardHandler.DeleteCard)

	categories := protected.Group("/categories")
	categories.GET("", categoryHandler.ListCategories)
	categories.POST("", categoryHandler.CreateCategory)
	categories.DELETE("/:label", categoryHandler.DeleteCategory)

	goals := protected.Group("/goals")
	goals.GET("", goalHandler.ListGoals)
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("/:name", goalHandler.GetGoal)
	goals.POST("/:name/contributions", goalHandler.ContributeGoal)

	reports := protected.Group("/reports")
	reports.GET("/summary", reportHandler.GetSummary)
	reports.GET("/totals", reportHandler.GetTotals)
	reports.GET("/categories", reportHandler.GetCategoryBreakdown)
	reports.GET("/months", reportHandler.GetMonths)
	reports.GET("/months/:month", reportHandler.GetMonth)
	reports.GET("/cards", reportHandler.GetCardStandings)
	reports.GET("/cards/:name", reportHandler.GetCardStanding)
	reports.GET("/savings-ratio", reportHandler.GetSavingsRatio)

	export := protected.Group("/export")
	export.GET("/transactions.csv", exportHandler.ExportCSV)
	export.GET("/transactions.xlsx", exportHandler.ExportXLSX)

	return router
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
