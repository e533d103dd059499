package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"cashtrackr/internal/config"
	"cashtrackr/internal/database"
	"cashtrackr/internal/handlers"
	"cashtrackr/internal/logger"
	"cashtrackr/internal/mailer"
	"cashtrackr/internal/middleware"
	"cashtrackr/internal/services"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	smtpMailer, err := mailer.NewSMTPMailer(appConfig)
	if err != nil {
		return fmt.Errorf("failed to create mailer: %w", err)
	}
	authEmail := mailer.NewAuthEmail(smtpMailer, appConfig.EmailFrom)

	// Services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	budgetService := services.NewBudgetService(db)
	expenseService := services.NewExpenseService(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, authEmail)
	budgetHandler := handlers.NewBudgetHandler(budgetService)
	expenseHandler := handlers.NewExpenseHandler(expenseService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	api.Use(middleware.RateLimit(appConfig.RateLimit))

	// Account lifecycle
	auth := api.Group("/auth")
	auth.POST("/create-account", authHandler.CreateAccount)
	auth.POST("/confirm-account", authHandler.ConfirmAccount)
	auth.POST("/login", authHandler.Login)
	auth.POST("/forgot-password", authHandler.ForgotPassword)
	auth.POST("/validate-token", authHandler.ValidateToken)
	auth.POST("/reset-password/:token", authHandler.ResetPasswordWithToken)

	authed := auth.Group("", middleware.Authenticate(userService))
	authed.GET("/user", authHandler.User)
	authed.PUT("/user", authHandler.UpdateUser)
	authed.POST("/update-password", authHandler.UpdateCurrentUserPassword)
	authed.POST("/check-password", authHandler.CheckPassword)

	// Budgets and nested expenses; every :budgetId route resolves the
	// budget and checks ownership before the handler runs.
	budgets := api.Group("/budgets", middleware.Authenticate(userService))
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.POST("", budgetHandler.CreateBudget)

	scoped := budgets.Group("/:budgetId",
		middleware.ValidateBudgetID(),
		middleware.BudgetExists(budgetService),
		middleware.HasAccessToBudget(),
	)
	scoped.GET("", budgetHandler.GetBudgetByID)
	scoped.PUT("", budgetHandler.UpdateBudgetByID)
	scoped.DELETE("", budgetHandler.DeleteBudgetByID)

	scoped.GET("/expenses", expenseHandler.GetExpenses)
	scoped.POST("/expenses", expenseHandler.CreateExpense)

	expense := scoped.Group("/expenses/:expenseId",
		middleware.ValidateExpenseID(),
		middleware.ExpenseExists(expenseService),
	)
	expense.GET("", expenseHandler.GetExpenseByID)
	expense.PUT("", expenseHandler.UpdateExpenseByID)
	expense.DELETE("", expenseHandler.DeleteExpenseByID)

	log.Infof("Starting CashTrackr backend server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
