package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/grouptally/grouptally-backend/handlers"
	"github.com/grouptally/grouptally-backend/repository"
	"github.com/grouptally/grouptally-backend/routes"
	"github.com/grouptally/grouptally-backend/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		slog.Warn(".env file not found, using environment variables")
	}

	// Structured logging
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: time.Kitchen,
	})))

	// Initialize New Relic
	app, err := newrelic.NewApplication(
		newrelic.ConfigAppName("GroupTally API"),
		newrelic.ConfigLicense(os.Getenv("NEW_RELIC_LICENSE_KEY")),
		newrelic.ConfigDistributedTracerEnabled(true),
	)
	if err != nil {
		slog.Warn("failed to initialize New Relic", "error", err)
	}

	// Connect to the database
	db, err := repository.Open(repository.ConfigFromEnv())
	if err != nil {
		slog.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("connected to the database")

	// Wire repositories and services
	expenseRepo := repository.NewExpenseRepository(db)
	memberRepo := repository.NewMemberRepository(db)

	splitService := services.NewSplitService()
	expenseService := services.NewExpenseService(expenseRepo, memberRepo, splitService)
	balanceService := services.NewBalanceService(expenseRepo, memberRepo)
	settlementService := services.NewSettlementService(balanceService)
	reportService := services.NewReportService(expenseRepo, memberRepo, settlementService)

	handler := handlers.NewHandler(expenseService, balanceService, settlementService, reportService)

	// Set up Gin router
	router := gin.Default()

	// Add New Relic middleware
	if app != nil {
		router.Use(nrgin.Middleware(app))
	}

	// Configure CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Set up routes
	routes.SetupRoutes(router, handler)

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	slog.Info("server starting", "port", port)
	if err := router.Run(":" + port); err != nil {
		slog.Error("failed to start server", "error", err)
		os.Exit(1)
	}
}
