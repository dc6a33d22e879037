package main

import (
	"context"
	"database/sql"
	"log"
	"time"

	"mailflow/internal/ai"
	"mailflow/internal/config"
	"mailflow/internal/graph"
	"mailflow/internal/handler"
	"mailflow/internal/logger"
	"mailflow/internal/repository"
	"mailflow/internal/repository/memory"
	"mailflow/internal/repository/postgres"
	"mailflow/internal/router"
	"mailflow/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	_ "github.com/lib/pq"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal("Config validation failed:", err)
	}

	appLogger := logger.New()

	// Initialize repositories (postgres when DATABASE_URL is set, in-memory
	// otherwise)
	var emailRepo repository.EmailRepository
	var ruleRepo repository.RuleRepository
	var categoryRepo repository.CategoryRepository
	var classificationRepo repository.ClassificationRepository
	var vipRepo repository.VipRepository
	var mailboxRepo repository.MailboxRepository

	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}
		defer db.Close()

		if err := postgres.InitializeDatabase(db); err != nil {
			log.Fatal("Failed to initialize database:", err)
		}

		emailRepo = postgres.NewPostgresEmailRepository(db)
		ruleRepo = postgres.NewPostgresRuleRepository(db)
		categoryRepo = postgres.NewPostgresCategoryRepository(db)
		classificationRepo = postgres.NewPostgresClassificationRepository(db)
		vipRepo = postgres.NewPostgresVipRepository(db)
		mailboxRepo = postgres.NewPostgresMailboxRepository(db)

		appLogger.Info("Using PostgreSQL repositories")
	} else {
		emailRepo = memory.NewInMemoryEmailRepository()
		ruleRepo = memory.NewInMemoryRuleRepository()
		categoryRepo = memory.NewInMemoryCategoryRepository()
		classificationRepo = memory.NewInMemoryClassificationRepository()
		vipRepo = memory.NewInMemoryVipRepository()
		mailboxRepo = memory.NewInMemoryMailboxRepository()

		appLogger.Info("Using in-memory repositories")
	}

	// AI condition evaluator
	evaluator := ai.NewEvaluator(ai.Config{
		Provider: cfg.AIProvider,
		APIKey:   cfg.AIKey,
		BaseURL:  cfg.AIBaseURL,
		Model:    cfg.AIModel,
		Timeout:  time.Duration(cfg.AITimeoutSeconds) * time.Second,
	}, appLogger)

	// Microsoft Graph mail source
	mailSource := graph.NewClient(context.Background(), graph.Config{
		TenantID:     cfg.GraphTenantID,
		ClientID:     cfg.GraphClientID,
		ClientSecret: cfg.GraphClientSecret,
	}, appLogger)

	// Services
	classifierService := service.NewClassifierService(ruleRepo, categoryRepo, classificationRepo, evaluator, appLogger)
	vipService := service.NewVipService(vipRepo, emailRepo, appLogger)
	categoryService := service.NewCategoryService(categoryRepo, appLogger)
	ruleService := service.NewRuleService(ruleRepo, categoryRepo, appLogger)
	syncService := service.NewSyncService(mailboxRepo, emailRepo, mailSource, classifierService, vipService, appLogger)

	// HTTP server
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	classifyHandler := handler.NewClassifyHandler(classifierService, appLogger)
	conditionHandler := handler.NewConditionHandler(evaluator, appLogger)
	vipHandler := handler.NewVipHandler(vipService, appLogger)
	categoryHandler := handler.NewCategoryHandler(categoryService, appLogger)
	ruleHandler := handler.NewRuleHandler(ruleService, appLogger)
	emailHandler := handler.NewEmailHandler(emailRepo, syncService, appLogger)

	router.SetupRoutes(e, cfg.APIToken, classifyHandler, conditionHandler, vipHandler, categoryHandler, ruleHandler, emailHandler)

	appLogger.Info("Starting server on port", cfg.Port)
	if err := e.Start(":" + cfg.Port); err != nil {
		appLogger.Error("Server stopped:", err)
	}
}
