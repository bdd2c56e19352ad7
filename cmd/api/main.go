package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"quiz-funnel/internal/adapter"
	"quiz-funnel/internal/cache"
	"quiz-funnel/internal/config"
	"quiz-funnel/internal/database"
	"quiz-funnel/internal/domain"
	"quiz-funnel/internal/handler"
	"quiz-funnel/internal/logger"
	"quiz-funnel/internal/middleware"
	"quiz-funnel/internal/repository"
	"quiz-funnel/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Connect to database
	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Initialize repositories
	sessionRepository := repository.NewSQLXSessionRepository(db)
	questionRepository := repository.NewSQLXQuestionRepository(db)
	answerRepository := repository.NewSQLXAnswerRepository(db)
	resultRepository := repository.NewSQLXResultRepository(db)
	pricingRepository := repository.NewSQLXPricingRepository(db)
	subscriptionRepository := repository.NewSQLXSubscriptionRepository(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	// Initialize Redis. The result cache is an optimization; the API serves
	// without it when Redis is unavailable.
	var cacheAdapter domain.Cache
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Warn("Redis unavailable, result caching disabled", zap.Error(err))
	} else {
		appLogger.Info("Successfully connected to Redis")
		cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
	}

	// Initialize services
	sessionService := service.NewSessionService(sessionRepository)
	quizService := service.NewQuizService(questionRepository, answerRepository, sessionRepository, cacheAdapter)
	resultService := service.NewResultService(answerRepository, questionRepository, resultRepository, cacheAdapter, cfg)
	insightService := service.NewInsightService(questionRepository, answerRepository, cfg)
	checkoutService := service.NewCheckoutService(pricingRepository, subscriptionRepository, sessionRepository, txManager)

	// Initialize handlers
	sessionHandler := handler.NewSessionHandler(sessionService)
	quizHandler := handler.NewQuizHandler(quizService)
	resultHandler := handler.NewResultHandler(resultService, insightService, sessionService)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService)
	validationMiddleware := middleware.NewValidationMiddleware()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept", MaxAge: 300}))
	app.Use(recover.New())

	// API group
	apiGroup := app.Group("/api")

	// Session and funnel routes
	apiGroup.Post("/sessions", sessionHandler.StartSession)
	apiGroup.Get("/sessions/:id", validationMiddleware.ValidateSessionID(), sessionHandler.GetSession)
	apiGroup.Patch("/sessions/:id/funnel", validationMiddleware.ValidateSessionID(), sessionHandler.UpdateFunnel)

	// Quiz routes
	apiGroup.Get("/quizzes/:quizID/questions", quizHandler.GetQuestions)
	apiGroup.Put("/sessions/:id/answers", validationMiddleware.ValidateSessionID(), quizHandler.SubmitAnswer)

	// Result and insight routes
	apiGroup.Post("/sessions/:id/result", validationMiddleware.ValidateSessionID(), resultHandler.ComputeResult)
	apiGroup.Get("/sessions/:id/result", validationMiddleware.ValidateSessionID(), resultHandler.GetResult)
	apiGroup.Get("/sessions/:id/insights", validationMiddleware.ValidateSessionID(), resultHandler.GetInsights)
	apiGroup.Get("/projection", validationMiddleware.ValidateProjectionParams(), resultHandler.GetProjection)
	apiGroup.Get("/funnel/screens/:screen/next", resultHandler.GetNextScreen)
	apiGroup.Get("/funnel/screens/:screen/previous", resultHandler.GetPreviousScreen)

	// Checkout routes
	apiGroup.Post("/sessions/:id/checkout", validationMiddleware.ValidateSessionID(), checkoutHandler.CreateSubscription)
	apiGroup.Post("/sessions/:id/checkout/cancel", validationMiddleware.ValidateSessionID(), checkoutHandler.CancelCheckout)

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
