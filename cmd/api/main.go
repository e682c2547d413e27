// @title Mobility Profile API
// @version 1.0
// @description Poll backend that profiles a respondent's mobility habits from their answers.
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "mobility-profile/cmd/api/docs"
	"mobility-profile/internal/adapter"
	"mobility-profile/internal/cache"
	"mobility-profile/internal/config"
	"mobility-profile/internal/database"
	"mobility-profile/internal/handler"
	"mobility-profile/internal/logger"
	"mobility-profile/internal/middleware"
	"mobility-profile/internal/repository"
	"mobility-profile/internal/service"
	"mobility-profile/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	db, err := database.NewSQLXDB(cfg)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Successfully connected to Redis")
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)

	// Repositories
	catalogRepository := repository.NewCatalogDatabaseAdapter(db)
	conditionRepository := repository.NewConditionDatabaseAdapter(db)
	answerRepository := repository.NewAnswerDatabaseAdapter(db)
	userRepository := repository.NewSQLXUserRepository(db)
	postalCodeRepository := repository.NewPostalCodeDatabaseAdapter(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	// Services
	authService, err := service.NewAuthService(cacheAdapter, cfg.JWT)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}
	optionCounts := service.NewOptionCountCache(cacheAdapter, catalogRepository, txManager, cfg.Poll.OptionCountCacheTTL)
	scorer := service.NewResultScorer(answerRepository, catalogRepository, optionCounts)
	evaluator := service.NewConditionEvaluator(conditionRepository, answerRepository)
	questionService := service.NewQuestionService(catalogRepository, conditionRepository, evaluator)
	answerService := service.NewAnswerService(catalogRepository, answerRepository, userRepository, evaluator, scorer, txManager)
	aggregationService := service.NewAggregationService(userRepository, postalCodeRepository, scorer, txManager)
	pollService := service.NewPollService(userRepository, aggregationService, authService, txManager)
	profileService := service.NewProfileService(userRepository, txManager)
	appLogger.Info("Services initialized")

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		BodyLimit:    cfg.Server.BodyLimit,
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowMethods: "GET,POST,PUT,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
		MaxAge:       300,
	}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	app.Use("/api", middleware.GlobalRateLimiter(cfg.RateLimit))
	handler.SetupRoutes(app, handler.Handlers{
		Question: handler.NewQuestionHandler(questionService),
		Answer:   handler.NewAnswerHandler(answerService),
		Poll:     handler.NewPollHandler(pollService),
		Profile:  handler.NewProfileHandler(profileService),
	}, authService, validation.NewValidator(), cfg.RateLimit)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
