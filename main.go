package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"kicau/internal/config"
	"kicau/internal/database"
	"kicau/internal/handlers"
	applogger "kicau/internal/logger"
	"kicau/internal/middleware"
	"kicau/internal/repositories"
	"kicau/internal/services"
	"kicau/pkg/rabbitmq"
)

// NewApp wires the store, the optional event broker, services and routes.
// The returned cleanup closes what NewApp opened.
func NewApp(cfg *config.Config) (*fiber.App, func(), error) {
	db, err := database.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, err
	}

	// --- Initialize RabbitMQ Client ---
	// Without RABBITMQ_URL, or when the broker is unreachable, events are not
	// published.
	var mqClient *rabbitmq.Client
	var events services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Queue: cfg.RabbitMQQueue})
		if err != nil {
			logrus.WithError(err).Warn("RabbitMQ unavailable, domain events disabled")
		} else {
			events = mqClient
			if err := mqClient.ConsumeEvents(rabbitmq.LogEvent); err != nil {
				logrus.WithError(err).Warn("Failed to start RabbitMQ consumer")
			}
		}
	}

	// --- Initialize Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	graphRepo := repositories.NewGORMGraphRepository(db)
	postRepo := repositories.NewGORMPostRepository(db)
	commentRepo := repositories.NewGORMCommentRepository(db)

	// --- Initialize Services ---
	userService := services.NewUserService(userRepo, cfg.JWTSecret, cfg.TokenTTL, cfg.BcryptCost)
	graphService := services.NewGraphService(graphRepo, userRepo, postRepo, events)
	postService := services.NewPostService(postRepo, commentRepo, userRepo, events)
	feedService := services.NewFeedService(postRepo)
	retweetService := services.NewRetweetService(postRepo, events)

	// --- Initialize Fiber App ---
	app := fiber.New()
	app.Use(logger.New())
	app.Use(middleware.Metrics())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
			"events": events != nil,
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")
	handlers.NewAuthHandler(userService).RegisterRoutes(apiV1)

	protectedRoutes := apiV1.Group("", middleware.AuthRequired(userService))
	handlers.NewUserHandler(userService, graphService).RegisterRoutes(protectedRoutes)
	handlers.NewPostHandler(postService, feedService, retweetService, graphService).RegisterRoutes(protectedRoutes)

	cleanup := func() {
		if err := mqClient.Close(); err != nil {
			logrus.WithError(err).Warn("Error closing RabbitMQ client")
		}
		if err := database.Close(db); err != nil {
			logrus.WithError(err).Warn("Error closing database")
		}
	}
	return app, cleanup, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Invalid configuration: %v", err)
	}
	applogger.Init(cfg.LogLevel, cfg.LogFormat)

	app, cleanup, err := NewApp(cfg)
	if err != nil {
		logrus.Fatalf("Failed to initialize app: %v", err)
	}
	defer cleanup()

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logrus.Infof("Starting server on port %s", cfg.AppPort)
		if err := app.Listen(cfg.AppPort); err != nil {
			logrus.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	logrus.Info("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		logrus.WithError(err).Error("Error during Fiber shutdown")
	}
	logrus.Info("Server gracefully stopped")
}
