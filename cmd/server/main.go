package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"

	"github.com/aerointel/aerointel-backend/internal/alerting"
	"github.com/aerointel/aerointel-backend/internal/catalog"
	"github.com/aerointel/aerointel-backend/internal/config"
	"github.com/aerointel/aerointel-backend/internal/database"
	"github.com/aerointel/aerointel-backend/internal/dto"
	"github.com/aerointel/aerointel-backend/internal/handlers"
	"github.com/aerointel/aerointel-backend/internal/llm"
	"github.com/aerointel/aerointel-backend/internal/logging"
	"github.com/aerointel/aerointel-backend/internal/middleware"
	"github.com/aerointel/aerointel-backend/internal/routes"
	"github.com/aerointel/aerointel-backend/internal/services"
	"github.com/aerointel/aerointel-backend/internal/store"
)

const logRetention = 30 * 24 * time.Hour

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if !cfg.AIConfigured() {
		slog.Warn("OPENAI_API_KEY not set, transcription and analysis are disabled")
	}

	// Domain vocabulary
	cat := catalog.Default()
	if cfg.CatalogPath != "" {
		loaded, err := catalog.LoadFromFile(cfg.CatalogPath)
		if err != nil {
			slog.Error("failed to load catalog", "path", cfg.CatalogPath, "error", err)
			os.Exit(1)
		}
		cat = loaded
	}
	slog.Info("catalog loaded", "airlines", len(cat.Airlines()))

	// Store
	var (
		st           store.Store
		db           *gorm.DB
		dbLogHandler *logging.DBHandler
	)
	cleanupDone := make(chan struct{})

	switch cfg.StoreDriver {
	case "file":
		st = store.NewFileStore(cfg.DataPath)
		slog.Info("using file store", "path", cfg.DataPath)
	case "postgres", "sqlite":
		var err error
		db, err = database.Connect(cfg)
		if err != nil {
			slog.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		gs := store.NewGormStore(db)
		if err := gs.Migrate(); err != nil {
			slog.Error("migration failed", "error", err)
			os.Exit(1)
		}
		if err := database.MigrateLogs(db); err != nil {
			slog.Error("log table migration failed", "error", err)
			os.Exit(1)
		}
		st = gs

		// ERROR+ records are also batched into system_logs
		dbLogHandler = logging.NewDBHandler(db)
		slog.SetDefault(slog.New(logging.NewTee(logging.NewStdoutHandler(), dbLogHandler)))
		logging.StartCleanup(db, logRetention, cleanupDone)
	default:
		slog.Error("unsupported STORE_DRIVER", "driver", cfg.StoreDriver)
		os.Exit(1)
	}

	// Rate limiter storage (shared across instances when Redis is configured)
	var limiterStorage fiber.Storage
	if cfg.RedisURL != "" {
		rs, err := middleware.NewRedisStorage(cfg.RedisURL)
		if err != nil {
			slog.Error("redis unavailable, rate limiting in memory", "error", err)
		} else {
			limiterStorage = rs
			defer rs.Close()
		}
	}

	// Services
	aiClient := llm.New(llm.Config{
		APIKey:             cfg.OpenAIAPIKey,
		BaseURL:            cfg.OpenAIBaseURL,
		ChatModel:          cfg.OpenAIModel,
		TranscriptionModel: cfg.TranscriptionModel,
		Timeout:            cfg.AITimeout,
	})
	engine := alerting.NewEngine(cfg.EnableAlertGeneration)

	authService := services.NewAuthService(st, cfg)
	insightService := services.NewInsightService(st, engine)
	alertService := services.NewAlertService(st)
	dashboardService := services.NewDashboardService(st)
	analysisService := services.NewAnalysisService(aiClient, cat, insightService)
	transcriptionService := services.NewTranscriptionService(aiClient, cfg.MaxAudioSizeMB)

	// Handlers
	h := routes.Handlers{
		Auth:          handlers.NewAuthHandler(authService),
		Health:        handlers.NewHealthHandler(st, cfg.Version, cfg.AIConfigured()),
		Transcription: handlers.NewTranscriptionHandler(transcriptionService),
		Analysis:      handlers.NewAnalysisHandler(analysisService),
		Insight:       handlers.NewInsightHandler(insightService),
		Alert:         handlers.NewAlertHandler(alertService),
		Dashboard:     handlers.NewDashboardHandler(dashboardService),
	}

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
			Release:          "aerointel-backend@" + cfg.Version,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app; the body limit leaves room for multipart overhead on audio uploads
	app := fiber.New(fiber.Config{
		AppName:      "AeroIntel API",
		BodyLimit:    (cfg.MaxAudioSizeMB + 1) * 1024 * 1024,
		ErrorHandler: handlers.ErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.SecurityHeaders)

	// Routes
	routes.Setup(app, cfg, h, limiterStorage)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail("Route not found"))
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "store", st.Name(), "env", cfg.AppEnv)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	close(cleanupDone)
	if dbLogHandler != nil {
		dbLogHandler.Stop()
	}
	sentry.Flush(2 * time.Second)

	if db != nil {
		if err := database.Close(db); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}
