package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"alfredoptarigan/ats-analyzer/internal/config"
	"alfredoptarigan/ats-analyzer/internal/handlers"
	"alfredoptarigan/ats-analyzer/internal/logger"
	"alfredoptarigan/ats-analyzer/internal/observability"
	"alfredoptarigan/ats-analyzer/internal/repositories"
	"alfredoptarigan/ats-analyzer/internal/scoring"
	"alfredoptarigan/ats-analyzer/internal/services"
	"alfredoptarigan/ats-analyzer/internal/session"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if !cfg.EnvFileLoaded {
		log.Info("No .env file found. Using environment and default values.")
	}
	log.Info("✅ Config loaded successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Scoring
	lexicon := scoring.DefaultLexicon()
	if cfg.Analysis.LexiconPath != "" {
		lexicon, err = scoring.LoadLexicon(cfg.Analysis.LexiconPath)
		if err != nil {
			log.Fatal("❌ Failed to load lexicon", zap.String("path", cfg.Analysis.LexiconPath), zap.Error(err))
		}
	}
	analyzer := scoring.NewAnalyzer(lexicon)
	log.Info("✅ Lexicon loaded", zap.String("version", lexicon.Version))

	// Sessions
	store, err := session.Open(ctx, cfg.Session.Backend, cfg.Session.SQLitePath, cfg.Session.TTL)
	if err != nil {
		log.Fatal("❌ Failed to open session store", zap.String("backend", cfg.Session.Backend), zap.Error(err))
	}
	defer store.Close()
	go session.RunJanitor(ctx, store, cfg.Session.JanitorInterval, log.Named("session"))
	log.Info("✅ Session store ready", zap.String("backend", cfg.Session.Backend), zap.Duration("ttl", cfg.Session.TTL))

	stats := observability.NewStats()
	extractor := services.NewExtractorService()
	renderer := services.NewRendererService()

	// Optional AI coach
	var gemini services.GeminiService
	if cfg.AIEnabled() {
		gemini, err = services.NewGeminiService(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Worker.RetryInitialDelay, log.Named("gemini"))
		if err != nil {
			log.Fatal("❌ Failed to initialize Gemini AI", zap.Error(err))
		}
		log.Info("✅ Gemini AI initialized successfully", zap.String("model", gemini.Model()))
	} else {
		log.Info("ℹ️ GEMINI_API_KEY not set, AI coach disabled")
	}
	coach := services.NewCoachService(gemini, cfg.Worker.RetryMaxAttempts, log.Named("coach"))

	routes := handlers.Routes{
		Session: handlers.NewSessionHandler(store, analyzer, extractor, coach, stats, log.Named("session"),
			cfg.Storage.MaxFileSize, cfg.Analysis.MatchThreshold),
		Report: handlers.NewReportHandler(renderer, stats),
		System: handlers.NewSystemHandler(stats, lexicon.Version, coach.Enabled(), cfg.Database.Enabled),
	}

	// Persisted analyses
	var worker services.Worker
	if cfg.Database.Enabled {
		db, err := config.InitDatabase(cfg, log)
		if err != nil {
			log.Fatal("❌ Failed to initialize database", zap.Error(err))
		}

		docRepo := repositories.NewDocumentRepository(db)
		analysisRepo := repositories.NewAnalysisRepository(db)

		storageService := services.NewStorageService(cfg.Storage.UploadPath)
		if err := storageService.EnsureUploadDir(); err != nil {
			log.Fatal("❌ Failed to create upload directory", zap.Error(err))
		}

		analysisService := services.NewAnalysisService(analysisRepo, docRepo, extractor, analyzer, coach, stats, log.Named("analysis"))
		worker = services.NewWorker(analysisRepo, analysisService, cfg.Worker.Concurrency, cfg.Worker.PollInterval, log.Named("worker"))
		worker.Start(ctx)

		routes.Upload = handlers.NewUploadHandler(docRepo, storageService, cfg.Storage.MaxFileSize, log.Named("upload"))
		routes.Evaluation = handlers.NewEvaluationHandler(analysisRepo, docRepo, worker, cfg.Analysis.MatchThreshold)
		routes.Result = handlers.NewResultHandler(analysisRepo)
	} else {
		log.Info("ℹ️ DB_ENABLED is false, persisted analyses disabled")
	}

	app := fiber.New(fiber.Config{
		AppName:      "ATS Resume Analyzer API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		// room for multipart overhead so oversized files reach the handler's size check
		BodyLimit:    int(cfg.Storage.MaxFileSize) + 1024*1024,
		ErrorHandler: handlers.NewErrorHandler(stats, log),
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowMethods:  "GET,POST,OPTIONS",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, " + handlers.SessionHeader,
		ExposeHeaders: "Content-Disposition",
	}))

	if cfg.RateLimit.Max > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimit.Max,
			Expiration: cfg.RateLimit.Window,
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"error": "Too many requests. Please try again later.",
					"code":  fiber.StatusTooManyRequests,
				})
			},
		}))
	}

	api := app.Group("/api/v1")
	endpoints := handlers.Register(api, routes)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message":   "ATS Resume Analyzer API",
			"version":   "1.0.0",
			"endpoints": endpoints,
		})
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info("🛑 Shutting down server...")
		if worker != nil {
			worker.Stop()
		}
		cancel()
		if err := app.Shutdown(); err != nil {
			log.Error("❌ Server forced to shutdown", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Info("🚀 Server starting", zap.String("addr", addr), zap.Int("routes", len(endpoints)))

	if err := app.Listen(addr); err != nil {
		log.Fatal("❌ Failed to start server", zap.Error(err))
	}
}
