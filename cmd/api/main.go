package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"

	"careercrafter/career-crafter-api/internal/config"
	"careercrafter/career-crafter-api/internal/handlers"
	"careercrafter/career-crafter-api/internal/repositories"
	"careercrafter/career-crafter-api/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	log := config.NewLogger(cfg.Log, cfg.Server.Env)
	log.WithField("env", cfg.Server.Env).Info("config loaded")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := config.InitDatabase(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize database")
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.WithError(err).Fatal("failed to access database handle")
	}

	docRepo := repositories.NewDocumentRepository(db)
	analysisRepo := repositories.NewAnalysisRepository(db)
	userRepo := repositories.NewUserRepository(db)

	// Scoring
	catalog, err := services.LoadCatalog(cfg.Catalog.Path)
	if err != nil {
		log.WithError(err).Fatal("failed to load career catalog")
	}
	scoring := cfg.Scoring.Engine()

	inDemand := catalog.InDemandSkills()
	if len(cfg.Scoring.InDemandSkills) > 0 {
		inDemand = cfg.Scoring.InDemandSkills
	}
	vocabulary := services.NewSkillVocabulary(catalog.Skills(), inDemand, services.DefaultSkillKeywords)

	engine := services.NewRecommendationEngine(catalog, scoring)
	scorer := services.NewResumeScorer(scoring, vocabulary, inDemand)
	extractor := services.NewDocumentExtractor(services.NewPDFParserService(), services.NewDOCXParser(), vocabulary)
	log.WithFields(logrus.Fields{
		"careers":    len(catalog.ListAll()),
		"vocabulary": len(vocabulary.Skills()),
	}).Info("scoring ready")

	storage, err := newStorage(ctx, cfg.Storage)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize storage")
	}

	publisher := services.NewNoopPublisher()
	if cfg.Events.AMQPURL != "" {
		publisher, err = services.NewAMQPPublisher(cfg.Events.AMQPURL, cfg.Events.Exchange)
		if err != nil {
			log.WithError(err).Fatal("failed to connect to message broker")
		}
		log.WithField("exchange", cfg.Events.Exchange).Info("publishing analysis events")
	}
	defer publisher.Close()

	// Enrichment runs only with an LLM key; without one analyses complete synchronously.
	var worker services.Worker
	if cfg.Worker.Enabled && cfg.Gemini.APIKey != "" {
		worker = newEnrichmentWorker(ctx, cfg, analysisRepo, publisher, log)
		worker.Start(ctx)
	} else {
		log.Info("analysis enrichment disabled")
	}

	var queue services.JobQueue
	if worker != nil {
		queue = worker
	}
	analysisService := services.NewResumeAnalysisService(extractor, scorer, storage, docRepo, analysisRepo, queue, publisher, log)

	app := fiber.New(fiber.Config{
		AppName:      "Career Crafter API",
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		BodyLimit:    cfg.Server.BodyLimit,
		ErrorHandler: handlers.ErrorHandler(log),
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	handlers.Routes{
		Health:          handlers.NewHealthHandler(sqlDB.PingContext),
		Recommendations: handlers.NewRecommendationHandler(services.NewRecommendationService(engine, cfg.Scoring.DefaultTopN), log),
		Resume:          handlers.NewResumeHandler(analysisService, cfg.Storage.MaxFileSize, log),
		Analyses:        handlers.NewAnalysisHandler(analysisService, services.NewReportService(), log),
		Register:        handlers.NewRegisterHandler(services.NewUserService(userRepo, log), log),
	}.Mount(app)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info("shutting down server")
		if err := app.Shutdown(); err != nil {
			log.WithError(err).Error("server forced to shutdown")
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.WithField("addr", addr).Info("server starting")

	if err := app.Listen(addr); err != nil {
		log.WithError(err).Error("server stopped")
	}

	cancel()
	if worker != nil {
		worker.Stop()
	}
	if err := sqlDB.Close(); err != nil {
		log.WithError(err).Warn("failed to close database")
	}
}

func newStorage(ctx context.Context, c config.StorageConfig) (services.StorageService, error) {
	if c.Driver == services.StorageDriverS3 {
		return services.NewS3StorageService(ctx, services.S3Options{
			Endpoint:  c.S3.Endpoint,
			Region:    c.S3.Region,
			Bucket:    c.S3.Bucket,
			AccessKey: c.S3.AccessKey,
			SecretKey: c.S3.SecretKey,
		})
	}
	return services.NewLocalStorageService(c.UploadPath)
}

func newEnrichmentWorker(
	ctx context.Context,
	cfg *config.Config,
	analysisRepo repositories.AnalysisRepository,
	publisher services.EventPublisher,
	log *logrus.Logger,
) services.Worker {
	geminiService, err := services.NewGeminiService(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.EmbedModel, log)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize gemini")
	}

	var careerIndex services.CareerIndex
	if cfg.Qdrant.URL != "" {
		careerIndex, err = services.NewCareerIndex(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection, log)
		if err != nil {
			log.WithError(err).Fatal("failed to initialize qdrant")
		}
		if err := careerIndex.InitCollection(ctx); err != nil {
			log.WithError(err).Fatal("failed to initialize qdrant collection")
		}
	}

	enricher := services.NewAnalysisEnricher(analysisRepo, geminiService, careerIndex, publisher, cfg.Worker.RetryMaxAttempts, log)
	return services.NewWorker(analysisRepo, enricher, cfg.Worker.Concurrency, cfg.Worker.PollInterval, log)
}
