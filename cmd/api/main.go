package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-resume-backend/config"
	_ "go-resume-backend/docs" // Important for Swagger
	v1 "go-resume-backend/internal/delivery/http/v1"
	"go-resume-backend/internal/document"
	"go-resume-backend/internal/domain"
	"go-resume-backend/internal/llm"
	"go-resume-backend/internal/normalize"
	"go-resume-backend/internal/repository/postgres"
	"go-resume-backend/internal/usecase"
	"go-resume-backend/pkg/database"
	"go-resume-backend/pkg/logger"
	"go-resume-backend/pkg/redis"
	"go-resume-backend/pkg/security"
	"go-resume-backend/pkg/security/antivirus"
	"go-resume-backend/pkg/validation"

	goredis "github.com/redis/go-redis/v9"
)

// @title           Resume Ingestion API
// @version         1.0
// @description     Parses uploaded resumes into structured candidate records and serves query and analytics endpoints.
// @host            localhost:8080
// @BasePath        /
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	logger.Log.Info("Starting resume backend", "port", cfg.Port)

	ctx := context.Background()

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(ctx, cfg.DatabaseURL, database.PoolOptions{
		MaxConns:       int32(cfg.DBMaxConns),
		SimpleProtocol: cfg.DBSimpleProtocol,
	})
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	schema := postgres.NewSchemaManager(dbPool)
	if err := schema.EnsureSchema(ctx); err != nil {
		logger.Log.Error("Failed to apply database schema", "error", err)
		os.Exit(1)
	}

	// 4. Setup Redis for upload rate limiting (optional)
	var redisClient *goredis.Client
	if cfg.RedisURL != "" {
		redisClient, err = redis.NewClient(ctx, redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword})
		if err != nil {
			logger.Log.Warn("Redis unavailable, using in-memory upload rate limiting", "error", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}
	uploadLimiter := security.NewUploadLimiter(redisClient, cfg.UploadRateLimitPerMinute, time.Minute)

	// 5. Setup LLM extraction client
	completer, err := llm.NewGeminiCompleter(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		logger.Log.Error("Failed to create Gemini client", "error", err)
		os.Exit(1)
	}
	extractionClient := llm.NewExtractionClient(completer, llm.RetryPolicy{
		MaxAttempts:    cfg.LLMMaxAttempts,
		InitialBackoff: cfg.LLMInitialBackoff,
		MaxBackoff:     cfg.LLMMaxBackoff,
		Multiplier:     2,
	}, cfg.LLMCallTimeout, logger.Log.With("component", "llm"))

	// 6. Setup Repositories and UseCases
	candidateRepo := postgres.NewCandidateRepository(dbPool)

	checks := map[string]domain.HealthCheck{"database": dbPool.Ping}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}

	var ingestOpts []usecase.IngestOption
	if cfg.ClamdAddress != "" {
		scanner := antivirus.NewClamdScanner(cfg.ClamdAddress, cfg.ClamdTimeout)
		ingestOpts = append(ingestOpts, usecase.WithScanner(scanner))
		checks["clamd"] = scanner.Ping
	} else {
		logger.Log.Warn("CLAMD_ADDRESS not configured - uploads are not scanned for malware")
	}

	ingestUC := usecase.NewIngestUsecase(
		document.NewExtractor(),
		extractionClient,
		normalize.NewNormalizer(validation.New()),
		candidateRepo,
		usecase.IngestConfig{
			Workers:        cfg.IngestWorkers,
			LLMConcurrency: int64(cfg.LLMMaxConcurrency),
			MaxFileBytes:   cfg.MaxUploadFileBytes,
		},
		logger.Log.With("component", "ingest"),
		ingestOpts...,
	)
	candidateUC := usecase.NewCandidateUsecase(candidateRepo)
	healthUC := usecase.NewHealthUsecase(checks)

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		IngestUC:      ingestUC,
		CandidateUC:   candidateUC,
		HealthUC:      healthUC,
		Schema:        schema,
		UploadLimiter: uploadLimiter,
		Config:        cfg,
		Logger:        logger.Log,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	// Uploads may be waiting on the LLM; give in-flight batches time to finish
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.LLMCallTimeout+5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
