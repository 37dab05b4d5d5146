package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ritirai06/SWASTHMATE/internal/analysis"
	"github.com/ritirai06/SWASTHMATE/internal/audit"
	"github.com/ritirai06/SWASTHMATE/internal/azure"
	"github.com/ritirai06/SWASTHMATE/internal/config"
	"github.com/ritirai06/SWASTHMATE/internal/handler"
	"github.com/ritirai06/SWASTHMATE/internal/middleware"
	"github.com/ritirai06/SWASTHMATE/internal/ocr"
	"github.com/ritirai06/SWASTHMATE/internal/pdf"
	"github.com/ritirai06/SWASTHMATE/internal/projection"
	"github.com/ritirai06/SWASTHMATE/internal/render"
	"github.com/ritirai06/SWASTHMATE/internal/repository"
	"github.com/ritirai06/SWASTHMATE/internal/security"
	"github.com/ritirai06/SWASTHMATE/internal/service"
	"github.com/ritirai06/SWASTHMATE/internal/session"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := newLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("Starting SwasthMate backend",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
	)

	// Initialize database connection pool
	poolCfg, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		logger.Fatal("Failed to parse database URL", zap.Error(err))
	}
	poolCfg.MaxConns = int32(cfg.Database.MaxOpenConns)
	poolCfg.MaxConnLifetime = cfg.Database.ConnMaxLifetime

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		logger.Fatal("Failed to create database pool", zap.Error(err))
	}
	defer pool.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := pool.Ping(pingCtx); err != nil {
		cancel()
		logger.Fatal("Failed to ping database", zap.Error(err))
	}
	cancel()
	logger.Info("Database connection established")

	// Initialize Azure clients
	blobClient, err := azure.NewBlobStorageClient(
		cfg.Azure.Storage.AccountName,
		cfg.Azure.Storage.AccountKey,
		cfg.Azure.Storage.ReportContainer,
		logger,
	)
	if err != nil {
		logger.Fatal("Failed to create blob storage client", zap.Error(err))
	}

	var aiClient analysis.AICompleter
	if cfg.Azure.OpenAI.Enabled() {
		openAIClient, err := azure.NewOpenAIClient(
			cfg.Azure.OpenAI.Endpoint,
			cfg.Azure.OpenAI.APIKey,
			cfg.Azure.OpenAI.Deployment,
			logger,
		)
		if err != nil {
			logger.Fatal("Failed to create OpenAI client", zap.Error(err))
		}
		aiClient = openAIClient
		logger.Info("AI enhancement enabled", zap.String("deployment", cfg.Azure.OpenAI.Deployment))
	} else {
		logger.Info("AI enhancement disabled, using rule-based summaries only")
	}

	var encryptor *security.TextEncryptor
	if key := cfg.Security.EncryptionKey; key != "" {
		encryptor, err = security.NewTextEncryptor([]byte(key))
		if err != nil {
			logger.Fatal("Failed to create text encryptor", zap.Error(err))
		}
		logger.Info("At-rest encryption of report text enabled")
	}

	// Initialize repositories
	reportRepo := repository.NewReportRepository(pool, logger)
	contactRepo := repository.NewContactRepository(pool, logger)
	historyRepo := repository.NewHistoryRepository(pool, logger)
	profileRepo := repository.NewProfileRepository(pool, logger)
	auditLog := audit.NewLogger(pool, logger)

	// Session result buffer with background expiry sweeps
	sessions := session.NewStore(cfg.Session.TTL, logger)
	sweeperStop := make(chan struct{})
	defer close(sweeperStop)
	sessions.StartSweeper(time.Minute, sweeperStop)

	// Initialize services
	projector := projection.NewProjector(logger)
	reportService := service.NewReportService(
		cfg.Upload,
		ocr.NewPlainTextExtractor(logger),
		analysis.NewAnalyzer(aiClient, logger),
		blobClient,
		reportRepo,
		historyRepo,
		sessions,
		projector,
		render.NewRenderer(logger),
		pdf.NewReportGenerator(projector, logger),
		encryptor,
		logger,
	)
	contactService := service.NewContactService(contactRepo, logger)
	historyService := service.NewHistoryService(historyRepo, logger)
	profileService := service.NewProfileService(profileRepo, sessions, logger)

	// Initialize handlers
	reportHandler := handler.NewReportHandler(reportService, cfg.Upload, auditLog, logger)
	contactHandler := handler.NewContactHandler(contactService, logger)
	historyHandler := handler.NewHistoryHandler(historyService, logger)
	profileHandler := handler.NewProfileHandler(profileService, logger)
	healthHandler := handler.NewHealthHandler(pool, logger)

	// Setup Gin router
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Configure appropriately for production
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID", "X-Session-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.RequestLoggingMiddleware(logger))
	router.Use(middleware.ErrorLoggingMiddleware(logger))
	router.Use(middleware.SlowRequestLoggingMiddleware(logger, 1*time.Second))

	// Routes
	router.GET("/health", healthHandler.Check)
	router.POST("/upload", reportHandler.Upload)
	router.POST("/api/contact", contactHandler.Submit)
	router.GET("/get-profile", profileHandler.GetProfile)
	router.POST("/logout", profileHandler.Logout)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/reports/:id", reportHandler.GetReport)
		v1.GET("/reports/:id/pdf", reportHandler.GetReportPDF)
		v1.GET("/reports/:id/print", reportHandler.GetReportPrintable)
		v1.GET("/history/:patientId", historyHandler.GetHistory)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server stopped")
}

// newLogger builds the zap logger from the logging config. Console format
// uses the development encoder for local work, json uses production.
func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
