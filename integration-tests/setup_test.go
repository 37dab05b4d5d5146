package integration_tests

import (
	"context"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/ritirai06/SWASTHMATE/internal/analysis"
	"github.com/ritirai06/SWASTHMATE/internal/audit"
	"github.com/ritirai06/SWASTHMATE/internal/azure"
	"github.com/ritirai06/SWASTHMATE/internal/config"
	"github.com/ritirai06/SWASTHMATE/internal/handler"
	"github.com/ritirai06/SWASTHMATE/internal/ocr"
	"github.com/ritirai06/SWASTHMATE/internal/pdf"
	"github.com/ritirai06/SWASTHMATE/internal/projection"
	"github.com/ritirai06/SWASTHMATE/internal/render"
	"github.com/ritirai06/SWASTHMATE/internal/repository"
	"github.com/ritirai06/SWASTHMATE/internal/service"
	"github.com/ritirai06/SWASTHMATE/internal/session"
)

// testEnv bundles the full application stack wired against a disposable
// PostgreSQL container and an in-memory blob store.
type testEnv struct {
	router   *gin.Engine
	pool     *pgxpool.Pool
	audit    *audit.Logger
	sessions *session.Store
	blob     *azure.MockBlobStorageClient
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	gin.SetMode(gin.TestMode)

	ctx := context.Background()
	logger := zap.NewNop()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("swasthmate_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	connString, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connString)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	runMigrations(t, pool)

	uploadCfg := config.UploadConfig{
		MaxSizeBytes:      16 * 1024 * 1024,
		AllowedExtensions: []string{"pdf", "png", "jpg", "jpeg", "tiff", "txt"},
		ProcessingDelay:   time.Millisecond,
	}

	reportRepo := repository.NewReportRepository(pool, logger)
	contactRepo := repository.NewContactRepository(pool, logger)
	historyRepo := repository.NewHistoryRepository(pool, logger)
	profileRepo := repository.NewProfileRepository(pool, logger)
	auditLog := audit.NewLogger(pool, logger)

	sessions := session.NewStore(30*time.Minute, logger)
	blob := azure.NewMockBlobStorageClient(logger)

	projector := projection.NewProjector(logger)
	reportService := service.NewReportService(
		uploadCfg,
		ocr.NewPlainTextExtractor(logger),
		analysis.NewAnalyzer(nil, logger),
		blob,
		reportRepo,
		historyRepo,
		sessions,
		projector,
		render.NewRenderer(logger),
		pdf.NewReportGenerator(projector, logger),
		nil,
		logger,
	)

	reportHandler := handler.NewReportHandler(reportService, uploadCfg, auditLog, logger)
	contactHandler := handler.NewContactHandler(service.NewContactService(contactRepo, logger), logger)
	historyHandler := handler.NewHistoryHandler(service.NewHistoryService(historyRepo, logger), logger)
	profileHandler := handler.NewProfileHandler(service.NewProfileService(profileRepo, sessions, logger), logger)
	healthHandler := handler.NewHealthHandler(pool, logger)

	router := gin.New()
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

	return &testEnv{
		router:   router,
		pool:     pool,
		audit:    auditLog,
		sessions: sessions,
		blob:     blob,
	}
}

func runMigrations(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	ctx := context.Background()

	migrations := []string{
		`CREATE TABLE IF NOT EXISTS reports (
			id UUID PRIMARY KEY,
			filename VARCHAR(500) NOT NULL,
			blob_name VARCHAR(500),
			extracted_text TEXT,
			result JSONB,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS contact_messages (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL,
			query TEXT NOT NULL,
			submitted_at TIMESTAMP NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS test_records (
			id UUID PRIMARY KEY,
			patient_id VARCHAR(255) NOT NULL,
			test_type VARCHAR(100) NOT NULL,
			test_name VARCHAR(255) NOT NULL,
			status VARCHAR(50) NOT NULL,
			report_id UUID,
			recorded_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS profiles (
			patient_id VARCHAR(255) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL,
			age INT NOT NULL,
			gender VARCHAR(20),
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS audit_logs (
			id SERIAL PRIMARY KEY,
			session_id VARCHAR(255) NOT NULL,
			operation_type VARCHAR(50) NOT NULL,
			resource_type VARCHAR(50) NOT NULL,
			resource_id VARCHAR(255),
			timestamp TIMESTAMP NOT NULL,
			ip_address VARCHAR(64),
			user_agent TEXT
		)`,
	}

	for _, migration := range migrations {
		_, err := pool.Exec(ctx, migration)
		require.NoError(t, err)
	}
}
