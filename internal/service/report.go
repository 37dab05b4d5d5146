package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/ritirai06/SWASTHMATE/internal/analysis"
	"github.com/ritirai06/SWASTHMATE/internal/azure"
	"github.com/ritirai06/SWASTHMATE/internal/config"
	"github.com/ritirai06/SWASTHMATE/internal/ocr"
	"github.com/ritirai06/SWASTHMATE/internal/pdf"
	"github.com/ritirai06/SWASTHMATE/internal/projection"
	"github.com/ritirai06/SWASTHMATE/internal/render"
	"github.com/ritirai06/SWASTHMATE/internal/repository"
	"github.com/ritirai06/SWASTHMATE/internal/security"
	"github.com/ritirai06/SWASTHMATE/internal/session"
	"github.com/ritirai06/SWASTHMATE/pkg/model"
	"go.uber.org/zap"
)

// Upload validation errors. The message text is surfaced to the user verbatim.
var (
	ErrFileTooLarge       = errors.New("File too large")
	ErrFileTypeNotAllowed = errors.New("File type not allowed")
	ErrEmptyFile          = errors.New("Empty file")
)

// ReportRepositoryInterface defines the interface for report persistence
type ReportRepositoryInterface interface {
	Create(ctx context.Context, record *model.ReportRecord) error
	FindByID(ctx context.Context, reportID string) (*model.ReportRecord, error)
}

// HistoryRepositoryInterface defines the interface for test history persistence
type HistoryRepositoryInterface interface {
	Create(ctx context.Context, record *model.TestRecord) error
	FindByPatientID(ctx context.Context, patientID string, filter repository.HistoryFilter) ([]model.TestRecord, error)
}

// ReportService orchestrates the upload-to-analysis pipeline
type ReportService struct {
	uploadCfg config.UploadConfig
	extractor ocr.TextExtractor
	analyzer  *analysis.Analyzer
	storage   azure.ReportStorage
	reports   ReportRepositoryInterface
	history   HistoryRepositoryInterface
	sessions  *session.Store
	projector *projection.Projector
	renderer  *render.Renderer
	pdfGen    *pdf.ReportGenerator
	encryptor *security.TextEncryptor
	logger    *zap.Logger
}

// NewReportService creates a new ReportService. The encryptor may be nil,
// in which case extracted text is stored in the clear.
func NewReportService(
	uploadCfg config.UploadConfig,
	extractor ocr.TextExtractor,
	analyzer *analysis.Analyzer,
	storage azure.ReportStorage,
	reports ReportRepositoryInterface,
	history HistoryRepositoryInterface,
	sessions *session.Store,
	projector *projection.Projector,
	renderer *render.Renderer,
	pdfGen *pdf.ReportGenerator,
	encryptor *security.TextEncryptor,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		uploadCfg: uploadCfg,
		extractor: extractor,
		analyzer:  analyzer,
		storage:   storage,
		reports:   reports,
		history:   history,
		sessions:  sessions,
		projector: projector,
		renderer:  renderer,
		pdfGen:    pdfGen,
		encryptor: encryptor,
		logger:    logger,
	}
}

// ProcessUpload runs the full pipeline for an uploaded report file:
// validation, text extraction, analysis, archiving, and persistence.
// The returned result is also buffered in the session store.
func (s *ReportService) ProcessUpload(ctx context.Context, sessionID, filename string, data []byte, gender string) (*model.AnalysisResult, error) {
	s.logger.Info("processing report upload",
		zap.String("session_id", sessionID),
		zap.String("filename", filename),
		zap.Int("size_bytes", len(data)),
	)

	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	if int64(len(data)) > s.uploadCfg.MaxSizeBytes {
		return nil, ErrFileTooLarge
	}
	if !s.uploadCfg.AllowsExtension(filepath.Ext(filename)) {
		return nil, ErrFileTypeNotAllowed
	}

	text, err := s.extractor.Extract(ctx, filename, data)
	if err != nil {
		return nil, fmt.Errorf("failed to extract text: %w", err)
	}
	if err := analysis.ValidateReportContent(text); err != nil {
		return nil, err
	}

	reportID := uuid.New().String()
	analyzed := s.analyzer.Analyze(ctx, text, gender)

	result := &model.AnalysisResult{
		Status:                  "success",
		ReportID:                reportID,
		Filename:                filename,
		ExtractedText:           text,
		Analysis:                analyzed.Analysis,
		EnhancedAnalysis:        analyzed.EnhancedAnalysis,
		MeasurementsAnalysis:    analyzed.MeasurementsAnalysis,
		DrugInteractions:        analyzed.DrugInteractions,
		Recommendations:         analyzed.Recommendations,
		PriorityRecommendations: analyzed.PriorityRecommendations,
	}

	// Archive the raw file without holding up the response
	go func() {
		archiveCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if _, err := s.storage.UploadReport(archiveCtx, reportID, filename, data, ""); err != nil {
			s.logger.Error("failed to archive report file",
				zap.String("report_id", reportID),
				zap.Error(err),
			)
		}
	}()

	if err := s.persist(ctx, result); err != nil {
		return nil, err
	}
	s.recordHistory(ctx, sessionID, result)
	s.sessions.Put(sessionID, result)

	s.logger.Info("report processed",
		zap.String("report_id", reportID),
		zap.Int("diseases", len(result.Analysis.Diseases)),
		zap.Int("total_tests", totalTests(result)),
	)

	return result, nil
}

// GetReport loads a stored analysis result by report ID
func (s *ReportService) GetReport(ctx context.Context, reportID string) (*model.AnalysisResult, error) {
	record, err := s.reports.FindByID(ctx, reportID)
	if err != nil {
		return nil, err
	}

	var result model.AnalysisResult
	if err := json.Unmarshal(record.Result, &result); err != nil {
		return nil, fmt.Errorf("failed to decode stored result: %w", err)
	}

	if s.encryptor != nil && record.ExtractedText != "" {
		text, err := s.encryptor.Decrypt(record.ExtractedText)
		if err != nil {
			return nil, fmt.Errorf("failed to decrypt report text: %w", err)
		}
		result.ExtractedText = text
	}

	return &result, nil
}

// GeneratePDF renders a stored report as a PDF and archives it
func (s *ReportService) GeneratePDF(ctx context.Context, reportID string) ([]byte, error) {
	result, err := s.GetReport(ctx, reportID)
	if err != nil {
		return nil, err
	}

	pdfBytes, err := s.pdfGen.Generate(result)
	if err != nil {
		return nil, err
	}

	go func() {
		archiveCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if _, err := s.storage.UploadPDF(archiveCtx, reportID, pdfBytes); err != nil {
			s.logger.Error("failed to archive report PDF",
				zap.String("report_id", reportID),
				zap.Error(err),
			)
		}
	}()

	return pdfBytes, nil
}

// RenderPrintable renders a stored report as a standalone HTML document
func (s *ReportService) RenderPrintable(ctx context.Context, reportID string) (string, error) {
	result, err := s.GetReport(ctx, reportID)
	if err != nil {
		return "", err
	}

	panel := s.projector.BuildFullReportPanel(result)
	return s.renderer.RenderPrintable(panel), nil
}

// LastResult returns the buffered result for a session, nil if none
func (s *ReportService) LastResult(sessionID string) *model.AnalysisResult {
	return s.sessions.Get(sessionID)
}

// persist stores the report record, encrypting extracted text when a key
// is configured. The encrypted text lives only in its own column; the
// stored payload is stripped of it.
func (s *ReportService) persist(ctx context.Context, result *model.AnalysisResult) error {
	record := &model.ReportRecord{
		ID:            result.ReportID,
		Filename:      result.Filename,
		BlobName:      fmt.Sprintf("reports/%s/%s", result.ReportID, result.Filename),
		ExtractedText: result.ExtractedText,
	}

	stored := *result
	if s.encryptor != nil {
		encrypted, err := s.encryptor.Encrypt(result.ExtractedText)
		if err != nil {
			return fmt.Errorf("failed to encrypt report text: %w", err)
		}
		record.ExtractedText = encrypted
		stored.ExtractedText = ""
	}

	payload, err := json.Marshal(&stored)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	record.Result = payload

	if err := s.reports.Create(ctx, record); err != nil {
		return err
	}
	return nil
}

// recordHistory writes one test record per analyzed measurement so the
// history view can filter by test and status later. History failures are
// logged but do not fail the upload.
func (s *ReportService) recordHistory(ctx context.Context, sessionID string, result *model.AnalysisResult) {
	if s.history == nil || result.MeasurementsAnalysis == nil {
		return
	}

	reportID := result.ReportID
	for _, test := range result.MeasurementsAnalysis.AnalyzedMeasurements.Keys() {
		for _, m := range result.MeasurementsAnalysis.AnalyzedMeasurements.Get(test) {
			record := &model.TestRecord{
				ID:         uuid.New().String(),
				PatientID:  sessionID,
				TestType:   "lab",
				TestName:   test,
				Status:     m.Status,
				ReportID:   &reportID,
				RecordedAt: time.Now(),
			}
			if err := s.history.Create(ctx, record); err != nil {
				s.logger.Warn("failed to record test history",
					zap.String("test", test),
					zap.Error(err),
				)
			}
		}
	}
}

func totalTests(result *model.AnalysisResult) int {
	if result.MeasurementsAnalysis == nil {
		return 0
	}
	return result.MeasurementsAnalysis.TotalTests
}
