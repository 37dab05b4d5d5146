package handler

import (
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ritirai06/SWASTHMATE/internal/audit"
	"github.com/ritirai06/SWASTHMATE/internal/config"
	"github.com/ritirai06/SWASTHMATE/internal/repository"
	"github.com/ritirai06/SWASTHMATE/internal/service"
	"github.com/ritirai06/SWASTHMATE/internal/view"
	"github.com/ritirai06/SWASTHMATE/pkg/model"
	"go.uber.org/zap"
)

// flowTTL bounds how long an idle session keeps its upload flow state.
// Session identifiers are client-supplied, so entries must expire or the
// map grows without limit.
const flowTTL = 30 * time.Minute

// ReportHandler implements the upload and report endpoints
type ReportHandler struct {
	service   *service.ReportService
	uploadCfg config.UploadConfig
	audit     *audit.Logger
	logger    *zap.Logger
	now       func() time.Time

	mu    sync.Mutex
	flows map[string]*sessionFlow
}

type sessionFlow struct {
	controller *view.Controller
	flow       *view.UploadFlow
	lastSeen   time.Time
}

// NewReportHandler creates a new ReportHandler. The audit logger may be
// nil when no database is attached, as in tests.
func NewReportHandler(svc *service.ReportService, uploadCfg config.UploadConfig, auditLog *audit.Logger, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		service:   svc,
		uploadCfg: uploadCfg,
		audit:     auditLog,
		logger:    logger,
		now:       time.Now,
		flows:     make(map[string]*sessionFlow),
	}
}

// sessionFlow returns the per-session view controller and upload flow,
// creating them on first use. Idle entries past flowTTL are evicted on
// every lookup so the map stays bounded by active sessions.
func (h *ReportHandler) sessionFlow(sessionID string) *sessionFlow {
	h.mu.Lock()
	defer h.mu.Unlock()

	now := h.now()
	for id, state := range h.flows {
		if id != sessionID && now.Sub(state.lastSeen) > flowTTL {
			delete(h.flows, id)
		}
	}

	if state, ok := h.flows[sessionID]; ok {
		state.lastSeen = now
		return state
	}
	controller := view.NewController(h.logger)
	state := &sessionFlow{
		controller: controller,
		flow:       view.NewUploadFlow(controller, h.uploadCfg.ProcessingDelay, h.logger),
		lastSeen:   now,
	}
	h.flows[sessionID] = state
	return state
}

// Upload handles POST /upload with a multipart "report" field
func (h *ReportHandler) Upload(c *gin.Context) {
	session := sessionID(c)
	state := h.sessionFlow(session)

	if err := state.flow.Start(); err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"status":  "error",
			"message": err.Error(),
		})
		return
	}

	fileHeader, err := c.FormFile("report")
	if err != nil {
		state.flow.Fail("No report file provided")
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": state.flow.Message(),
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		state.flow.Fail("")
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": state.flow.Message(),
		})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.uploadCfg.MaxSizeBytes+1))
	if err != nil {
		state.flow.Fail("")
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": state.flow.Message(),
		})
		return
	}

	gender := c.PostForm("gender")

	result, err := h.service.ProcessUpload(c.Request.Context(), session, fileHeader.Filename, data, gender)
	if err != nil {
		state.flow.Fail(err.Error())
		h.logger.Warn("upload rejected",
			zap.String("filename", fileHeader.Filename),
			zap.Error(err),
		)
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": state.flow.Message(),
		})
		return
	}

	if err := state.flow.Advance(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": state.flow.Message(),
		})
		return
	}
	if err := state.flow.Display(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": view.GenericUploadError,
		})
		return
	}

	h.logger.Info("report uploaded",
		zap.String("report_id", result.ReportID),
		zap.String("active_view", state.controller.Active()),
	)
	if h.audit != nil {
		h.audit.LogUpload(c.Request.Context(), session, result.ReportID, c.ClientIP(), c.Request.UserAgent())
	}

	c.JSON(http.StatusOK, result)
}

// GetReport handles GET /api/v1/reports/:id
func (h *ReportHandler) GetReport(c *gin.Context) {
	reportID := c.Param("id")

	result, err := h.loadReport(c, reportID)
	if err != nil {
		return
	}

	if h.audit != nil {
		h.audit.LogRead(c.Request.Context(), sessionID(c), audit.ResourceReport, reportID, c.ClientIP(), c.Request.UserAgent())
	}
	c.JSON(http.StatusOK, result)
}

// GetReportPDF handles GET /api/v1/reports/:id/pdf
func (h *ReportHandler) GetReportPDF(c *gin.Context) {
	reportID := c.Param("id")

	pdfBytes, err := h.service.GeneratePDF(c.Request.Context(), reportID)
	if err != nil {
		h.respondLoadError(c, reportID, err)
		return
	}

	if h.audit != nil {
		h.audit.LogExport(c.Request.Context(), sessionID(c), reportID, c.ClientIP(), c.Request.UserAgent())
	}
	c.Header("Content-Disposition", `attachment; filename="report-`+reportID+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// GetReportPrintable handles GET /api/v1/reports/:id/print
func (h *ReportHandler) GetReportPrintable(c *gin.Context) {
	reportID := c.Param("id")

	doc, err := h.service.RenderPrintable(c.Request.Context(), reportID)
	if err != nil {
		h.respondLoadError(c, reportID, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(doc))
}

func (h *ReportHandler) loadReport(c *gin.Context, reportID string) (*model.AnalysisResult, error) {
	result, err := h.service.GetReport(c.Request.Context(), reportID)
	if err != nil {
		h.respondLoadError(c, reportID, err)
		return nil, err
	}
	return result, nil
}

func (h *ReportHandler) respondLoadError(c *gin.Context, reportID string, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Code:    "NOT_FOUND",
			Message: "Report not found",
		})
		return
	}

	h.logger.Error("failed to load report",
		zap.String("report_id", reportID),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Code:    "INTERNAL_ERROR",
		Message: "Failed to load report",
		Details: stringPtr(err.Error()),
	})
}
