package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ritirai06/SWASTHMATE/internal/service"
	"go.uber.org/zap"
)

// HistoryHandler implements the test-history endpoint
type HistoryHandler struct {
	service *service.HistoryService
	logger  *zap.Logger
}

// NewHistoryHandler creates a new HistoryHandler
func NewHistoryHandler(svc *service.HistoryService, logger *zap.Logger) *HistoryHandler {
	return &HistoryHandler{
		service: svc,
		logger:  logger,
	}
}

// GetHistory handles GET /api/v1/history/:patientId with optional
// test_type, status, and period query filters
func (h *HistoryHandler) GetHistory(c *gin.Context) {
	patientID := c.Param("patientId")

	records, err := h.service.GetHistory(
		c.Request.Context(),
		patientID,
		c.Query("test_type"),
		c.Query("status"),
		c.Query("period"),
	)
	if err != nil {
		h.logger.Error("failed to get test history",
			zap.String("patient_id", patientID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to get test history",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"patient_id": patientID,
		"count":      len(records),
		"records":    records,
	})
}
