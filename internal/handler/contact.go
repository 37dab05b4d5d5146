package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ritirai06/SWASTHMATE/internal/service"
	"github.com/ritirai06/SWASTHMATE/pkg/model"
	"go.uber.org/zap"
)

// ContactHandler implements the contact-form endpoint
type ContactHandler struct {
	service *service.ContactService
	logger  *zap.Logger
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(svc *service.ContactService, logger *zap.Logger) *ContactHandler {
	return &ContactHandler{
		service: svc,
		logger:  logger,
	}
}

// Submit handles POST /api/contact
func (h *ContactHandler) Submit(c *gin.Context) {
	var msg model.ContactMessage
	if err := c.ShouldBindJSON(&msg); err != nil {
		h.logger.Error("invalid contact request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	if err := h.service.Submit(c.Request.Context(), &msg); err != nil {
		if errors.Is(err, service.ErrInvalidContact) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
			})
			return
		}
		h.logger.Error("failed to store contact message", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to submit message",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Message received",
		"id":      msg.ID,
	})
}
