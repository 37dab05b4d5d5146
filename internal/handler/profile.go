package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ritirai06/SWASTHMATE/internal/repository"
	"github.com/ritirai06/SWASTHMATE/internal/service"
	"go.uber.org/zap"
)

// ProfileHandler implements profile and logout endpoints
type ProfileHandler struct {
	service *service.ProfileService
	logger  *zap.Logger
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(svc *service.ProfileService, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		service: svc,
		logger:  logger,
	}
}

// GetProfile handles GET /get-profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	patientID := c.Query("patient_id")
	if patientID == "" {
		patientID = sessionID(c)
	}

	profile, err := h.service.GetProfile(c.Request.Context(), patientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Code:    "NOT_FOUND",
				Message: "Profile not found",
			})
			return
		}
		h.logger.Error("failed to get profile",
			zap.String("patient_id", patientID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to get profile",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"name":   profile.Name,
		"email":  profile.Email,
		"age":    profile.Age,
		"gender": profile.Gender,
	})
}

// Logout handles POST /logout
func (h *ProfileHandler) Logout(c *gin.Context) {
	session := sessionID(c)
	h.service.Logout(session)

	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out",
	})
}
