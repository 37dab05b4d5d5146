package service

import (
	"context"

	"github.com/ritirai06/SWASTHMATE/internal/session"
	"github.com/ritirai06/SWASTHMATE/pkg/model"
	"go.uber.org/zap"
)

// ProfileRepositoryInterface defines the interface for profile persistence
type ProfileRepositoryInterface interface {
	Create(ctx context.Context, profile *model.Profile) error
	FindByPatientID(ctx context.Context, patientID string) (*model.Profile, error)
	Update(ctx context.Context, profile *model.Profile) error
}

// ProfileService serves patient profiles and handles logout
type ProfileService struct {
	repo     ProfileRepositoryInterface
	sessions *session.Store
	logger   *zap.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(repo ProfileRepositoryInterface, sessions *session.Store, logger *zap.Logger) *ProfileService {
	return &ProfileService{
		repo:     repo,
		sessions: sessions,
		logger:   logger,
	}
}

// GetProfile retrieves a patient profile
func (s *ProfileService) GetProfile(ctx context.Context, patientID string) (*model.Profile, error) {
	return s.repo.FindByPatientID(ctx, patientID)
}

// SaveProfile creates or updates a patient profile
func (s *ProfileService) SaveProfile(ctx context.Context, profile *model.Profile) error {
	if _, err := s.repo.FindByPatientID(ctx, profile.PatientID); err != nil {
		return s.repo.Create(ctx, profile)
	}
	return s.repo.Update(ctx, profile)
}

// Logout discards the session's buffered analysis result
func (s *ProfileService) Logout(sessionID string) {
	s.sessions.Clear(sessionID)
	s.logger.Info("session logged out", zap.String("session_id", sessionID))
}
