package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ritirai06/SWASTHMATE/pkg/model"
	"go.uber.org/zap"
)

// ErrInvalidContact marks a contact submission that failed validation
var ErrInvalidContact = errors.New("invalid contact message")

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ContactRepositoryInterface defines the interface for contact persistence
type ContactRepositoryInterface interface {
	Create(ctx context.Context, msg *model.ContactMessage) error
	List(ctx context.Context, limit int) ([]model.ContactMessage, error)
}

// ContactService validates and stores contact-form submissions
type ContactService struct {
	repo   ContactRepositoryInterface
	logger *zap.Logger
}

// NewContactService creates a new ContactService
func NewContactService(repo ContactRepositoryInterface, logger *zap.Logger) *ContactService {
	return &ContactService{
		repo:   repo,
		logger: logger,
	}
}

// Submit validates and persists a contact message
func (s *ContactService) Submit(ctx context.Context, msg *model.ContactMessage) error {
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(msg.Email)
	msg.Query = strings.TrimSpace(msg.Query)

	if msg.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidContact)
	}
	if !emailPattern.MatchString(msg.Email) {
		return fmt.Errorf("%w: invalid email address", ErrInvalidContact)
	}
	if msg.Query == "" {
		return fmt.Errorf("%w: query is required", ErrInvalidContact)
	}

	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}

	if err := s.repo.Create(ctx, msg); err != nil {
		return err
	}

	s.logger.Info("contact message stored",
		zap.String("id", msg.ID),
		zap.String("email", msg.Email),
	)
	return nil
}
