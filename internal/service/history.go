package service

import (
	"context"
	"time"

	"github.com/ritirai06/SWASTHMATE/internal/repository"
	"github.com/ritirai06/SWASTHMATE/pkg/model"
	"go.uber.org/zap"
)

// HistoryService serves filtered patient test history
type HistoryService struct {
	repo   HistoryRepositoryInterface
	logger *zap.Logger
}

// NewHistoryService creates a new HistoryService
func NewHistoryService(repo HistoryRepositoryInterface, logger *zap.Logger) *HistoryService {
	return &HistoryService{
		repo:   repo,
		logger: logger,
	}
}

// GetHistory returns a patient's test records narrowed by optional
// test-type, status, and period filters. Unknown periods match everything.
func (s *HistoryService) GetHistory(ctx context.Context, patientID, testType, status, period string) ([]model.TestRecord, error) {
	filter := repository.HistoryFilter{
		TestType: testType,
		Status:   status,
		Since:    periodStart(period),
	}

	if period != "" && filter.Since.IsZero() {
		s.logger.Warn("unknown history period, ignoring filter",
			zap.String("period", period),
		)
	}

	return s.repo.FindByPatientID(ctx, patientID, filter)
}

// periodStart maps a period keyword to its start time, zero for no bound
func periodStart(period string) time.Time {
	now := time.Now()
	switch period {
	case "week":
		return now.AddDate(0, 0, -7)
	case "month":
		return now.AddDate(0, -1, 0)
	case "quarter":
		return now.AddDate(0, -3, 0)
	case "year":
		return now.AddDate(-1, 0, 0)
	default:
		return time.Time{}
	}
}
