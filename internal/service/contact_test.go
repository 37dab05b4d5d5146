package service

import (
	"context"
	"testing"
	"time"

	"github.com/ritirai06/SWASTHMATE/internal/repository"
	"github.com/ritirai06/SWASTHMATE/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) Create(ctx context.Context, msg *model.ContactMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockContactRepository) List(ctx context.Context, limit int) ([]model.ContactMessage, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ContactMessage), args.Error(1)
}

func TestContactSubmit_Success(t *testing.T) {
	repo := new(MockContactRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := NewContactService(repo, zap.NewNop())

	msg := &model.ContactMessage{
		Name:  "  John Smith  ",
		Email: "john@example.com",
		Query: "How do I download my report?",
	}
	require.NoError(t, svc.Submit(context.Background(), msg))

	assert.Equal(t, "John Smith", msg.Name)
	assert.NotEmpty(t, msg.ID)
	assert.WithinDuration(t, time.Now(), msg.Timestamp, time.Minute)
	repo.AssertCalled(t, "Create", mock.Anything, msg)
}

func TestContactSubmit_Validation(t *testing.T) {
	repo := new(MockContactRepository)
	svc := NewContactService(repo, zap.NewNop())
	ctx := context.Background()

	tests := []struct {
		name string
		msg  model.ContactMessage
	}{
		{
			name: "missing name",
			msg:  model.ContactMessage{Email: "a@b.com", Query: "hello"},
		},
		{
			name: "invalid email",
			msg:  model.ContactMessage{Name: "John", Email: "not-an-email", Query: "hello"},
		},
		{
			name: "missing query",
			msg:  model.ContactMessage{Name: "John", Email: "a@b.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Submit(ctx, &tt.msg)
			assert.ErrorIs(t, err, ErrInvalidContact)
		})
	}
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestHistoryServicePeriodFilter(t *testing.T) {
	repo := new(MockHistoryRepository)
	svc := NewHistoryService(repo, zap.NewNop())
	ctx := context.Background()

	repo.On("FindByPatientID", mock.Anything, "patient-1", mock.Anything).Return([]model.TestRecord{}, nil)

	_, err := svc.GetHistory(ctx, "patient-1", "lab", "High", "month")
	require.NoError(t, err)

	repo.AssertCalled(t, "FindByPatientID", mock.Anything, "patient-1", mock.MatchedBy(func(filter repository.HistoryFilter) bool {
		if filter.TestType != "lab" || filter.Status != "High" {
			return false
		}
		return !filter.Since.IsZero() && filter.Since.Before(time.Now())
	}))
}

func TestHistoryServiceUnknownPeriodMatchesEverything(t *testing.T) {
	repo := new(MockHistoryRepository)
	svc := NewHistoryService(repo, zap.NewNop())

	repo.On("FindByPatientID", mock.Anything, "patient-1", mock.Anything).Return([]model.TestRecord{}, nil)

	_, err := svc.GetHistory(context.Background(), "patient-1", "", "", "fortnight")
	require.NoError(t, err)

	repo.AssertCalled(t, "FindByPatientID", mock.Anything, "patient-1", mock.MatchedBy(func(filter repository.HistoryFilter) bool {
		return filter.Since.IsZero()
	}))
}
