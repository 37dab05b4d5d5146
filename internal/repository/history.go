package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ritirai06/SWASTHMATE/pkg/model"
	"go.uber.org/zap"
)

// HistoryFilter narrows a patient's test history. Zero values match everything.
type HistoryFilter struct {
	TestType string
	Status   string
	Since    time.Time
}

// HistoryRepository manages historical test records
type HistoryRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewHistoryRepository creates a new HistoryRepository
func NewHistoryRepository(db *pgxpool.Pool, logger *zap.Logger) *HistoryRepository {
	return &HistoryRepository{
		db:     db,
		logger: logger,
	}
}

// Create stores a test record
func (r *HistoryRepository) Create(ctx context.Context, record *model.TestRecord) error {
	query := `
		INSERT INTO test_records (id, patient_id, test_type, test_name, status, report_id, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		record.ID,
		record.PatientID,
		record.TestType,
		record.TestName,
		record.Status,
		record.ReportID,
		record.RecordedAt,
	)

	if err != nil {
		r.logger.Error("failed to create test record", zap.Error(err), zap.String("patient_id", record.PatientID))
		return fmt.Errorf("failed to create test record: %w", err)
	}

	return nil
}

// FindByPatientID returns a patient's test history, newest first, narrowed
// by the filter's set fields
func (r *HistoryRepository) FindByPatientID(ctx context.Context, patientID string, filter HistoryFilter) ([]model.TestRecord, error) {
	query := `
		SELECT id, patient_id, test_type, test_name, status, report_id, recorded_at
		FROM test_records
		WHERE patient_id = $1
	`
	args := []any{patientID}

	if filter.TestType != "" {
		args = append(args, filter.TestType)
		query += fmt.Sprintf(" AND test_type = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if !filter.Since.IsZero() {
		args = append(args, filter.Since)
		query += fmt.Sprintf(" AND recorded_at >= $%d", len(args))
	}
	query += " ORDER BY recorded_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to query test history", zap.Error(err), zap.String("patient_id", patientID))
		return nil, fmt.Errorf("failed to query test history: %w", err)
	}
	defer rows.Close()

	var records []model.TestRecord
	for rows.Next() {
		var record model.TestRecord
		err := rows.Scan(
			&record.ID,
			&record.PatientID,
			&record.TestType,
			&record.TestName,
			&record.Status,
			&record.ReportID,
			&record.RecordedAt,
		)
		if err != nil {
			r.logger.Warn("failed to scan test record row", zap.Error(err))
			continue
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate test records: %w", err)
	}

	return records, nil
}
