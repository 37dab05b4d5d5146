package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ritirai06/SWASTHMATE/pkg/model"
	"go.uber.org/zap"
)

// ErrNotFound marks a lookup that matched no rows
var ErrNotFound = pgx.ErrNoRows

// ReportRepository manages stored report records
type ReportRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db *pgxpool.Pool, logger *zap.Logger) *ReportRepository {
	return &ReportRepository{
		db:     db,
		logger: logger,
	}
}

// Create stores a report record with its analysis payload
func (r *ReportRepository) Create(ctx context.Context, record *model.ReportRecord) error {
	query := `
		INSERT INTO reports (id, filename, blob_name, extracted_text, result, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`

	_, err := r.db.Exec(ctx, query,
		record.ID,
		record.Filename,
		record.BlobName,
		record.ExtractedText,
		record.Result,
	)

	if err != nil {
		r.logger.Error("failed to create report", zap.Error(err), zap.String("report_id", record.ID))
		return fmt.Errorf("failed to create report: %w", err)
	}

	return nil
}

// FindByID retrieves a report record by ID
func (r *ReportRepository) FindByID(ctx context.Context, reportID string) (*model.ReportRecord, error) {
	query := `
		SELECT id, filename, blob_name, extracted_text, result, created_at
		FROM reports
		WHERE id = $1
	`

	var record model.ReportRecord
	err := r.db.QueryRow(ctx, query, reportID).Scan(
		&record.ID,
		&record.Filename,
		&record.BlobName,
		&record.ExtractedText,
		&record.Result,
		&record.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("report not found: %s: %w", reportID, ErrNotFound)
		}
		r.logger.Error("failed to get report", zap.Error(err), zap.String("report_id", reportID))
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	return &record, nil
}

// List returns the most recent reports, newest first
func (r *ReportRepository) List(ctx context.Context, limit int) ([]model.ReportRecord, error) {
	query := `
		SELECT id, filename, blob_name, extracted_text, result, created_at
		FROM reports
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		r.logger.Error("failed to list reports", zap.Error(err))
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var records []model.ReportRecord
	for rows.Next() {
		var record model.ReportRecord
		err := rows.Scan(
			&record.ID,
			&record.Filename,
			&record.BlobName,
			&record.ExtractedText,
			&record.Result,
			&record.CreatedAt,
		)
		if err != nil {
			r.logger.Warn("failed to scan report row", zap.Error(err))
			continue
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reports: %w", err)
	}

	return records, nil
}
