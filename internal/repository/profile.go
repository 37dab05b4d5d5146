package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ritirai06/SWASTHMATE/pkg/model"
	"go.uber.org/zap"
)

// ProfileRepository manages patient profiles
type ProfileRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *pgxpool.Pool, logger *zap.Logger) *ProfileRepository {
	return &ProfileRepository{
		db:     db,
		logger: logger,
	}
}

// Create stores a patient profile
func (r *ProfileRepository) Create(ctx context.Context, profile *model.Profile) error {
	query := `
		INSERT INTO profiles (patient_id, name, email, age, gender, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`

	_, err := r.db.Exec(ctx, query,
		profile.PatientID,
		profile.Name,
		profile.Email,
		profile.Age,
		profile.Gender,
	)

	if err != nil {
		r.logger.Error("failed to create profile", zap.Error(err), zap.String("patient_id", profile.PatientID))
		return fmt.Errorf("failed to create profile: %w", err)
	}

	return nil
}

// FindByPatientID retrieves a profile by patient ID
func (r *ProfileRepository) FindByPatientID(ctx context.Context, patientID string) (*model.Profile, error) {
	query := `
		SELECT patient_id, name, email, age, gender
		FROM profiles
		WHERE patient_id = $1
	`

	var profile model.Profile
	err := r.db.QueryRow(ctx, query, patientID).Scan(
		&profile.PatientID,
		&profile.Name,
		&profile.Email,
		&profile.Age,
		&profile.Gender,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("profile not found: %s: %w", patientID, ErrNotFound)
		}
		r.logger.Error("failed to get profile", zap.Error(err), zap.String("patient_id", patientID))
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &profile, nil
}

// Update updates a patient profile
func (r *ProfileRepository) Update(ctx context.Context, profile *model.Profile) error {
	query := `
		UPDATE profiles
		SET name = $1, email = $2, age = $3, gender = $4, updated_at = NOW()
		WHERE patient_id = $5
	`

	result, err := r.db.Exec(ctx, query,
		profile.Name,
		profile.Email,
		profile.Age,
		profile.Gender,
		profile.PatientID,
	)

	if err != nil {
		r.logger.Error("failed to update profile", zap.Error(err), zap.String("patient_id", profile.PatientID))
		return fmt.Errorf("failed to update profile: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("profile not found: %s", profile.PatientID)
	}

	return nil
}
