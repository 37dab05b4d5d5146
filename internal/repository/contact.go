package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ritirai06/SWASTHMATE/pkg/model"
	"go.uber.org/zap"
)

// ContactRepository stores contact-form submissions
type ContactRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewContactRepository creates a new ContactRepository
func NewContactRepository(db *pgxpool.Pool, logger *zap.Logger) *ContactRepository {
	return &ContactRepository{
		db:     db,
		logger: logger,
	}
}

// Create stores a contact message
func (r *ContactRepository) Create(ctx context.Context, msg *model.ContactMessage) error {
	query := `
		INSERT INTO contact_messages (id, name, email, query, submitted_at, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`

	_, err := r.db.Exec(ctx, query,
		msg.ID,
		msg.Name,
		msg.Email,
		msg.Query,
		msg.Timestamp,
	)

	if err != nil {
		r.logger.Error("failed to create contact message", zap.Error(err), zap.String("email", msg.Email))
		return fmt.Errorf("failed to create contact message: %w", err)
	}

	return nil
}

// List returns the most recent contact messages, newest first
func (r *ContactRepository) List(ctx context.Context, limit int) ([]model.ContactMessage, error) {
	query := `
		SELECT id, name, email, query, submitted_at, created_at
		FROM contact_messages
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		r.logger.Error("failed to list contact messages", zap.Error(err))
		return nil, fmt.Errorf("failed to list contact messages: %w", err)
	}
	defer rows.Close()

	var messages []model.ContactMessage
	for rows.Next() {
		var msg model.ContactMessage
		err := rows.Scan(
			&msg.ID,
			&msg.Name,
			&msg.Email,
			&msg.Query,
			&msg.Timestamp,
			&msg.CreatedAt,
		)
		if err != nil {
			r.logger.Warn("failed to scan contact message row", zap.Error(err))
			continue
		}
		messages = append(messages, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contact messages: %w", err)
	}

	return messages, nil
}
