package audit

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// OperationType represents the type of operation performed
type OperationType string

const (
	OperationUpload OperationType = "UPLOAD"
	OperationCreate OperationType = "CREATE"
	OperationRead   OperationType = "READ"
	OperationExport OperationType = "EXPORT"
)

// ResourceType represents the type of resource being accessed
type ResourceType string

const (
	ResourceReport         ResourceType = "report"
	ResourceContactMessage ResourceType = "contact_message"
	ResourceTestRecord     ResourceType = "test_record"
	ResourceProfile        ResourceType = "profile"
)

// Entry represents one audit log entry
type Entry struct {
	SessionID     string
	OperationType OperationType
	ResourceType  ResourceType
	ResourceID    string
	Timestamp     time.Time
	IPAddress     string
	UserAgent     string
}

// Logger writes audit entries for report and contact operations
type Logger struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewLogger creates a new audit logger
func NewLogger(db *pgxpool.Pool, logger *zap.Logger) *Logger {
	return &Logger{
		db:     db,
		logger: logger,
	}
}

// Log records an audit entry. Failures are logged but never propagate;
// an audit miss must not fail the operation being audited.
func (l *Logger) Log(ctx context.Context, entry Entry) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	l.logger.Info("Audit log entry",
		zap.String("session_id", entry.SessionID),
		zap.String("operation", string(entry.OperationType)),
		zap.String("resource_type", string(entry.ResourceType)),
		zap.String("resource_id", entry.ResourceID),
		zap.Time("timestamp", entry.Timestamp),
		zap.String("ip_address", entry.IPAddress),
	)

	query := `
		INSERT INTO audit_logs (
			session_id, operation_type, resource_type, resource_id,
			timestamp, ip_address, user_agent
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := l.db.Exec(ctx, query,
		entry.SessionID,
		entry.OperationType,
		entry.ResourceType,
		entry.ResourceID,
		entry.Timestamp,
		entry.IPAddress,
		entry.UserAgent,
	)

	if err != nil {
		l.logger.Error("Failed to write audit log to database",
			zap.Error(err),
			zap.String("operation", string(entry.OperationType)),
			zap.String("resource_type", string(entry.ResourceType)),
		)
	}
}

// LogUpload records a report upload
func (l *Logger) LogUpload(ctx context.Context, sessionID, reportID, ipAddress, userAgent string) {
	l.Log(ctx, Entry{
		SessionID:     sessionID,
		OperationType: OperationUpload,
		ResourceType:  ResourceReport,
		ResourceID:    reportID,
		IPAddress:     ipAddress,
		UserAgent:     userAgent,
	})
}

// LogRead records a report or history read
func (l *Logger) LogRead(ctx context.Context, sessionID string, resource ResourceType, resourceID, ipAddress, userAgent string) {
	l.Log(ctx, Entry{
		SessionID:     sessionID,
		OperationType: OperationRead,
		ResourceType:  resource,
		ResourceID:    resourceID,
		IPAddress:     ipAddress,
		UserAgent:     userAgent,
	})
}

// LogExport records a PDF or printable export
func (l *Logger) LogExport(ctx context.Context, sessionID, reportID, ipAddress, userAgent string) {
	l.Log(ctx, Entry{
		SessionID:     sessionID,
		OperationType: OperationExport,
		ResourceType:  ResourceReport,
		ResourceID:    reportID,
		IPAddress:     ipAddress,
		UserAgent:     userAgent,
	})
}

// Recent retrieves the latest audit entries for a session
func (l *Logger) Recent(ctx context.Context, sessionID string, limit int) ([]Entry, error) {
	query := `
		SELECT session_id, operation_type, resource_type, resource_id,
		       timestamp, ip_address, user_agent
		FROM audit_logs
		WHERE session_id = $1
		ORDER BY timestamp DESC
		LIMIT $2
	`

	rows, err := l.db.Query(ctx, query, sessionID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		err := rows.Scan(
			&entry.SessionID,
			&entry.OperationType,
			&entry.ResourceType,
			&entry.ResourceID,
			&entry.Timestamp,
			&entry.IPAddress,
			&entry.UserAgent,
		)
		if err != nil {
			l.logger.Error("Failed to scan audit log", zap.Error(err))
			continue
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
