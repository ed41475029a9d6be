package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/openboard/board-api/internal/model"
	"github.com/openboard/board-api/internal/repository"
)

type notificationLogRepository struct {
	BaseRepository
}

func NewNotificationLogRepository(base BaseRepository) repository.NotificationLogRepository {
	return &notificationLogRepository{base}
}

// Create appends one log row. The table is append-only: the application
// never updates or deletes log rows, and concurrent inserts need no
// coordination.
func (r *notificationLogRepository) Create(ctx context.Context, log *model.NotificationLog) error {
	query := `
		INSERT INTO notification_logs (
			id, notification_type_key, recipient_email, recipient_user_id,
			subject, status, error_message, metadata, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query,
		log.ID,
		log.NotificationTypeKey,
		log.RecipientEmail,
		log.RecipientUserID,
		log.Subject,
		log.Status,
		log.ErrorMessage,
		log.Metadata,
		log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create notification log: %w", err)
	}

	return nil
}

func (r *notificationLogRepository) ListWithPagination(ctx context.Context, filters *model.NotificationLogFilters) ([]*model.NotificationLog, int64, error) {
	baseQuery := `FROM notification_logs WHERE 1=1`
	var args []interface{}

	if filters.TypeKey != "" {
		args = append(args, filters.TypeKey)
		baseQuery += fmt.Sprintf(" AND notification_type_key = $%d", len(args))
	}
	if filters.Status != "" {
		args = append(args, filters.Status)
		baseQuery += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filters.Recipient != "" {
		args = append(args, filters.Recipient)
		baseQuery += fmt.Sprintf(" AND recipient_email = $%d", len(args))
	}

	countQuery := "SELECT COUNT(*) " + baseQuery
	var total int64
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to get total count: %w", err)
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit, filters.Offset)
	query := "SELECT * " + baseQuery + fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	var logs []*model.NotificationLog
	if err := r.db.SelectContext(ctx, &logs, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list notification logs: %w", err)
	}

	return logs, total, nil
}
