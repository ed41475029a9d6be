package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/openboard/board-api/internal/model"
	"github.com/openboard/board-api/internal/repository"
)

type notificationTypeRepository struct {
	BaseRepository
}

func NewNotificationTypeRepository(base BaseRepository) repository.NotificationTypeRepository {
	return &notificationTypeRepository{base}
}

func (r *notificationTypeRepository) Create(ctx context.Context, nt *model.NotificationType) error {
	query := `
		INSERT INTO notification_types (
			id, key, name, description, category, default_enabled, is_system, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	nt.ID = uuid.New()
	nt.CreatedAt = time.Now()
	nt.UpdatedAt = time.Now()

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, query,
			nt.ID,
			nt.Key,
			nt.Name,
			nt.Description,
			nt.Category,
			nt.DefaultEnabled,
			nt.IsSystem,
			nt.CreatedAt,
			nt.UpdatedAt,
		)
		return err
	})
}

func (r *notificationTypeRepository) GetByKey(ctx context.Context, key string) (*model.NotificationType, error) {
	query := `
		SELECT * FROM notification_types
		WHERE key = $1
	`

	var nt model.NotificationType
	if err := r.db.GetContext(ctx, &nt, query, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get notification type: %w", err)
	}

	return &nt, nil
}

func (r *notificationTypeRepository) List(ctx context.Context) ([]*model.NotificationType, error) {
	query := `
		SELECT * FROM notification_types
		ORDER BY category, key
	`

	var types []*model.NotificationType
	if err := r.db.SelectContext(ctx, &types, query); err != nil {
		return nil, fmt.Errorf("failed to list notification types: %w", err)
	}

	return types, nil
}
