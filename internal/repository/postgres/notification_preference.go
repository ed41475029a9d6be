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

type notificationPreferenceRepository struct {
	BaseRepository
}

func NewNotificationPreferenceRepository(base BaseRepository) repository.NotificationPreferenceRepository {
	return &notificationPreferenceRepository{base}
}

func (r *notificationPreferenceRepository) Get(ctx context.Context, userID, typeID uuid.UUID) (*model.UserNotificationPreference, error) {
	query := `
		SELECT * FROM user_notification_preferences
		WHERE user_id = $1 AND notification_type_id = $2
	`

	var pref model.UserNotificationPreference
	if err := r.db.GetContext(ctx, &pref, query, userID, typeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get preference: %w", err)
	}

	return &pref, nil
}

// Upsert creates the preference row lazily on first toggle.
func (r *notificationPreferenceRepository) Upsert(ctx context.Context, pref *model.UserNotificationPreference) error {
	query := `
		INSERT INTO user_notification_preferences (
			id, user_id, notification_type_id, is_enabled,
			custom_subject, custom_body, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id, notification_type_id) DO UPDATE SET
			is_enabled = EXCLUDED.is_enabled,
			custom_subject = EXCLUDED.custom_subject,
			custom_body = EXCLUDED.custom_body,
			updated_at = EXCLUDED.updated_at
	`

	if pref.ID == uuid.Nil {
		pref.ID = uuid.New()
		pref.CreatedAt = time.Now()
	}
	pref.UpdatedAt = time.Now()

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, query,
			pref.ID,
			pref.UserID,
			pref.NotificationTypeID,
			pref.IsEnabled,
			pref.CustomSubject,
			pref.CustomBody,
			pref.CreatedAt,
			pref.UpdatedAt,
		)
		return err
	})
}

func (r *notificationPreferenceRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.UserNotificationPreference, error) {
	query := `
		SELECT * FROM user_notification_preferences
		WHERE user_id = $1
	`

	var prefs []*model.UserNotificationPreference
	if err := r.db.SelectContext(ctx, &prefs, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list preferences: %w", err)
	}

	return prefs, nil
}
