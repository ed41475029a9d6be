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

type notificationTemplateRepository struct {
	BaseRepository
}

func NewNotificationTemplateRepository(base BaseRepository) repository.NotificationTemplateRepository {
	return &notificationTemplateRepository{base}
}

// Upsert inserts or replaces the template for a (type, tier) pair.
// The unique constraint on (notification_type_id, template_type) keeps
// at most one row per pair, so activation state never needs a separate
// deactivation pass.
func (r *notificationTemplateRepository) Upsert(ctx context.Context, tmpl *model.NotificationTemplate) error {
	query := `
		INSERT INTO notification_templates (
			id, notification_type_id, template_type, subject, body_html,
			body_text, variables, is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (notification_type_id, template_type) DO UPDATE SET
			subject = EXCLUDED.subject,
			body_html = EXCLUDED.body_html,
			body_text = EXCLUDED.body_text,
			variables = EXCLUDED.variables,
			is_active = EXCLUDED.is_active,
			updated_at = EXCLUDED.updated_at
	`

	if tmpl.ID == uuid.Nil {
		tmpl.ID = uuid.New()
		tmpl.CreatedAt = time.Now()
	}
	tmpl.UpdatedAt = time.Now()

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, query,
			tmpl.ID,
			tmpl.NotificationTypeID,
			tmpl.TemplateType,
			tmpl.Subject,
			tmpl.BodyHTML,
			tmpl.BodyText,
			tmpl.Variables,
			tmpl.IsActive,
			tmpl.CreatedAt,
			tmpl.UpdatedAt,
		)
		return err
	})
}

func (r *notificationTemplateRepository) GetActive(ctx context.Context, typeID uuid.UUID, tier model.TemplateTier) (*model.NotificationTemplate, error) {
	query := `
		SELECT * FROM notification_templates
		WHERE notification_type_id = $1 AND template_type = $2 AND is_active = true
	`

	var tmpl model.NotificationTemplate
	if err := r.db.GetContext(ctx, &tmpl, query, typeID, tier); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}

	return &tmpl, nil
}

func (r *notificationTemplateRepository) ListByType(ctx context.Context, typeID uuid.UUID) ([]*model.NotificationTemplate, error) {
	query := `
		SELECT * FROM notification_templates
		WHERE notification_type_id = $1
		ORDER BY template_type
	`

	var templates []*model.NotificationTemplate
	if err := r.db.SelectContext(ctx, &templates, query, typeID); err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	return templates, nil
}
