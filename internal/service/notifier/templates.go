package notifier

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/openboard/board-api/internal/model"
	"github.com/openboard/board-api/internal/repository"
)

// ErrNoActiveTemplate means a resolved type has no active template in
// any tier. This is an administrator setup gap, not a skip.
var ErrNoActiveTemplate = errors.New("no active template for notification type")

// TemplateResolver picks the template for a type by walking the tier
// precedence list in order and taking the first active hit.
type TemplateResolver struct {
	templates repository.NotificationTemplateRepository
}

func NewTemplateResolver(templates repository.NotificationTemplateRepository) *TemplateResolver {
	return &TemplateResolver{templates: templates}
}

func (r *TemplateResolver) Resolve(ctx context.Context, typeID uuid.UUID) (*model.NotificationTemplate, error) {
	for _, tier := range model.TierPrecedence {
		tmpl, err := r.templates.GetActive(ctx, typeID, tier)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return nil, err
		}
		return tmpl, nil
	}
	return nil, ErrNoActiveTemplate
}
