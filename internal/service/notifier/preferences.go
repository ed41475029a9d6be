package notifier

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/openboard/board-api/internal/model"
	"github.com/openboard/board-api/internal/repository"
)

// PreferenceResolver decides whether delivery is enabled for a given
// user and notification type. Pure read of stored state; preferences
// are single-user-owned so last-write-wins is acceptable.
type PreferenceResolver struct {
	prefs repository.NotificationPreferenceRepository
}

func NewPreferenceResolver(prefs repository.NotificationPreferenceRepository) *PreferenceResolver {
	return &PreferenceResolver{prefs: prefs}
}

// IsEnabled resolves delivery for (user, type):
// system types are always enabled and the stored preference is never
// consulted; an explicit stored row wins otherwise; absence of a row
// falls back to the type's default.
func (r *PreferenceResolver) IsEnabled(ctx context.Context, userID uuid.UUID, nt *model.NotificationType) (bool, error) {
	if nt.IsSystem {
		return true, nil
	}

	pref, err := r.prefs.Get(ctx, userID, nt.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nt.DefaultEnabled, nil
		}
		return false, err
	}

	return pref.IsEnabled, nil
}
