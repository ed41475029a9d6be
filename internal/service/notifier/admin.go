package notifier

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/openboard/board-api/internal/model"
	"github.com/openboard/board-api/internal/repository"
	apperrors "github.com/openboard/board-api/pkg/errors"
)

// Administration and preference management for the notification
// catalog. Types and templates are admin-managed; preference rows are
// created lazily on a user's first explicit toggle.

func (s *Service) CreateType(ctx context.Context, nt *model.NotificationType) error {
	if nt.Key == "" {
		return apperrors.BadRequest("notification type key is required", nil)
	}
	if err := s.types.Create(ctx, nt); err != nil {
		return err
	}
	s.registry.Invalidate(nt.Key)
	return nil
}

func (s *Service) ListTypes(ctx context.Context) ([]*model.NotificationType, error) {
	return s.types.List(ctx)
}

func (s *Service) GetType(ctx context.Context, key string) (*model.NotificationType, error) {
	return s.registry.GetByKey(ctx, key)
}

// UpsertTemplate replaces the template in one tier for a type. The
// store enforces at most one template per (type, tier) pair.
func (s *Service) UpsertTemplate(ctx context.Context, typeKey string, tmpl *model.NotificationTemplate) error {
	nt, err := s.registry.GetByKey(ctx, typeKey)
	if err != nil {
		return err
	}
	tmpl.NotificationTypeID = nt.ID
	return s.templates.Upsert(ctx, tmpl)
}

func (s *Service) ListTemplates(ctx context.Context, typeKey string) ([]*model.NotificationTemplate, error) {
	nt, err := s.registry.GetByKey(ctx, typeKey)
	if err != nil {
		return nil, err
	}
	return s.templates.ListByType(ctx, nt.ID)
}

// ListPreferences merges the type catalog with the user's stored rows.
// System types are reported enabled regardless of stored state.
func (s *Service) ListPreferences(ctx context.Context, userID uuid.UUID) ([]*model.PreferenceView, error) {
	types, err := s.types.List(ctx)
	if err != nil {
		return nil, err
	}

	stored, err := s.prefs.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	byType := make(map[uuid.UUID]*model.UserNotificationPreference, len(stored))
	for _, p := range stored {
		byType[p.NotificationTypeID] = p
	}

	views := make([]*model.PreferenceView, 0, len(types))
	for _, nt := range types {
		view := &model.PreferenceView{
			TypeKey:     nt.Key,
			Name:        nt.Name,
			Description: nt.Description,
			Category:    nt.Category,
			IsEnabled:   nt.DefaultEnabled,
			IsSystem:    nt.IsSystem,
		}
		if nt.IsSystem {
			view.IsEnabled = true
		} else if p, ok := byType[nt.ID]; ok {
			view.IsEnabled = p.IsEnabled
		}
		views = append(views, view)
	}

	return views, nil
}

// UpdatePreference upserts the user's toggle for a type. System types
// cannot be opted out of, so writes against them are rejected.
func (s *Service) UpdatePreference(ctx context.Context, userID uuid.UUID, typeKey string, req *model.UpdatePreferenceRequest) (*model.UserNotificationPreference, error) {
	nt, err := s.registry.GetByKey(ctx, typeKey)
	if err != nil {
		return nil, err
	}
	if nt.IsSystem {
		return nil, apperrors.BadRequest("system notifications cannot be configured", nil)
	}

	pref := &model.UserNotificationPreference{
		UserID:             userID,
		NotificationTypeID: nt.ID,
		IsEnabled:          req.IsEnabled,
		CustomSubject:      req.CustomSubject,
		CustomBody:         req.CustomBody,
	}
	if existing, err := s.prefs.Get(ctx, userID, nt.ID); err == nil {
		pref.ID = existing.ID
		pref.CreatedAt = existing.CreatedAt
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if err := s.prefs.Upsert(ctx, pref); err != nil {
		return nil, err
	}
	return pref, nil
}

func (s *Service) ListLogs(ctx context.Context, filters *model.NotificationLogFilters) ([]*model.NotificationLog, int64, error) {
	return s.logs.ListWithPagination(ctx, filters)
}
