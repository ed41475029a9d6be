package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/openboard/board-api/internal/model"
)

// ErrNotFound is returned by all repositories when a row does not exist.
var ErrNotFound = errors.New("not found")

// All repository interfaces in one file
type (
	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id uuid.UUID) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
	}

	BusinessRepository interface {
		Create(ctx context.Context, business *model.Business) error
		Get(ctx context.Context, id uuid.UUID) (*model.Business, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.BusinessStatus) error
		ListByStatus(ctx context.Context, status model.BusinessStatus) ([]*model.Business, error)
	}

	JobRepository interface {
		Create(ctx context.Context, job *model.Job) error
		Get(ctx context.Context, id uuid.UUID) (*model.Job, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.JobStatus) error
		ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]*model.Job, error)
		ListByStatus(ctx context.Context, status model.JobStatus) ([]*model.Job, error)
	}

	ApplicationRepository interface {
		Create(ctx context.Context, application *model.Application) error
		Get(ctx context.Context, id uuid.UUID) (*model.Application, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.ApplicationStatus) error
		ListByJob(ctx context.Context, jobID uuid.UUID) ([]*model.Application, error)
		ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]*model.Application, error)
	}

	NotificationTypeRepository interface {
		Create(ctx context.Context, nt *model.NotificationType) error
		GetByKey(ctx context.Context, key string) (*model.NotificationType, error)
		List(ctx context.Context) ([]*model.NotificationType, error)
	}

	NotificationTemplateRepository interface {
		Upsert(ctx context.Context, tmpl *model.NotificationTemplate) error
		GetActive(ctx context.Context, typeID uuid.UUID, tier model.TemplateTier) (*model.NotificationTemplate, error)
		ListByType(ctx context.Context, typeID uuid.UUID) ([]*model.NotificationTemplate, error)
	}

	NotificationPreferenceRepository interface {
		Get(ctx context.Context, userID, typeID uuid.UUID) (*model.UserNotificationPreference, error)
		Upsert(ctx context.Context, pref *model.UserNotificationPreference) error
		ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.UserNotificationPreference, error)
	}

	NotificationLogRepository interface {
		Create(ctx context.Context, log *model.NotificationLog) error
		ListWithPagination(ctx context.Context, filters *model.NotificationLogFilters) ([]*model.NotificationLog, int64, error)
	}
)
