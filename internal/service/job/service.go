package job

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/openboard/board-api/internal/model"
	"github.com/openboard/board-api/internal/repository"
	"github.com/openboard/board-api/internal/service/notifier"
	apperrors "github.com/openboard/board-api/pkg/errors"
)

const (
	typeJobApproved = "job_approved"
	typeJobRejected = "job_rejected"
)

type Service struct {
	repo       repository.JobRepository
	businesses repository.BusinessRepository
	trigger    *notifier.Trigger
}

func NewService(repo repository.JobRepository, businesses repository.BusinessRepository, trigger *notifier.Trigger) *Service {
	return &Service{repo: repo, businesses: businesses, trigger: trigger}
}

// Post creates a job in pending state. Only approved businesses can
// post.
func (s *Service) Post(ctx context.Context, job *model.Job) error {
	business, err := s.businesses.Get(ctx, job.BusinessID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.BadRequest("business does not exist", err)
		}
		return fmt.Errorf("failed to verify business: %w", err)
	}
	if business.Status != model.BusinessStatusApproved {
		return apperrors.BadRequest("business is not approved", nil)
	}

	job.Status = model.JobStatusPending
	if err := s.repo.Create(ctx, job); err != nil {
		return fmt.Errorf("failed to post job: %w", err)
	}

	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Job, error) {
	job, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("job", err)
		}
		return nil, err
	}
	return job, nil
}

func (s *Service) ListOpen(ctx context.Context) ([]*model.Job, error) {
	return s.repo.ListByStatus(ctx, model.JobStatusApproved)
}

func (s *Service) ListPending(ctx context.Context) ([]*model.Job, error) {
	return s.repo.ListByStatus(ctx, model.JobStatusPending)
}

func (s *Service) ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]*model.Job, error) {
	return s.repo.ListByBusiness(ctx, businessID)
}

func (s *Service) Approve(ctx context.Context, id uuid.UUID) error {
	return s.moderate(ctx, id, model.JobStatusApproved, typeJobApproved, "")
}

func (s *Service) Reject(ctx context.Context, id uuid.UUID, reason string) error {
	return s.moderate(ctx, id, model.JobStatusRejected, typeJobRejected, reason)
}

func (s *Service) moderate(ctx context.Context, id uuid.UUID, status model.JobStatus, typeKey, reason string) error {
	job, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return fmt.Errorf("failed to update job status: %w", err)
	}

	business, err := s.businesses.Get(ctx, job.BusinessID)
	if err != nil {
		// Status change stands; the owner just cannot be resolved.
		return nil
	}

	vars := map[string]string{
		"job_title":     job.Title,
		"business_name": business.Name,
	}
	if reason != "" {
		vars["reason"] = reason
	}
	s.trigger.NotifyUser(typeKey, business.OwnerID, vars)

	return nil
}
