package application

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
	typeNewApplication           = "new_application"
	typeApplicationStatusChanged = "application_status_changed"
)

type Service struct {
	repo       repository.ApplicationRepository
	jobs       repository.JobRepository
	businesses repository.BusinessRepository
	users      repository.UserRepository
	trigger    *notifier.Trigger
}

func NewService(
	repo repository.ApplicationRepository,
	jobs repository.JobRepository,
	businesses repository.BusinessRepository,
	users repository.UserRepository,
	trigger *notifier.Trigger,
) *Service {
	return &Service{
		repo:       repo,
		jobs:       jobs,
		businesses: businesses,
		users:      users,
		trigger:    trigger,
	}
}

// Submit files an application against an open job and notifies the
// business owner. The applicant's response never waits on, or reports,
// the notification outcome.
func (s *Service) Submit(ctx context.Context, application *model.Application) error {
	job, err := s.jobs.Get(ctx, application.JobID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.BadRequest("job does not exist", err)
		}
		return fmt.Errorf("failed to verify job: %w", err)
	}
	if job.Status != model.JobStatusApproved {
		return apperrors.BadRequest("job is not open for applications", nil)
	}

	application.Status = model.ApplicationStatusSubmitted
	if err := s.repo.Create(ctx, application); err != nil {
		return fmt.Errorf("failed to submit application: %w", err)
	}

	s.notifyBusinessOwner(ctx, job, application)
	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Application, error) {
	application, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("application", err)
		}
		return nil, err
	}
	return application, nil
}

func (s *Service) ListByJob(ctx context.Context, jobID uuid.UUID) ([]*model.Application, error) {
	return s.repo.ListByJob(ctx, jobID)
}

func (s *Service) ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]*model.Application, error) {
	return s.repo.ListByApplicant(ctx, applicantID)
}

// UpdateStatus moves an application through review and notifies the
// applicant of the change.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ApplicationStatus) error {
	application, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}

	vars := map[string]string{
		"status": string(status),
	}
	if job, err := s.jobs.Get(ctx, application.JobID); err == nil {
		vars["job_title"] = job.Title
	}
	s.trigger.NotifyUser(typeApplicationStatusChanged, application.ApplicantID, vars)

	return nil
}

func (s *Service) notifyBusinessOwner(ctx context.Context, job *model.Job, application *model.Application) {
	business, err := s.businesses.Get(ctx, job.BusinessID)
	if err != nil {
		return
	}

	vars := map[string]string{
		"job_title":     job.Title,
		"business_name": business.Name,
	}
	// Cover letters are applicant free text and are deliberately kept
	// out of the template context; see the renderer's caller contract.
	if applicant, err := s.users.Get(ctx, application.ApplicantID); err == nil {
		vars["applicant_name"] = applicant.FullName()
	}

	s.trigger.NotifyUser(typeNewApplication, business.OwnerID, vars)
}
