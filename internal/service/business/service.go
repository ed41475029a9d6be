package business

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

// Notification type keys fired by business lifecycle events.
const (
	typeBusinessApproved = "business_approved"
	typeBusinessRejected = "business_rejected"
)

type Service struct {
	repo    repository.BusinessRepository
	users   repository.UserRepository
	trigger *notifier.Trigger
}

func NewService(repo repository.BusinessRepository, users repository.UserRepository, trigger *notifier.Trigger) *Service {
	return &Service{repo: repo, users: users, trigger: trigger}
}

func (s *Service) Register(ctx context.Context, business *model.Business) error {
	if _, err := s.users.Get(ctx, business.OwnerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.BadRequest("owner does not exist", err)
		}
		return fmt.Errorf("failed to verify owner: %w", err)
	}

	business.Status = model.BusinessStatusPending
	if err := s.repo.Create(ctx, business); err != nil {
		return fmt.Errorf("failed to register business: %w", err)
	}

	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Business, error) {
	business, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("business", err)
		}
		return nil, err
	}
	return business, nil
}

func (s *Service) ListPending(ctx context.Context) ([]*model.Business, error) {
	return s.repo.ListByStatus(ctx, model.BusinessStatusPending)
}

// Approve marks the business approved and notifies the owner. The
// notification is fire-and-forget: a delivery failure never rolls back
// the status change.
func (s *Service) Approve(ctx context.Context, id uuid.UUID) error {
	business, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.UpdateStatus(ctx, id, model.BusinessStatusApproved); err != nil {
		return fmt.Errorf("failed to approve business: %w", err)
	}

	s.notifyOwner(ctx, business, typeBusinessApproved, "")
	return nil
}

func (s *Service) Reject(ctx context.Context, id uuid.UUID, reason string) error {
	business, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.UpdateStatus(ctx, id, model.BusinessStatusRejected); err != nil {
		return fmt.Errorf("failed to reject business: %w", err)
	}

	s.notifyOwner(ctx, business, typeBusinessRejected, reason)
	return nil
}

func (s *Service) notifyOwner(ctx context.Context, business *model.Business, typeKey, reason string) {
	vars := map[string]string{
		"business_name":  business.Name,
		"owner_name":     "there",
		"dashboard_link": "/business",
	}
	if reason != "" {
		vars["reason"] = reason
	}
	if owner, err := s.users.Get(ctx, business.OwnerID); err == nil && owner.FullName() != "" {
		vars["owner_name"] = owner.FullName()
	}

	s.trigger.NotifyUser(typeKey, business.OwnerID, vars)
}
