package notifier

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/openboard/board-api/internal/email"
	"github.com/openboard/board-api/internal/model"
	"github.com/openboard/board-api/internal/repository"
	apperrors "github.com/openboard/board-api/pkg/errors"
	"github.com/openboard/board-api/pkg/messaging"
	"github.com/openboard/board-api/pkg/metrics"
)

// Skip reasons recorded in the audit log and returned to callers.
const (
	SkipReasonNoRecipient        = "no_recipient"
	SkipReasonPreferenceDisabled = "user_preference_disabled"
)

// placeholderSubject is logged when a dispatch terminates before a
// template was rendered.
const placeholderSubject = "N/A"

// eventChannel carries dispatch outcomes to in-app feed consumers.
const eventChannel = "notifications"

// DispatchRequest identifies one delivery attempt: a type key, a
// recipient by user id or raw address, and the substitution context.
type DispatchRequest struct {
	TypeKey         string
	RecipientUserID *uuid.UUID
	RecipientEmail  string
	Context         map[string]string
}

// DispatchResult is the terminal state of a successful Dispatch call:
// either sent (MessageID set) or intentionally skipped.
type DispatchResult struct {
	Skipped   bool   `json:"skipped,omitempty"`
	Reason    string `json:"reason,omitempty"`
	MessageID string `json:"message_id,omitempty"`
}

// Deps are the collaborators of the dispatch pipeline. Broker and
// Metrics are optional.
type Deps struct {
	Types       repository.NotificationTypeRepository
	Templates   repository.NotificationTemplateRepository
	Preferences repository.NotificationPreferenceRepository
	Users       repository.UserRepository
	Logs        repository.NotificationLogRepository
	Sender      email.Sender
	Broker      messaging.Broker
	Metrics     *metrics.Metrics
}

type Options struct {
	ReplyTo  string
	CacheTTL time.Duration
}

// Service composes the dispatch pipeline: type registry, preference
// resolver, template resolver, renderer, delivery gateway, audit log.
type Service struct {
	registry  *Registry
	prefRes   *PreferenceResolver
	tmplRes   *TemplateResolver
	types     repository.NotificationTypeRepository
	templates repository.NotificationTemplateRepository
	prefs     repository.NotificationPreferenceRepository
	users     repository.UserRepository
	logs      repository.NotificationLogRepository
	sender    email.Sender
	broker    messaging.Broker
	metrics   *metrics.Metrics
	replyTo   string
}

func NewService(deps Deps, opts Options) *Service {
	return &Service{
		registry:  NewRegistry(deps.Types, opts.CacheTTL, deps.Metrics),
		prefRes:   NewPreferenceResolver(deps.Preferences),
		tmplRes:   NewTemplateResolver(deps.Templates),
		types:     deps.Types,
		templates: deps.Templates,
		prefs:     deps.Preferences,
		users:     deps.Users,
		logs:      deps.Logs,
		sender:    deps.Sender,
		broker:    deps.Broker,
		metrics:   deps.Metrics,
		replyTo:   opts.ReplyTo,
	}
}

// Dispatch runs one delivery attempt end to end. Every terminal state
// other than an unknown type key writes exactly one audit log row; an
// unknown key has no valid type to log against and is surfaced
// directly.
func (s *Service) Dispatch(ctx context.Context, req *DispatchRequest) (*DispatchResult, error) {
	if req.TypeKey == "" {
		return nil, apperrors.BadRequest("notification type is required", nil)
	}
	if req.RecipientUserID == nil && req.RecipientEmail == "" {
		return nil, apperrors.BadRequest("recipient user id or email is required", nil)
	}

	nt, err := s.registry.GetByKey(ctx, req.TypeKey)
	if err != nil {
		return nil, err
	}

	recipientEmail, err := s.resolveRecipient(ctx, req)
	if err != nil {
		return nil, err
	}
	if recipientEmail == "" {
		s.writeLog(ctx, &model.NotificationLog{
			NotificationTypeKey: nt.Key,
			RecipientUserID:     req.RecipientUserID,
			Subject:             placeholderSubject,
			Status:              model.NotificationStatusSkipped,
			Metadata:            model.Metadata{"reason": SkipReasonNoRecipient},
		})
		s.observeSkip(SkipReasonNoRecipient)
		return &DispatchResult{Skipped: true, Reason: SkipReasonNoRecipient}, nil
	}

	if req.RecipientUserID != nil {
		enabled, err := s.prefRes.IsEnabled(ctx, *req.RecipientUserID, nt)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve preference: %w", err)
		}
		if !enabled {
			s.writeLog(ctx, &model.NotificationLog{
				NotificationTypeKey: nt.Key,
				RecipientEmail:      recipientEmail,
				RecipientUserID:     req.RecipientUserID,
				Subject:             placeholderSubject,
				Status:              model.NotificationStatusSkipped,
				Metadata:            model.Metadata{"reason": SkipReasonPreferenceDisabled},
			})
			s.observeSkip(SkipReasonPreferenceDisabled)
			return &DispatchResult{Skipped: true, Reason: SkipReasonPreferenceDisabled}, nil
		}
	}

	tmpl, err := s.tmplRes.Resolve(ctx, nt.ID)
	if err != nil {
		s.writeLog(ctx, &model.NotificationLog{
			NotificationTypeKey: nt.Key,
			RecipientEmail:      recipientEmail,
			RecipientUserID:     req.RecipientUserID,
			Subject:             placeholderSubject,
			Status:              model.NotificationStatusFailed,
			ErrorMessage:        err.Error(),
		})
		if errors.Is(err, ErrNoActiveTemplate) {
			return nil, apperrors.Internal(fmt.Errorf("%w: %s", err, nt.Key))
		}
		return nil, err
	}

	rendered := Render(tmpl, req.Context)

	start := time.Now()
	messageID, err := s.sender.Send(ctx, &email.Message{
		To:       []string{recipientEmail},
		Subject:  rendered.Subject,
		BodyHTML: rendered.BodyHTML,
		BodyText: rendered.BodyText,
		ReplyTo:  s.replyTo,
	})
	if s.metrics != nil {
		s.metrics.DeliveryLatency.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		s.writeLog(ctx, &model.NotificationLog{
			NotificationTypeKey: nt.Key,
			RecipientEmail:      recipientEmail,
			RecipientUserID:     req.RecipientUserID,
			Subject:             rendered.Subject,
			Status:              model.NotificationStatusFailed,
			ErrorMessage:        err.Error(),
		})
		var dErr *email.DeliveryError
		if errors.As(err, &dErr) && s.metrics != nil {
			s.metrics.DeliveryFailures.WithLabelValues(dErr.Provider).Inc()
		}
		return nil, err
	}

	s.writeLog(ctx, &model.NotificationLog{
		NotificationTypeKey: nt.Key,
		RecipientEmail:      recipientEmail,
		RecipientUserID:     req.RecipientUserID,
		Subject:             rendered.Subject,
		Status:              model.NotificationStatusSent,
		Metadata:            model.Metadata{"message_id": messageID},
	})

	return &DispatchResult{MessageID: messageID}, nil
}

// resolveRecipient returns the delivery address: an explicit email wins,
// otherwise the user profile is consulted. An empty result is a skip,
// not an error.
func (s *Service) resolveRecipient(ctx context.Context, req *DispatchRequest) (string, error) {
	if req.RecipientEmail != "" {
		return req.RecipientEmail, nil
	}

	user, err := s.users.Get(ctx, *req.RecipientUserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to resolve recipient: %w", err)
	}
	return user.Email, nil
}

// writeLog appends the audit row and publishes the outcome. Failures
// here are swallowed with a warning; they must never mask the primary
// result being returned to the caller.
func (s *Service) writeLog(ctx context.Context, entry *model.NotificationLog) {
	if err := s.logs.Create(ctx, entry); err != nil {
		log.Warn().
			Err(err).
			Str("notification_type", entry.NotificationTypeKey).
			Str("status", string(entry.Status)).
			Msg("failed to write notification log")
	}

	if s.metrics != nil {
		s.metrics.DispatchTotal.WithLabelValues(entry.NotificationTypeKey, string(entry.Status)).Inc()
	}

	if s.broker != nil {
		if err := s.broker.Publish(ctx, eventChannel, entry); err != nil {
			log.Warn().
				Err(err).
				Str("notification_type", entry.NotificationTypeKey).
				Msg("failed to publish notification event")
		}
	}
}

func (s *Service) observeSkip(reason string) {
	if s.metrics != nil {
		s.metrics.DispatchSkipped.WithLabelValues(reason).Inc()
	}
}
