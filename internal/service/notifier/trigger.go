package notifier

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Trigger launches fire-and-forget dispatches from mutation handlers.
// The triggering operation has already committed; its response never
// waits on, or reflects, the outcome of the notification. Failures are
// captured at the task boundary and logged server-side only.
type Trigger struct {
	svc     *Service
	timeout time.Duration
}

func NewTrigger(svc *Service, timeout time.Duration) *Trigger {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Trigger{svc: svc, timeout: timeout}
}

// NotifyUser dispatches to a recipient identified by user id.
func (t *Trigger) NotifyUser(typeKey string, userID uuid.UUID, vars map[string]string) {
	t.launch(&DispatchRequest{
		TypeKey:         typeKey,
		RecipientUserID: &userID,
		Context:         vars,
	})
}

// NotifyEmail dispatches to a raw address, bypassing preference checks.
func (t *Trigger) NotifyEmail(typeKey, email string, vars map[string]string) {
	t.launch(&DispatchRequest{
		TypeKey:        typeKey,
		RecipientEmail: email,
		Context:        vars,
	})
}

func (t *Trigger) launch(req *DispatchRequest) {
	go func() {
		// Detached from the request context: the primary response does
		// not block on delivery.
		ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
		defer cancel()

		defer func() {
			if p := recover(); p != nil {
				log.Error().
					Interface("panic", p).
					Str("notification_type", req.TypeKey).
					Msg("notification dispatch panicked")
			}
		}()

		if _, err := t.svc.Dispatch(ctx, req); err != nil {
			log.Warn().
				Err(err).
				Str("notification_type", req.TypeKey).
				Msg("notification dispatch failed")
		}
	}()
}
