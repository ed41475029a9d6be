package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openboard/board-api/internal/email"
	"github.com/openboard/board-api/internal/model"
	"github.com/openboard/board-api/internal/repository"
	"github.com/openboard/board-api/internal/service/notifier"
)

// Stub repositories backed by fixed fixtures; only the lookups the
// dispatch path touches are populated.

type stubTypeRepo struct{ types map[string]*model.NotificationType }

func (s *stubTypeRepo) Create(context.Context, *model.NotificationType) error { return nil }
func (s *stubTypeRepo) GetByKey(_ context.Context, key string) (*model.NotificationType, error) {
	nt, ok := s.types[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return nt, nil
}
func (s *stubTypeRepo) List(context.Context) ([]*model.NotificationType, error) { return nil, nil }

type stubTemplateRepo struct{ tmpl *model.NotificationTemplate }

func (s *stubTemplateRepo) Upsert(context.Context, *model.NotificationTemplate) error { return nil }
func (s *stubTemplateRepo) GetActive(_ context.Context, typeID uuid.UUID, tier model.TemplateTier) (*model.NotificationTemplate, error) {
	if s.tmpl == nil || s.tmpl.NotificationTypeID != typeID || s.tmpl.TemplateType != tier {
		return nil, repository.ErrNotFound
	}
	return s.tmpl, nil
}
func (s *stubTemplateRepo) ListByType(context.Context, uuid.UUID) ([]*model.NotificationTemplate, error) {
	return nil, nil
}

type stubPrefRepo struct{}

func (stubPrefRepo) Get(context.Context, uuid.UUID, uuid.UUID) (*model.UserNotificationPreference, error) {
	return nil, repository.ErrNotFound
}
func (stubPrefRepo) Upsert(context.Context, *model.UserNotificationPreference) error { return nil }
func (stubPrefRepo) ListByUser(context.Context, uuid.UUID) ([]*model.UserNotificationPreference, error) {
	return nil, nil
}

type stubUserRepo struct{ users map[uuid.UUID]*model.User }

func (s *stubUserRepo) Create(context.Context, *model.User) error { return nil }
func (s *stubUserRepo) Get(_ context.Context, id uuid.UUID) (*model.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}
func (s *stubUserRepo) GetByEmail(context.Context, string) (*model.User, error) {
	return nil, repository.ErrNotFound
}

type stubLogRepo struct{ entries []*model.NotificationLog }

func (s *stubLogRepo) Create(_ context.Context, entry *model.NotificationLog) error {
	s.entries = append(s.entries, entry)
	return nil
}
func (s *stubLogRepo) ListWithPagination(context.Context, *model.NotificationLogFilters) ([]*model.NotificationLog, int64, error) {
	return s.entries, int64(len(s.entries)), nil
}

type stubSender struct{ err error }

func (s *stubSender) Send(context.Context, *email.Message) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "msg-1", nil
}

type fixture struct {
	router *gin.Engine
	user   *model.User
	logs   *stubLogRepo
	sender *stubSender
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	typeID := uuid.New()
	user := &model.User{
		Base:  model.Base{ID: uuid.New()},
		Email: "owner@acme.test",
	}
	logs := &stubLogRepo{}
	sender := &stubSender{}

	svc := notifier.NewService(notifier.Deps{
		Types: &stubTypeRepo{types: map[string]*model.NotificationType{
			"business_approved": {
				Base:           model.Base{ID: typeID},
				Key:            "business_approved",
				DefaultEnabled: true,
			},
		}},
		Templates: &stubTemplateRepo{tmpl: &model.NotificationTemplate{
			NotificationTypeID: typeID,
			TemplateType:       model.TierSystemDefault,
			Subject:            "Your business {{business_name}} was approved",
			BodyHTML:           "<p>hi</p>",
			IsActive:           true,
		}},
		Preferences: stubPrefRepo{},
		Users:       &stubUserRepo{users: map[uuid.UUID]*model.User{user.ID: user}},
		Logs:        logs,
		Sender:      sender,
	}, notifier.Options{})

	router := gin.New()
	api := router.Group("/api/v1")
	NewHandler(svc).RegisterRoutes(api)

	return &fixture{router: router, user: user, logs: logs, sender: sender}
}

func (f *fixture) dispatch(t *testing.T, payload map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/notifications/dispatch", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestDispatchEndpointSent(t *testing.T) {
	f := newFixture(t)

	rec := f.dispatch(t, map[string]interface{}{
		"notification_type": "business_approved",
		"recipient_user_id": f.user.ID.String(),
		"context":           map[string]string{"business_name": "Acme Corp"},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "msg-1", resp["message_id"])
	assert.NotContains(t, resp, "skipped")

	require.Len(t, f.logs.entries, 1)
	assert.Equal(t, model.NotificationStatusSent, f.logs.entries[0].Status)
}

func TestDispatchEndpointSkipped(t *testing.T) {
	f := newFixture(t)

	// Unknown user id resolves to no address, which is a skip.
	rec := f.dispatch(t, map[string]interface{}{
		"notification_type": "business_approved",
		"recipient_user_id": uuid.NewString(),
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, true, resp["skipped"])
	assert.Equal(t, "no_recipient", resp["reason"])
}

func TestDispatchEndpointMissingRecipient(t *testing.T) {
	f := newFixture(t)

	rec := f.dispatch(t, map[string]interface{}{
		"notification_type": "business_approved",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "recipient_user_id or recipient_email")
	assert.Empty(t, f.logs.entries)
}

func TestDispatchEndpointUnknownType(t *testing.T) {
	f := newFixture(t)

	rec := f.dispatch(t, map[string]interface{}{
		"notification_type": "no_such_type",
		"recipient_email":   "owner@acme.test",
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, f.logs.entries)
}

func TestDispatchEndpointInvalidUserID(t *testing.T) {
	f := newFixture(t)

	rec := f.dispatch(t, map[string]interface{}{
		"notification_type": "business_approved",
		"recipient_user_id": "not-a-uuid",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDispatchEndpointDeliveryFailure(t *testing.T) {
	f := newFixture(t)
	f.sender.err = &email.DeliveryError{Provider: "mailgun", StatusCode: 502, Message: "upstream down"}

	rec := f.dispatch(t, map[string]interface{}{
		"notification_type": "business_approved",
		"recipient_email":   "owner@acme.test",
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Len(t, f.logs.entries, 1)
	assert.Equal(t, model.NotificationStatusFailed, f.logs.entries[0].Status)
}
