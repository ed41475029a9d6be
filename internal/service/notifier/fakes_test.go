package notifier

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/openboard/board-api/internal/email"
	"github.com/openboard/board-api/internal/model"
	"github.com/openboard/board-api/internal/repository"
)

// In-memory fakes so the pipeline is testable without a live database.

type fakeTypeRepo struct {
	mu    sync.Mutex
	types map[string]*model.NotificationType
	calls int
}

func newFakeTypeRepo() *fakeTypeRepo {
	return &fakeTypeRepo{types: make(map[string]*model.NotificationType)}
}

func (f *fakeTypeRepo) Create(_ context.Context, nt *model.NotificationType) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if nt.ID == uuid.Nil {
		nt.ID = uuid.New()
	}
	f.types[nt.Key] = nt
	return nil
}

func (f *fakeTypeRepo) GetByKey(_ context.Context, key string) (*model.NotificationType, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	nt, ok := f.types[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return nt, nil
}

func (f *fakeTypeRepo) List(_ context.Context) ([]*model.NotificationType, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*model.NotificationType, 0, len(f.types))
	for _, nt := range f.types {
		out = append(out, nt)
	}
	return out, nil
}

type fakeTemplateRepo struct {
	templates map[uuid.UUID]map[model.TemplateTier]*model.NotificationTemplate
}

func newFakeTemplateRepo() *fakeTemplateRepo {
	return &fakeTemplateRepo{templates: make(map[uuid.UUID]map[model.TemplateTier]*model.NotificationTemplate)}
}

func (f *fakeTemplateRepo) Upsert(_ context.Context, tmpl *model.NotificationTemplate) error {
	if tmpl.ID == uuid.Nil {
		tmpl.ID = uuid.New()
	}
	byTier, ok := f.templates[tmpl.NotificationTypeID]
	if !ok {
		byTier = make(map[model.TemplateTier]*model.NotificationTemplate)
		f.templates[tmpl.NotificationTypeID] = byTier
	}
	byTier[tmpl.TemplateType] = tmpl
	return nil
}

func (f *fakeTemplateRepo) GetActive(_ context.Context, typeID uuid.UUID, tier model.TemplateTier) (*model.NotificationTemplate, error) {
	tmpl, ok := f.templates[typeID][tier]
	if !ok || !tmpl.IsActive {
		return nil, repository.ErrNotFound
	}
	return tmpl, nil
}

func (f *fakeTemplateRepo) ListByType(_ context.Context, typeID uuid.UUID) ([]*model.NotificationTemplate, error) {
	var out []*model.NotificationTemplate
	for _, tmpl := range f.templates[typeID] {
		out = append(out, tmpl)
	}
	return out, nil
}

type fakePrefRepo struct {
	prefs map[string]*model.UserNotificationPreference
}

func newFakePrefRepo() *fakePrefRepo {
	return &fakePrefRepo{prefs: make(map[string]*model.UserNotificationPreference)}
}

func prefKey(userID, typeID uuid.UUID) string {
	return userID.String() + "/" + typeID.String()
}

func (f *fakePrefRepo) Get(_ context.Context, userID, typeID uuid.UUID) (*model.UserNotificationPreference, error) {
	pref, ok := f.prefs[prefKey(userID, typeID)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return pref, nil
}

func (f *fakePrefRepo) Upsert(_ context.Context, pref *model.UserNotificationPreference) error {
	if pref.ID == uuid.Nil {
		pref.ID = uuid.New()
	}
	f.prefs[prefKey(pref.UserID, pref.NotificationTypeID)] = pref
	return nil
}

func (f *fakePrefRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*model.UserNotificationPreference, error) {
	var out []*model.UserNotificationPreference
	for _, pref := range f.prefs {
		if pref.UserID == userID {
			out = append(out, pref)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) Get(_ context.Context, id uuid.UUID) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, emailAddr string) (*model.User, error) {
	for _, user := range f.users {
		if user.Email == emailAddr {
			return user, nil
		}
	}
	return nil, repository.ErrNotFound
}

type fakeLogRepo struct {
	mu      sync.Mutex
	entries []*model.NotificationLog
	failing bool
}

func newFakeLogRepo() *fakeLogRepo {
	return &fakeLogRepo{}
}

func (f *fakeLogRepo) Create(_ context.Context, entry *model.NotificationLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return errors.New("log store unavailable")
	}
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeLogRepo) ListWithPagination(_ context.Context, _ *model.NotificationLogFilters) ([]*model.NotificationLog, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.entries, int64(len(f.entries)), nil
}

type fakeSender struct {
	mu    sync.Mutex
	sent  []*email.Message
	err   error
	msgID string
}

func (f *fakeSender) Send(_ context.Context, msg *email.Message) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, msg)
	if f.msgID != "" {
		return f.msgID, nil
	}
	return "msg-1", nil
}

// testEnv bundles a Service with its fakes for assertions.
type testEnv struct {
	svc       *Service
	types     *fakeTypeRepo
	templates *fakeTemplateRepo
	prefs     *fakePrefRepo
	users     *fakeUserRepo
	logs      *fakeLogRepo
	sender    *fakeSender
}

func newTestEnv() *testEnv {
	env := &testEnv{
		types:     newFakeTypeRepo(),
		templates: newFakeTemplateRepo(),
		prefs:     newFakePrefRepo(),
		users:     newFakeUserRepo(),
		logs:      newFakeLogRepo(),
		sender:    &fakeSender{},
	}
	env.svc = NewService(Deps{
		Types:       env.types,
		Templates:   env.templates,
		Preferences: env.prefs,
		Users:       env.users,
		Logs:        env.logs,
		Sender:      env.sender,
	}, Options{})
	return env
}

func (e *testEnv) addType(key string, defaultEnabled, isSystem bool) *model.NotificationType {
	nt := &model.NotificationType{
		Base:           model.Base{ID: uuid.New()},
		Key:            key,
		Name:           key,
		Category:       model.CategoryBusiness,
		DefaultEnabled: defaultEnabled,
		IsSystem:       isSystem,
	}
	e.types.types[key] = nt
	return nt
}

func (e *testEnv) addTemplate(typeID uuid.UUID, tier model.TemplateTier, subject, body string, active bool) *model.NotificationTemplate {
	tmpl := &model.NotificationTemplate{
		Base:               model.Base{ID: uuid.New()},
		NotificationTypeID: typeID,
		TemplateType:       tier,
		Subject:            subject,
		BodyHTML:           body,
		IsActive:           active,
	}
	e.templates.Upsert(context.Background(), tmpl)
	return tmpl
}

func (e *testEnv) addUser(emailAddr string) *model.User {
	user := &model.User{
		Base:   model.Base{ID: uuid.New()},
		Email:  emailAddr,
		Role:   model.UserRoleBusiness,
		Status: model.UserStatusActive,
	}
	e.users.users[user.ID] = user
	return user
}
