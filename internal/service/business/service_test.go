package business

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openboard/board-api/internal/model"
	"github.com/openboard/board-api/internal/repository"
	"github.com/openboard/board-api/internal/service/notifier"
	apperrors "github.com/openboard/board-api/pkg/errors"
)

type memBusinessRepo struct {
	businesses map[uuid.UUID]*model.Business
}

func newMemBusinessRepo() *memBusinessRepo {
	return &memBusinessRepo{businesses: make(map[uuid.UUID]*model.Business)}
}

func (m *memBusinessRepo) Create(_ context.Context, b *model.Business) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	m.businesses[b.ID] = b
	return nil
}

func (m *memBusinessRepo) Get(_ context.Context, id uuid.UUID) (*model.Business, error) {
	b, ok := m.businesses[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return b, nil
}

func (m *memBusinessRepo) UpdateStatus(_ context.Context, id uuid.UUID, status model.BusinessStatus) error {
	b, ok := m.businesses[id]
	if !ok {
		return repository.ErrNotFound
	}
	b.Status = status
	return nil
}

func (m *memBusinessRepo) ListByStatus(_ context.Context, status model.BusinessStatus) ([]*model.Business, error) {
	var out []*model.Business
	for _, b := range m.businesses {
		if b.Status == status {
			out = append(out, b)
		}
	}
	return out, nil
}

type memUserRepo struct {
	users map[uuid.UUID]*model.User
}

func (m *memUserRepo) Create(_ context.Context, u *model.User) error {
	m.users[u.ID] = u
	return nil
}

func (m *memUserRepo) Get(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (m *memUserRepo) GetByEmail(context.Context, string) (*model.User, error) {
	return nil, repository.ErrNotFound
}

type noTypesRepo struct{}

func (noTypesRepo) Create(context.Context, *model.NotificationType) error { return nil }
func (noTypesRepo) GetByKey(context.Context, string) (*model.NotificationType, error) {
	return nil, repository.ErrNotFound
}
func (noTypesRepo) List(context.Context) ([]*model.NotificationType, error) { return nil, nil }

// newNoopTrigger builds a trigger whose dispatches terminate at the
// type lookup; lifecycle tests only care about the status transitions.
func newNoopTrigger() *notifier.Trigger {
	svc := notifier.NewService(notifier.Deps{Types: noTypesRepo{}}, notifier.Options{})
	return notifier.NewTrigger(svc, time.Second)
}

func newTestService() (*Service, *memBusinessRepo, *memUserRepo) {
	businesses := newMemBusinessRepo()
	users := &memUserRepo{users: make(map[uuid.UUID]*model.User)}
	return NewService(businesses, users, newNoopTrigger()), businesses, users
}

func TestRegisterRequiresExistingOwner(t *testing.T) {
	svc, _, _ := newTestService()

	err := svc.Register(context.Background(), &model.Business{
		OwnerID: uuid.New(),
		Name:    "Acme Corp",
	})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrBadRequest, appErr.Code)
}

func TestRegisterStartsPending(t *testing.T) {
	svc, businesses, users := newTestService()
	owner := &model.User{Base: model.Base{ID: uuid.New()}, Email: "owner@acme.test"}
	users.users[owner.ID] = owner

	b := &model.Business{
		OwnerID: owner.ID,
		Name:    "Acme Corp",
		Status:  model.BusinessStatusApproved, // caller cannot pre-approve
	}
	require.NoError(t, svc.Register(context.Background(), b))

	stored := businesses.businesses[b.ID]
	assert.Equal(t, model.BusinessStatusPending, stored.Status)
}

func TestApproveUpdatesStatus(t *testing.T) {
	svc, businesses, users := newTestService()
	owner := &model.User{Base: model.Base{ID: uuid.New()}, Email: "owner@acme.test"}
	users.users[owner.ID] = owner

	b := &model.Business{OwnerID: owner.ID, Name: "Acme Corp"}
	require.NoError(t, svc.Register(context.Background(), b))
	require.NoError(t, svc.Approve(context.Background(), b.ID))

	assert.Equal(t, model.BusinessStatusApproved, businesses.businesses[b.ID].Status)
}

func TestApproveUnknownBusiness(t *testing.T) {
	svc, _, _ := newTestService()

	err := svc.Approve(context.Background(), uuid.New())

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
}

func TestRejectUpdatesStatus(t *testing.T) {
	svc, businesses, users := newTestService()
	owner := &model.User{Base: model.Base{ID: uuid.New()}, Email: "owner@acme.test"}
	users.users[owner.ID] = owner

	b := &model.Business{OwnerID: owner.ID, Name: "Acme Corp"}
	require.NoError(t, svc.Register(context.Background(), b))
	require.NoError(t, svc.Reject(context.Background(), b.ID, "incomplete profile"))

	assert.Equal(t, model.BusinessStatusRejected, businesses.businesses[b.ID].Status)
}

func TestListPending(t *testing.T) {
	svc, _, users := newTestService()
	owner := &model.User{Base: model.Base{ID: uuid.New()}, Email: "owner@acme.test"}
	users.users[owner.ID] = owner

	first := &model.Business{OwnerID: owner.ID, Name: "First"}
	second := &model.Business{OwnerID: owner.ID, Name: "Second"}
	require.NoError(t, svc.Register(context.Background(), first))
	require.NoError(t, svc.Register(context.Background(), second))
	require.NoError(t, svc.Approve(context.Background(), first.ID))

	pending, err := svc.ListPending(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "Second", pending[0].Name)
}
