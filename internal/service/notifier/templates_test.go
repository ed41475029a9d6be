package notifier

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openboard/board-api/internal/model"
)

func TestResolveAdminGlobalWinsOverSystemDefault(t *testing.T) {
	templates := newFakeTemplateRepo()
	resolver := NewTemplateResolver(templates)
	typeID := uuid.New()

	require.NoError(t, templates.Upsert(context.Background(), &model.NotificationTemplate{
		NotificationTypeID: typeID,
		TemplateType:       model.TierSystemDefault,
		Subject:            "stock subject",
		IsActive:           true,
	}))
	require.NoError(t, templates.Upsert(context.Background(), &model.NotificationTemplate{
		NotificationTypeID: typeID,
		TemplateType:       model.TierAdminGlobal,
		Subject:            "customized subject",
		IsActive:           true,
	}))

	tmpl, err := resolver.Resolve(context.Background(), typeID)
	require.NoError(t, err)
	assert.Equal(t, model.TierAdminGlobal, tmpl.TemplateType)
	assert.Equal(t, "customized subject", tmpl.Subject)
}

func TestResolveSkipsInactiveAdminGlobal(t *testing.T) {
	templates := newFakeTemplateRepo()
	resolver := NewTemplateResolver(templates)
	typeID := uuid.New()

	require.NoError(t, templates.Upsert(context.Background(), &model.NotificationTemplate{
		NotificationTypeID: typeID,
		TemplateType:       model.TierAdminGlobal,
		Subject:            "disabled override",
		IsActive:           false,
	}))
	require.NoError(t, templates.Upsert(context.Background(), &model.NotificationTemplate{
		NotificationTypeID: typeID,
		TemplateType:       model.TierSystemDefault,
		Subject:            "stock subject",
		IsActive:           true,
	}))

	tmpl, err := resolver.Resolve(context.Background(), typeID)
	require.NoError(t, err)
	assert.Equal(t, model.TierSystemDefault, tmpl.TemplateType)
}

func TestResolveNoActiveTemplate(t *testing.T) {
	resolver := NewTemplateResolver(newFakeTemplateRepo())

	tmpl, err := resolver.Resolve(context.Background(), uuid.New())
	assert.Nil(t, tmpl)
	assert.ErrorIs(t, err, ErrNoActiveTemplate)
}
