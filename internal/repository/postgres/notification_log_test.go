package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openboard/board-api/internal/model"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

func TestNotificationLogCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewNotificationLogRepository(NewBaseRepository(db))

	userID := uuid.New()
	entry := &model.NotificationLog{
		NotificationTypeKey: "business_approved",
		RecipientEmail:      "owner@acme.test",
		RecipientUserID:     &userID,
		Subject:             "Your business Acme Corp was approved",
		Status:              model.NotificationStatusSent,
		Metadata:            model.Metadata{"message_id": "provider-abc"},
	}

	mock.ExpectExec("INSERT INTO notification_logs").
		WithArgs(
			sqlmock.AnyArg(),
			entry.NotificationTypeKey,
			entry.RecipientEmail,
			entry.RecipientUserID,
			entry.Subject,
			entry.Status,
			entry.ErrorMessage,
			sqlmock.AnyArg(),
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), entry))

	// Create assigns the identity and timestamp when the caller
	// leaves them zero.
	assert.NotEqual(t, uuid.Nil, entry.ID)
	assert.False(t, entry.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationLogListWithPagination(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewNotificationLogRepository(NewBaseRepository(db))

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM notification_logs WHERE 1=1 AND notification_type_key = \$1 AND status = \$2`).
		WithArgs("business_approved", model.NotificationStatusSent).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	rows := sqlmock.NewRows([]string{
		"id", "notification_type_key", "recipient_email", "recipient_user_id",
		"subject", "status", "error_message", "metadata", "created_at",
	}).
		AddRow(uuid.New(), "business_approved", "a@acme.test", nil, "s1", "sent", "", nil, time.Now()).
		AddRow(uuid.New(), "business_approved", "b@acme.test", nil, "s2", "sent", "", nil, time.Now())

	mock.ExpectQuery(`SELECT \* FROM notification_logs WHERE 1=1 AND notification_type_key = \$1 AND status = \$2 ORDER BY created_at DESC LIMIT \$3 OFFSET \$4`).
		WithArgs("business_approved", model.NotificationStatusSent, 25, 0).
		WillReturnRows(rows)

	logs, total, err := repo.ListWithPagination(context.Background(), &model.NotificationLogFilters{
		TypeKey: "business_approved",
		Status:  model.NotificationStatusSent,
		Limit:   25,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2), total)
	require.Len(t, logs, 2)
	assert.Equal(t, "a@acme.test", logs[0].RecipientEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationLogListDefaultLimit(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewNotificationLogRepository(NewBaseRepository(db))

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM notification_logs WHERE 1=1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT \* FROM notification_logs WHERE 1=1 ORDER BY created_at DESC LIMIT \$1 OFFSET \$2`).
		WithArgs(50, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	logs, total, err := repo.ListWithPagination(context.Background(), &model.NotificationLogFilters{})
	require.NoError(t, err)

	assert.Zero(t, total)
	assert.Empty(t, logs)
	assert.NoError(t, mock.ExpectationsWereMet())
}
