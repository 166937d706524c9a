package notification

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
)

var (
	stamp   = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	columns = []string{"id", "user_id", "message", "is_read", "created_at"}
)

func newTestRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return NewRepository(db), mock
}

func TestCreate_StoresUnread(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"INSERT INTO notifications (user_id,message,is_read) VALUES ($1,$2,$3) RETURNING id, created_at",
	)).
		WithArgs(int64(5), "New booking", false).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(3), stamp))

	n, err := repo.Create(context.Background(), &domain.Notification{UserID: 5, Message: "New booking", IsRead: true})

	require.NoError(t, err)
	assert.Equal(t, int64(3), n.ID)
	assert.False(t, n.IsRead)
}

func TestGetByID(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, user_id, message, is_read, created_at FROM notifications WHERE id = $1",
	)).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(int64(3), int64(5), "New booking", true, stamp))

	n, err := repo.GetByID(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, int64(5), n.UserID)
	assert.True(t, n.IsRead)
}

func TestGetByID_NoRowsIsNotFound(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM notifications WHERE id = $1")).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(columns))

	_, err := repo.GetByID(context.Background(), 99)

	assert.ErrorIs(t, err, ErrNotificationNotFound)
}

func TestGetByUserID_NewestFirst(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"FROM notifications WHERE user_id = $1 ORDER BY created_at DESC, id DESC",
	)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(int64(4), int64(5), "Booking cancelled", false, stamp.Add(time.Hour)).
			AddRow(int64(3), int64(5), "New booking", true, stamp))

	list, err := repo.GetByUserID(context.Background(), 5)

	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(4), list[0].ID)
	assert.Equal(t, int64(3), list[1].ID)
}

func TestMarkAsRead(t *testing.T) {
	pattern := regexp.QuoteMeta("UPDATE notifications SET is_read = $1 WHERE id = $2")

	t.Run("updated", func(t *testing.T) {
		repo, mock := newTestRepository(t)
		mock.ExpectExec(pattern).
			WithArgs(true, int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.MarkAsRead(context.Background(), 3))
	})

	t.Run("missing row", func(t *testing.T) {
		repo, mock := newTestRepository(t)
		mock.ExpectExec(pattern).
			WithArgs(true, int64(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.MarkAsRead(context.Background(), 99), ErrNotificationNotFound)
	})
}
