package notifications

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	notificationRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/notification"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/service/notifications/models"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/logger"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/metrics"
)

type memRepo struct {
	items     []*domain.Notification
	createErr error
	ctxErr    error
}

func (r *memRepo) Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	r.ctxErr = ctx.Err()
	if r.createErr != nil {
		return nil, r.createErr
	}
	n.ID = int64(len(r.items) + 1)
	n.CreatedAt = time.Now()
	r.items = append(r.items, n)
	return n, nil
}

func (r *memRepo) GetByID(_ context.Context, id int64) (*domain.Notification, error) {
	for _, n := range r.items {
		if n.ID == id {
			return n, nil
		}
	}
	return nil, notificationRepo.ErrNotificationNotFound
}

func (r *memRepo) GetByUserID(_ context.Context, userID int64) ([]*domain.Notification, error) {
	out := make([]*domain.Notification, 0)
	for i := len(r.items) - 1; i >= 0; i-- {
		if r.items[i].UserID == userID {
			out = append(out, r.items[i])
		}
	}
	return out, nil
}

func (r *memRepo) MarkAsRead(_ context.Context, id int64) error {
	for _, n := range r.items {
		if n.ID == id {
			n.IsRead = true
			return nil
		}
	}
	return notificationRepo.ErrNotificationNotFound
}

type published struct {
	key   string
	event models.NotificationCreatedEvent
}

type fakePublisher struct {
	sent []published
	err  error
}

func (p *fakePublisher) PublishJSON(_ context.Context, key string, v any) error {
	if p.err != nil {
		return p.err
	}
	p.sent = append(p.sent, published{key: key, event: v.(models.NotificationCreatedEvent)})
	return nil
}

func newMetrics() *metrics.Metrics {
	return metrics.NewWithRegistry("test", prometheus.NewRegistry())
}

func TestNotify_StoresAndPublishes(t *testing.T) {
	repo := &memRepo{}
	pub := &fakePublisher{}
	svc := NewService(repo, pub, newMetrics(), time.Second, logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc.Notify(ctx, 1, "Your booking ID: 10 has been confirmed")

	require.Len(t, repo.items, 1)
	assert.NoError(t, repo.ctxErr, "notification must not inherit request cancellation")
	assert.Equal(t, int64(1), repo.items[0].UserID)
	assert.False(t, repo.items[0].IsRead)

	require.Len(t, pub.sent, 1)
	assert.Equal(t, "notification.created", pub.sent[0].key)
	assert.Equal(t, "Your booking ID: 10 has been confirmed", pub.sent[0].event.Message)
}

func TestNotify_FailuresAreSwallowed(t *testing.T) {
	m := newMetrics()

	repo := &memRepo{createErr: errors.New("db down")}
	NewService(repo, &fakePublisher{}, m, time.Second, logger.NewNop()).Notify(context.Background(), 1, "x")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.NotificationFailures.WithLabelValues("store")))

	pub := &fakePublisher{err: errors.New("broker gone")}
	NewService(&memRepo{}, pub, m, time.Second, logger.NewNop()).Notify(context.Background(), 1, "x")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.NotificationFailures.WithLabelValues("publish")))
}

func TestNotify_WithoutPublisher(t *testing.T) {
	repo := &memRepo{}
	svc := NewService(repo, nil, newMetrics(), 0, logger.NewNop())

	svc.Notify(context.Background(), 5, "Booking ID: 10 has been cancelled")

	assert.Len(t, repo.items, 1)
}

func TestGetUserNotifications(t *testing.T) {
	repo := &memRepo{}
	svc := NewService(repo, nil, newMetrics(), time.Second, logger.NewNop())
	ctx := context.Background()

	svc.Notify(ctx, 1, "first")
	svc.Notify(ctx, 2, "other user")
	svc.Notify(ctx, 1, "second")

	resp, err := svc.GetUserNotifications(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, resp.Notifications, 2)
	assert.Equal(t, "second", resp.Notifications[0].Message)
	assert.Equal(t, "first", resp.Notifications[1].Message)

	_, err = svc.GetUserNotifications(ctx, 1, 2)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestMarkAsRead(t *testing.T) {
	repo := &memRepo{}
	svc := NewService(repo, nil, newMetrics(), time.Second, logger.NewNop())
	ctx := context.Background()

	svc.Notify(ctx, 1, "hello")

	assert.ErrorIs(t, svc.MarkAsRead(ctx, 1, 2), domain.ErrNotOwner)
	assert.False(t, repo.items[0].IsRead)

	require.NoError(t, svc.MarkAsRead(ctx, 1, 1))
	assert.True(t, repo.items[0].IsRead)

	assert.ErrorIs(t, svc.MarkAsRead(ctx, 99, 1), domain.ErrNotificationNotFound)
}
