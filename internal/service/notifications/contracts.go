package notifications

import (
	"context"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
)

// NotificationRepository интерфейс репозитория уведомлений
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	GetByID(ctx context.Context, id int64) (*domain.Notification, error)
	GetByUserID(ctx context.Context, userID int64) ([]*domain.Notification, error)
	MarkAsRead(ctx context.Context, id int64) error
}

// Publisher публикация событий в брокер (pkg/mq)
type Publisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// Metrics счетчик неудачных уведомлений
type Metrics interface {
	NotificationFailed(stage string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
