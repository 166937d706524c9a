package notifications

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	notificationRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/notification"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/service/notifications/models"
)

const defaultTimeout = 5 * time.Second

// Service лента уведомлений и отправка уведомлений участникам бронирований
type Service struct {
	repo      NotificationRepository
	publisher Publisher // nil, если RabbitMQ выключен
	metrics   Metrics
	timeout   time.Duration
	logger    Logger
}

// NewService создает сервис уведомлений; publisher может быть nil
func NewService(repo NotificationRepository, publisher Publisher, metrics Metrics, timeout time.Duration, logger Logger) *Service {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Service{
		repo:      repo,
		publisher: publisher,
		metrics:   metrics,
		timeout:   timeout,
		logger:    logger,
	}
}

// Notify сохраняет уведомление и публикует событие notification.created
// Ошибки только логируются: уведомление не влияет на результат операции, которая его вызвала.
// Работает на отвязанном от запроса контексте, ограниченном таймаутом
func (s *Service) Notify(ctx context.Context, userID int64, message string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	n, err := s.repo.Create(ctx, &domain.Notification{UserID: userID, Message: message})
	if err != nil {
		s.metrics.NotificationFailed("store")
		s.logger.Error("Notify: failed to store notification for user=%d: %v", userID, err)
		return
	}

	if s.publisher != nil {
		event := models.NotificationCreatedEvent{
			NotificationID: n.ID,
			UserID:         n.UserID,
			Message:        n.Message,
			CreatedAt:      n.CreatedAt,
		}
		if err := s.publisher.PublishJSON(ctx, models.RoutingKeyCreated, event); err != nil {
			s.metrics.NotificationFailed("publish")
			s.logger.Error("Notify: failed to publish notification id=%d: %v", n.ID, err)
			return
		}
	}

	s.logger.Info("Notify: notification id=%d sent to user=%d", n.ID, userID)
}

// GetUserNotifications лента пользователя, сначала новые; читать можно только свою
func (s *Service) GetUserNotifications(ctx context.Context, userID, requesterID int64) (*models.NotificationListResponse, error) {
	if userID != requesterID {
		s.logger.Warn("GetUserNotifications: user=%d requested notifications of user=%d", requesterID, userID)
		return nil, domain.ErrNotOwner
	}

	list, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("GetUserNotifications: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetUserNotifications - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainNotificationList(list), nil
}

// MarkAsRead помечает уведомление прочитанным; только владелец
func (s *Service) MarkAsRead(ctx context.Context, id, requesterID int64) error {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, notificationRepo.ErrNotificationNotFound) {
			return domain.ErrNotificationNotFound
		}
		s.logger.Error("MarkAsRead: repository error for notification id=%d: %v", id, err)
		return fmt.Errorf("%w: MarkAsRead - repository error: %w", ErrInternal, err)
	}

	if n.UserID != requesterID {
		s.logger.Warn("MarkAsRead: user=%d is not the owner of notification id=%d", requesterID, id)
		return domain.ErrNotOwner
	}

	if err := s.repo.MarkAsRead(ctx, id); err != nil {
		if errors.Is(err, notificationRepo.ErrNotificationNotFound) {
			return domain.ErrNotificationNotFound
		}
		s.logger.Error("MarkAsRead: repository error for notification id=%d: %v", id, err)
		return fmt.Errorf("%w: MarkAsRead - repository error: %w", ErrInternal, err)
	}

	return nil
}
