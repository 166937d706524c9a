package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/service/bookings/models"
)

// Service сервис жизненного цикла бронирований
type Service struct {
	bookingRepo   BookingRepository
	txManager     TransactionManager
	userClient    UserServiceClient
	listingClient ListingServiceClient
	notifier      Notifier
	metrics       Metrics
	logger        Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	userClient UserServiceClient,
	listingClient ListingServiceClient,
	notifier Notifier,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:   bookingRepo,
		txManager:     txManager,
		userClient:    userClient,
		listingClient: listingClient,
		notifier:      notifier,
		metrics:       metrics,
		logger:        logger,
	}
}

// GetByID получает бронирование по ID
// Видеть бронирование могут только его клиент и провайдер
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !booking.IsParticipant(userID) {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, domain.ErrNotOwner
	}

	return newEnricher(s.userClient, s.listingClient, s.logger).enrich(ctx, booking), nil
}

// ListByCustomer бронирования клиента: сначала поздние даты
func (s *Service) ListByCustomer(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	filter := domain.BookingsFilter{CustomerID: &req.UserID}
	return s.list(ctx, "ListByCustomer", req.UserID, filter, req.Status)
}

// ListByProvider бронирования провайдера: сначала поздние даты
func (s *Service) ListByProvider(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	filter := domain.BookingsFilter{ProviderID: &req.UserID}
	return s.list(ctx, "ListByProvider", req.UserID, filter, req.Status)
}

func (s *Service) list(ctx context.Context, op string, userID int64, filter domain.BookingsFilter, status *string) (*models.BookingListResponse, error) {
	s.logger.Info("%s: fetching bookings for user=%d", op, userID)

	if status != nil {
		st, err := models.ToDomainBookingStatus(*status)
		if err != nil {
			s.logger.Warn("%s: invalid status=%s", op, *status)
			return nil, err
		}
		filter.Status = &st
	}

	list, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("%s: repository error: %v", op, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}

	s.logger.Info("%s: fetched %d bookings for user=%d", op, len(list), userID)
	return newEnricher(s.userClient, s.listingClient, s.logger).enrichList(ctx, list), nil
}

// Confirm переводит бронирование PENDING -> CONFIRMED и уведомляет клиента
// Подтвердить может только провайдер бронирования
func (s *Service) Confirm(ctx context.Context, id int64, actorID int64) (*models.BookingResponse, error) {
	booking, err := s.transition(ctx, "Confirm", id, func(txCtx context.Context, b *domain.Booking) error {
		if !b.IsProvider(actorID) {
			return domain.ErrNotProvider
		}
		if !b.CanBeConfirmed() {
			return domain.ErrNotPending
		}
		return s.bookingRepo.UpdateStatus(txCtx, b.ID, domain.StatusConfirmed)
	})
	if err != nil {
		return nil, err
	}

	booking.Status = domain.StatusConfirmed
	s.metrics.BookingTransition(string(domain.StatusConfirmed))
	s.notifier.Notify(ctx, booking.CustomerID, fmt.Sprintf("Your booking ID: %d has been confirmed", booking.ID))

	return models.FromDomainBooking(booking), nil
}

// Complete переводит бронирование CONFIRMED -> COMPLETED и уведомляет клиента
// Завершить может только провайдер бронирования
func (s *Service) Complete(ctx context.Context, id int64, actorID int64) (*models.BookingResponse, error) {
	booking, err := s.transition(ctx, "Complete", id, func(txCtx context.Context, b *domain.Booking) error {
		if !b.IsProvider(actorID) {
			return domain.ErrNotProvider
		}
		if !b.CanBeCompleted() {
			return domain.ErrNotConfirmed
		}
		return s.bookingRepo.UpdateStatus(txCtx, b.ID, domain.StatusCompleted)
	})
	if err != nil {
		return nil, err
	}

	booking.Status = domain.StatusCompleted
	s.metrics.BookingTransition(string(domain.StatusCompleted))
	s.notifier.Notify(ctx, booking.CustomerID, fmt.Sprintf("Your booking ID: %d has been completed", booking.ID))

	return models.FromDomainBooking(booking), nil
}

// Cancel отменяет бронирование PENDING или CONFIRMED
// Отменить может клиент или провайдер; уведомление получает другая сторона
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	if req.CancellationReason != nil && len(*req.CancellationReason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: cancellation reason is longer than %d", domain.ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	booking, err := s.transition(ctx, "Cancel", id, func(txCtx context.Context, b *domain.Booking) error {
		switch {
		case b.Status == domain.StatusCompleted:
			return domain.ErrCompletedNotCancellable
		case !b.CanBeCancelled():
			return domain.ErrAlreadyCancelled
		case !b.IsParticipant(req.UserID):
			return domain.ErrNotParticipant
		}
		return s.bookingRepo.Cancel(txCtx, b.ID, req.UserID, req.CancellationReason)
	})
	if err != nil {
		return nil, err
	}

	booking.Status = domain.StatusCancelled
	booking.CancelledBy = &req.UserID
	booking.CancellationReason = req.CancellationReason

	s.metrics.BookingTransition(string(domain.StatusCancelled))
	s.notifier.Notify(ctx, booking.CounterpartyOf(req.UserID), fmt.Sprintf("Booking ID: %d has been cancelled", booking.ID))

	return models.FromDomainBooking(booking), nil
}

// transition читает бронирование под блокировкой и применяет apply в одной транзакции
// Возвращает бронирование в состоянии до изменения
func (s *Service) transition(ctx context.Context, op string, id int64, apply func(txCtx context.Context, b *domain.Booking) error) (*domain.Booking, error) {
	s.logger.Info("%s: booking id=%d", op, id)

	var booking *domain.Booking
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		b, err := s.getBooking(txCtx, op, id)
		if err != nil {
			return err
		}
		booking = b

		return apply(txCtx, b)
	})

	if err != nil {
		var de *domain.Error
		switch {
		case errors.As(err, &de):
			s.logger.Warn("%s: booking id=%d rejected: %v", op, id, err)
			return nil, err
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, domain.ErrBookingNotFound
		case errors.Is(err, ErrInternal):
			return nil, err
		default:
			s.logger.Error("%s: transaction error for booking id=%d: %v", op, id, err)
			return nil, fmt.Errorf("%w: %s - transaction error: %w", ErrInternal, op, err)
		}
	}

	s.logger.Info("%s: booking id=%d done", op, id)
	return booking, nil
}

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, domain.ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return booking, nil
}
