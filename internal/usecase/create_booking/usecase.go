package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/txmanager"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	slots        SlotChecker
	txManager    TransactionManager
	timeProvider TimeProvider
	metrics      Metrics
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slots SlotChecker,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		slots:        slots,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		metrics:      metrics,
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания бронирования
// Проверки и вставка идут в одной сериализуемой транзакции; окончательно двойное бронирование
// отсекает частичный уникальный индекс, его нарушение превращается в тот же конфликт, что и проверка
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: customer=%d, provider=%d, listing=%d, date=%s, slot=%q",
		req.CustomerID, req.ProviderID, req.ListingID, req.Date.Format(domain.DateFormat), req.TimeSlot)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	date := dateOnly(req.Date)
	day := domain.WeekdayOf(date)

	var result *domain.Booking

	// 2. Проверки и вставка в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Слот на эту дату уже занят активным бронированием
		taken, err := uc.slots.IsSlotTaken(txCtx, req.ProviderID, date, req.TimeSlot)
		if err != nil {
			return err
		}
		if taken {
			return domain.ErrSlotAlreadyBooked
		}

		// 2.2. Провайдер предлагает этот слот в этот день недели
		offered, err := uc.slots.IsSlotOffered(txCtx, req.ProviderID, day, req.TimeSlot)
		if err != nil {
			return err
		}
		if !offered {
			return domain.ErrSlotNotOffered
		}

		// 2.3. Сохраняем бронирование в статусе PENDING
		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			CustomerID:  req.CustomerID,
			ProviderID:  req.ProviderID,
			ListingID:   req.ListingID,
			BookingDate: date,
			TimeSlot:    req.TimeSlot,
			Status:      domain.StatusPending,
			CreatedAt:   uc.timeProvider.Now(),
		})
		if err != nil {
			return err
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, uc.translateError(ctx, req, date, err)
	}

	uc.metrics.BookingCreated()
	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	return &Response{
		ID:          result.ID,
		CustomerID:  result.CustomerID,
		ProviderID:  result.ProviderID,
		ListingID:   result.ListingID,
		BookingDate: result.BookingDate.Format(domain.DateFormat),
		TimeSlot:    result.TimeSlot,
		Status:      string(result.Status),
		CreatedAt:   result.CreatedAt,
		UpdatedAt:   result.UpdatedAt,
	}, nil
}

// translateError приводит ошибку транзакции к доменной
func (uc *UseCase) translateError(ctx context.Context, req *Request, date time.Time, err error) error {
	switch {
	case errors.Is(err, domain.ErrSlotAlreadyBooked):
		uc.metrics.BookingConflict("taken")
		uc.logger.Warn("CreateBooking: slot %q of provider=%d already booked", req.TimeSlot, req.ProviderID)
		return domain.ErrSlotAlreadyBooked

	case errors.Is(err, bookingRepo.ErrSlotTaken):
		// Проверку обогнала параллельная транзакция, вставку отклонил уникальный индекс
		uc.metrics.BookingConflict("unique_violation")
		uc.logger.Warn("CreateBooking: slot %q of provider=%d taken concurrently", req.TimeSlot, req.ProviderID)
		return domain.ErrSlotAlreadyBooked

	case errors.Is(err, domain.ErrSlotNotOffered):
		uc.metrics.BookingConflict("not_offered")
		uc.logger.Warn("CreateBooking: slot %q not offered by provider=%d", req.TimeSlot, req.ProviderID)
		return domain.ErrSlotNotOffered

	case errors.Is(err, domain.ErrProviderNotAvailable):
		uc.logger.Warn("CreateBooking: provider=%d has no availability on that day", req.ProviderID)
		return domain.ErrProviderNotAvailable

	case errors.Is(err, txmanager.ErrRetriesExhausted):
		// Все попытки проиграли конфликт сериализации: если слот в итоге занят, это обычный конфликт
		if taken, checkErr := uc.slots.IsSlotTaken(ctx, req.ProviderID, date, req.TimeSlot); checkErr == nil && taken {
			uc.metrics.BookingConflict("serialization")
			uc.logger.Warn("CreateBooking: slot %q of provider=%d taken after retries", req.TimeSlot, req.ProviderID)
			return domain.ErrSlotAlreadyBooked
		}
		uc.logger.Error("CreateBooking: serialization retries exhausted: %v", err)
		return fmt.Errorf("%w: %w", ErrInternal, err)

	default:
		uc.logger.Error("CreateBooking: transaction error: %v", err)
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}
}
