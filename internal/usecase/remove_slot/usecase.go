package remove_slot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/availability"
)

// UseCase use case для удаления слота из расписания провайдера
type UseCase struct {
	availabilityRepo AvailabilityRepository
	bookingRepo      BookingRepository
	cache            CacheInvalidator
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availabilityRepo AvailabilityRepository,
	bookingRepo BookingRepository,
	cache CacheInvalidator,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		availabilityRepo: availabilityRepo,
		bookingRepo:      bookingRepo,
		cache:            cache,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute удаляет одно вхождение слота из расписания на день недели
// Слот нельзя удалить, пока на него есть активное бронирование на сегодня или позже
// в этот день недели. При любой ошибке расписание не меняется
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RemoveSlot: user=%d, provider=%d, day=%s, slot=%q", req.ActorID, req.ProviderID, req.Day, req.TimeSlot)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RemoveSlot: validation failed: %v", err)
		return nil, err
	}

	// 2. Менять расписание может только сам провайдер
	if req.ActorID != req.ProviderID {
		uc.logger.Warn("RemoveSlot: user=%d is not provider=%d", req.ActorID, req.ProviderID)
		return nil, domain.ErrNotOwner
	}

	day, err := domain.ParseWeekday(req.Day)
	if err != nil {
		uc.logger.Warn("RemoveSlot: invalid day %q", req.Day)
		return nil, err
	}

	today := startOfDay(uc.timeProvider.Now())

	var remaining domain.TimeSlots

	// 3. Чтение с блокировкой, проверки и запись в одной транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 3.1. Расписание на день (FOR UPDATE)
		availability, err := uc.availabilityRepo.GetByProviderAndDay(txCtx, req.ProviderID, day)
		if err != nil {
			if errors.Is(err, availabilityRepo.ErrAvailabilityNotFound) {
				return domain.ErrAvailabilityNotSet
			}
			return err
		}

		// 3.2. Нет активных бронирований этого слота в будущие такие же дни недели
		busy, err := uc.bookingRepo.ExistsActiveOnWeekdayFrom(txCtx, req.ProviderID, day.ISONumber(), req.TimeSlot, today)
		if err != nil {
			return err
		}
		if busy {
			return domain.ErrSlotHasActiveBooking
		}

		// 3.3. Слот есть в наборе
		updated, ok := availability.TimeSlots.Remove(req.TimeSlot)
		if !ok {
			return domain.ErrSlotNotFound
		}

		// 3.4. Сохраняем новый набор
		if err := uc.availabilityRepo.UpdateSlots(txCtx, availability.ID, updated); err != nil {
			return err
		}

		remaining = updated
		return nil
	})

	if err != nil {
		var de *domain.Error
		if errors.As(err, &de) {
			uc.logger.Warn("RemoveSlot: provider=%d, day=%s, slot=%q: %v", req.ProviderID, day, req.TimeSlot, err)
			return nil, err
		}
		uc.logger.Error("RemoveSlot: transaction error: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	// 4. Кэш сбрасываем после коммита
	uc.cache.Invalidate(ctx, req.ProviderID, day)

	uc.logger.Info("RemoveSlot: slot %q removed from provider=%d %s, %d left", req.TimeSlot, req.ProviderID, day, len(remaining))

	return &Response{
		ProviderID: req.ProviderID,
		Day:        day.String(),
		TimeSlots:  remaining,
	}, nil
}

// startOfDay полночь UTC календарного дня t
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
