package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
)

// UseCase use case для получения слотов провайдера на конкретную дату
type UseCase struct {
	availability AvailabilityReader
	slots        SlotChecker
	txManager    TransactionManager
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availability AvailabilityReader,
	slots SlotChecker,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		availability: availability,
		slots:        slots,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute возвращает слоты, предлагаемые в день недели даты, с отметкой занятости
// Если расписания на этот день нет, список пустой
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: provider=%d, date=%s", req.ProviderID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	date := dateOnly(req.Date)
	day := domain.WeekdayOf(date)

	resp := &Response{
		ProviderID: req.ProviderID,
		Date:       date.Format(domain.DateFormat),
		Day:        day.String(),
		Slots:      []Slot{},
	}

	// 2. Расписание на день недели
	availability, err := uc.availability.GetDay(ctx, req.ProviderID, day)
	if err != nil {
		if errors.Is(err, domain.ErrAvailabilityNotSet) {
			uc.logger.Info("GetAvailableSlots: provider=%d has no availability on %s", req.ProviderID, day)
			return resp, nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get availability: %v", err)
		return nil, fmt.Errorf("%w: failed to get availability: %w", ErrInternal, err)
	}

	// 3. Занятость каждого слота на дату, одним снимком
	slots := make([]domain.AvailableSlot, 0, len(availability.TimeSlots))
	err = uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		for _, label := range availability.TimeSlots {
			taken, err := uc.slots.IsSlotTaken(txCtx, req.ProviderID, date, label)
			if err != nil {
				return err
			}
			slots = append(slots, domain.AvailableSlot{TimeSlot: label, Taken: taken})
		}
		return nil
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to check bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to check bookings: %w", ErrInternal, err)
	}

	free := 0
	for i := range slots {
		if slots[i].IsFree() {
			free++
		}
		resp.Slots = append(resp.Slots, Slot{TimeSlot: slots[i].TimeSlot, Taken: slots[i].Taken})
	}

	uc.logger.Info("GetAvailableSlots: provider=%d, date=%s: %d slots, %d free",
		req.ProviderID, resp.Date, len(resp.Slots), free)

	return resp, nil
}
