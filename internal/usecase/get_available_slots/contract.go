package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
)

// AvailabilityReader расписание провайдера на день недели через кэш (internal/service/availability)
type AvailabilityReader interface {
	GetDay(ctx context.Context, providerID int64, day domain.Weekday) (*domain.ProviderAvailability, error)
}

// SlotChecker проверка занятости слота на дату (internal/service/slots)
type SlotChecker interface {
	IsSlotTaken(ctx context.Context, providerID int64, date time.Time, timeSlot string) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
