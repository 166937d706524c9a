package remove_slot

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
)

// AvailabilityRepository интерфейс репозитория расписаний
type AvailabilityRepository interface {
	GetByProviderAndDay(ctx context.Context, providerID int64, day domain.Weekday) (*domain.ProviderAvailability, error)
	UpdateSlots(ctx context.Context, id int64, slots domain.TimeSlots) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// ExistsActiveOnWeekdayFrom есть ли активное бронирование слота на любую дату с from, приходящуюся на isoDay
	ExistsActiveOnWeekdayFrom(ctx context.Context, providerID int64, isoDay int, timeSlot string, from time.Time) (bool, error)
}

// CacheInvalidator сброс кэша расписания (internal/service/availability)
type CacheInvalidator interface {
	Invalidate(ctx context.Context, providerID int64, day domain.Weekday)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
