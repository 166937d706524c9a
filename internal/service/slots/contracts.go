package slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
)

// BookingRepository проверка занятости слота
type BookingRepository interface {
	ExistsActive(ctx context.Context, providerID int64, date time.Time, timeSlot string) (bool, error)
}

// AvailabilityRepository чтение расписания провайдера
type AvailabilityRepository interface {
	GetByProviderAndDay(ctx context.Context, providerID int64, day domain.Weekday) (*domain.ProviderAvailability, error)
}
