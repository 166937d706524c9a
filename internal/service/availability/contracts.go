package availability

import (
	"context"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
)

// AvailabilityRepository интерфейс репозитория расписаний
type AvailabilityRepository interface {
	Upsert(ctx context.Context, availability *domain.ProviderAvailability) (*domain.ProviderAvailability, error)
	GetByProviderAndDay(ctx context.Context, providerID int64, day domain.Weekday) (*domain.ProviderAvailability, error)
	GetAllByProvider(ctx context.Context, providerID int64) ([]*domain.ProviderAvailability, error)
}

// Cache кэш расписания на день (internal/infra/cache/availability)
type Cache interface {
	Get(ctx context.Context, providerID int64, day domain.Weekday) (*domain.ProviderAvailability, error)
	Version(ctx context.Context, providerID int64, day domain.Weekday) (int64, error)
	Set(ctx context.Context, availability *domain.ProviderAvailability, version int64) error
	Invalidate(ctx context.Context, providerID int64, day domain.Weekday) error
}

// Metrics счетчики попаданий в кэш
type Metrics interface {
	CacheResult(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
