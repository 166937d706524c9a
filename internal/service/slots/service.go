package slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/availability"
)

// Service проверки слотов: занят ли слот на дату и предлагает ли его провайдер
// Читает напрямую из Postgres: внутри транзакции создания бронирования строки блокируются
type Service struct {
	bookingRepo      BookingRepository
	availabilityRepo AvailabilityRepository
}

func NewService(bookingRepo BookingRepository, availabilityRepo AvailabilityRepository) *Service {
	return &Service{
		bookingRepo:      bookingRepo,
		availabilityRepo: availabilityRepo,
	}
}

// IsSlotTaken есть ли активное бронирование (provider, date, slot)
func (s *Service) IsSlotTaken(ctx context.Context, providerID int64, date time.Time, timeSlot string) (bool, error) {
	taken, err := s.bookingRepo.ExistsActive(ctx, providerID, date, timeSlot)
	if err != nil {
		return false, fmt.Errorf("%w: IsSlotTaken: %w", ErrInternal, err)
	}
	return taken, nil
}

// IsSlotOffered входит ли слот в расписание провайдера на день недели
// Если расписания на этот день нет - domain.ErrProviderNotAvailable
func (s *Service) IsSlotOffered(ctx context.Context, providerID int64, day domain.Weekday, timeSlot string) (bool, error) {
	availability, err := s.availabilityRepo.GetByProviderAndDay(ctx, providerID, day)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrAvailabilityNotFound) {
			return false, domain.ErrProviderNotAvailable
		}
		return false, fmt.Errorf("%w: IsSlotOffered: %w", ErrInternal, err)
	}
	return availability.Offers(timeSlot), nil
}
