package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerId must be positive", domain.ErrInvalidInput)
	}

	if req.ProviderID <= 0 {
		return fmt.Errorf("%w: providerId must be positive", domain.ErrInvalidInput)
	}

	if req.ListingID <= 0 {
		return fmt.Errorf("%w: listingId must be positive", domain.ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: bookingDate is required", domain.ErrInvalidInput)
	}

	if strings.TrimSpace(req.TimeSlot) == "" {
		return fmt.Errorf("%w: timeSlot is required", domain.ErrInvalidInput)
	}

	return nil
}

// dateOnly обнуляет время: бронирование хранит только календарную дату
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
