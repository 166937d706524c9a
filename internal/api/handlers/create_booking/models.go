package create_booking

import (
	"time"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-MarketplaceBooking/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model; клиент берется из X-User-ID
type CreateBookingRequest struct {
	ProviderID  int64  `json:"providerId"`
	ListingID   int64  `json:"listingId"`
	BookingDate string `json:"bookingDate"` // "2024-06-03"
	TimeSlot    string `json:"timeSlot"`    // "10:00 AM"
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(customerID int64) (*createBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		CustomerID: customerID,
		ProviderID: r.ProviderID,
		ListingID:  r.ListingID,
		Date:       bookingDate,
		TimeSlot:   r.TimeSlot,
	}, nil
}
