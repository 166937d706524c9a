package reviews

import (
	"context"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
)

type ReviewRepository interface {
	GetByBookingID(ctx context.Context, bookingID int64) ([]*domain.Review, error)
}

type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
