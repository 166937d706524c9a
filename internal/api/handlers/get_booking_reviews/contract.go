package get_booking_reviews

import (
	"context"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/service/reviews/models"
)

type ReviewService interface {
	GetReviewsByBooking(ctx context.Context, bookingID int64) (*models.ReviewListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
