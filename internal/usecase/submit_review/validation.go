package submit_review

import (
	"fmt"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
)

// validateRequest валидирует входные данные запроса; оценка проверяется первой
func validateRequest(req *Request) error {
	if err := domain.ValidateRating(req.Rating); err != nil {
		return err
	}

	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingId must be positive", domain.ErrInvalidInput)
	}

	if req.Comment != nil && len(*req.Comment) > domain.MaxCommentLength {
		return fmt.Errorf("%w: comment exceeds %d characters", domain.ErrInvalidInput, domain.MaxCommentLength)
	}

	return nil
}
