package submit_review

import (
	submitReview "github.com/m04kA/SMC-MarketplaceBooking/internal/usecase/submit_review"
)

// SubmitReviewRequest HTTP request model
type SubmitReviewRequest struct {
	Rating  int     `json:"rating"`
	Comment *string `json:"comment,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SubmitReviewRequest) ToUseCaseRequest(bookingID int64) *submitReview.Request {
	return &submitReview.Request{
		BookingID: bookingID,
		Rating:    r.Rating,
		Comment:   r.Comment,
	}
}
