package submit_review

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
)

const (
	msgInvalidBookingID   = "invalid booking id"
	msgInvalidRequestBody = "invalid request body"
)

type Handler struct {
	useCase SubmitReviewUseCase
	logger  Logger
}

func NewHandler(useCase SubmitReviewUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/reviews
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/reviews - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req SubmitReviewRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/reviews - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	review, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(bookingID))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRating):
			h.logger.Warn("POST /bookings/{id}/reviews - Invalid rating: booking_id=%d, rating=%d", bookingID, req.Rating)
		case errors.Is(err, domain.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/reviews - Booking not found: booking_id=%d", bookingID)
		case errors.Is(err, domain.ErrReviewNotAllowed):
			h.logger.Warn("POST /bookings/{id}/reviews - Booking not completed: booking_id=%d", bookingID)
		case handlers.StatusOf(err) == http.StatusInternalServerError:
			h.logger.Error("POST /bookings/{id}/reviews - Failed to submit review: booking_id=%d, error=%v", bookingID, err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("POST /bookings/{id}/reviews - Review created: review_id=%d, booking_id=%d", review.ID, bookingID)
	handlers.RespondJSON(w, http.StatusCreated, review)
}
