package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/api/middleware"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
)

const (
	msgInvalidRequestBody   = "invalid request body"
	msgInvalidDate          = "invalid bookingDate, expected YYYY-MM-DD"
	msgSlotAlreadyBooked    = "Time slot already booked"
	msgSlotNotOffered       = "Selected slot not available"
	msgProviderNotAvailable = "Provider not available"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID, _ := middleware.GetUserID(r.Context())

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты)
	useCaseReq, err := req.ToUseCaseRequest(customerID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse bookingDate %q: %v", req.BookingDate, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSlotAlreadyBooked):
			h.logger.Warn("POST /bookings - Slot already booked: provider_id=%d, date=%s, slot=%q",
				req.ProviderID, req.BookingDate, req.TimeSlot)
			handlers.RespondError(w, http.StatusConflict, msgSlotAlreadyBooked)

		case errors.Is(err, domain.ErrSlotNotOffered):
			h.logger.Warn("POST /bookings - Slot not offered: provider_id=%d, date=%s, slot=%q",
				req.ProviderID, req.BookingDate, req.TimeSlot)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotOffered)

		case errors.Is(err, domain.ErrProviderNotAvailable):
			h.logger.Warn("POST /bookings - Provider not available: provider_id=%d, date=%s",
				req.ProviderID, req.BookingDate)
			handlers.RespondNotFound(w, msgProviderNotAvailable)

		case errors.Is(err, domain.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: customer_id=%d, reason=%v", customerID, err)
			handlers.RespondDomainError(w, err)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: customer_id=%d, provider_id=%d, error=%v",
				customerID, req.ProviderID, err)
			handlers.RespondDomainError(w, err)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, customer_id=%d, provider_id=%d",
		result.ID, customerID, req.ProviderID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
