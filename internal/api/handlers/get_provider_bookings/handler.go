package get_provider_bookings

import (
	"net/http"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/service/bookings/models"
)

const (
	msgInvalidProviderID = "invalid provider id"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers/{providerId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID, err := handlers.PathInt64(r, "providerId")
	if err != nil {
		h.logger.Warn("GET /providers/{providerId}/bookings - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	// Получаем status из query параметров (опционально)
	var status *string
	if s := r.URL.Query().Get("status"); s != "" {
		status = &s
	}

	result, err := h.service.ListByProvider(r.Context(), &models.ListBookingsRequest{
		UserID: providerID,
		Status: status,
	})
	if err != nil {
		if handlers.StatusOf(err) == http.StatusInternalServerError {
			h.logger.Error("GET /providers/{providerId}/bookings - Failed to get bookings: provider_id=%d, error=%v", providerID, err)
		} else {
			h.logger.Warn("GET /providers/{providerId}/bookings - Rejected: provider_id=%d, reason=%v", providerID, err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("GET /providers/{providerId}/bookings - Bookings retrieved successfully: provider_id=%d, count=%d",
		providerID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
