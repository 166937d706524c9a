package set_availability

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/api/middleware"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
)

const (
	msgInvalidProviderID  = "invalid provider id"
	msgInvalidRequestBody = "invalid request body"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/providers/{providerId}/availability/{day}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID, err := handlers.PathInt64(r, "providerId")
	if err != nil {
		h.logger.Warn("PUT /providers/{providerId}/availability/{day} - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}
	day := mux.Vars(r)["day"]
	userID, _ := middleware.GetUserID(r.Context())

	var req SetAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /providers/{providerId}/availability/{day} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	availability, err := h.service.SetAvailability(r.Context(), req.ToServiceRequest(userID, providerID, day))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			h.logger.Warn("PUT /providers/{providerId}/availability/{day} - Access denied: provider_id=%d, user_id=%d",
				providerID, userID)
		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("PUT /providers/{providerId}/availability/{day} - Invalid input: %v", err)
		default:
			h.logger.Error("PUT /providers/{providerId}/availability/{day} - Failed to save: provider_id=%d, error=%v",
				providerID, err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("PUT /providers/{providerId}/availability/{day} - Availability saved: provider_id=%d, day=%s, slots=%d",
		providerID, availability.Day, len(availability.TimeSlots))
	handlers.RespondJSON(w, http.StatusOK, availability)
}
