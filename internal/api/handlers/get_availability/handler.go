package get_availability

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers"
)

const (
	msgInvalidProviderID = "invalid provider id"
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

// Handle GET /api/v1/providers/{providerId}/availability/{day}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID, err := handlers.PathInt64(r, "providerId")
	if err != nil {
		h.logger.Warn("GET /providers/{providerId}/availability/{day} - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}
	day := mux.Vars(r)["day"]

	availability, err := h.service.GetAvailability(r.Context(), providerID, day)
	if err != nil {
		if handlers.StatusOf(err) == http.StatusInternalServerError {
			h.logger.Error("GET /providers/{providerId}/availability/{day} - Failed: provider_id=%d, day=%s, error=%v",
				providerID, day, err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, availability)
}
