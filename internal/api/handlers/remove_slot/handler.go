package remove_slot

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/api/middleware"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	removeSlot "github.com/m04kA/SMC-MarketplaceBooking/internal/usecase/remove_slot"
)

const (
	msgInvalidProviderID    = "invalid provider id"
	msgInvalidRequestBody   = "invalid request body"
	msgForbidden            = "Access denied"
	msgAvailabilityNotSet   = "Availability not set"
	msgSlotNotFound         = "Slot is not found"
	msgSlotHasActiveBooking = "Cannot remove slot with active booking"
)

type Handler struct {
	useCase RemoveSlotUseCase
	logger  Logger
}

func NewHandler(useCase RemoveSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/providers/{providerId}/availability/{day}/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID, err := handlers.PathInt64(r, "providerId")
	if err != nil {
		h.logger.Warn("DELETE /providers/{providerId}/availability/{day}/slots - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}
	userID, _ := middleware.GetUserID(r.Context())

	var req RemoveSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("DELETE /providers/{providerId}/availability/{day}/slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &removeSlot.Request{
		ActorID:    userID,
		ProviderID: providerID,
		Day:        mux.Vars(r)["day"],
		TimeSlot:   req.TimeSlot,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotOwner):
			h.logger.Warn("DELETE /providers/{providerId}/availability/{day}/slots - Access denied: provider_id=%d, user_id=%d",
				providerID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, domain.ErrAvailabilityNotSet):
			h.logger.Warn("DELETE /providers/{providerId}/availability/{day}/slots - Availability not set: provider_id=%d",
				providerID)
			handlers.RespondNotFound(w, msgAvailabilityNotSet)

		case errors.Is(err, domain.ErrSlotNotFound):
			h.logger.Warn("DELETE /providers/{providerId}/availability/{day}/slots - Slot not found: provider_id=%d, slot=%q",
				providerID, req.TimeSlot)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, domain.ErrSlotHasActiveBooking):
			h.logger.Warn("DELETE /providers/{providerId}/availability/{day}/slots - Slot has active booking: provider_id=%d, slot=%q",
				providerID, req.TimeSlot)
			handlers.RespondError(w, http.StatusConflict, msgSlotHasActiveBooking)

		case errors.Is(err, domain.ErrInvalidInput):
			h.logger.Warn("DELETE /providers/{providerId}/availability/{day}/slots - Invalid input: %v", err)
			handlers.RespondDomainError(w, err)

		default:
			h.logger.Error("DELETE /providers/{providerId}/availability/{day}/slots - Failed: provider_id=%d, error=%v",
				providerID, err)
			handlers.RespondDomainError(w, err)
		}
		return
	}

	h.logger.Info("DELETE /providers/{providerId}/availability/{day}/slots - Slot removed: provider_id=%d, day=%s, slot=%q",
		providerID, result.Day, req.TimeSlot)
	handlers.RespondJSON(w, http.StatusOK, result)
}
