package get_notifications

import (
	"net/http"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/api/middleware"
)

const msgInvalidUserID = "invalid user id"

type Handler struct {
	service NotificationService
	logger  Logger
}

func NewHandler(service NotificationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/users/{userId}/notifications
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, err := handlers.PathInt64(r, "userId")
	if err != nil {
		h.logger.Warn("GET /users/{userId}/notifications - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}
	requesterID, _ := middleware.GetUserID(r.Context())

	result, err := h.service.GetUserNotifications(r.Context(), userID, requesterID)
	if err != nil {
		if handlers.StatusOf(err) == http.StatusInternalServerError {
			h.logger.Error("GET /users/{userId}/notifications - Failed: user_id=%d, error=%v", userID, err)
		} else {
			h.logger.Warn("GET /users/{userId}/notifications - Rejected: user_id=%d, requester_id=%d", userID, requesterID)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
