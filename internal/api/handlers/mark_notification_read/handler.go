package mark_notification_read

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/api/middleware"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
)

const (
	msgInvalidNotificationID = "invalid notification id"
	msgNotFound              = "Notification not found"
	msgForbidden             = "Access denied"
)

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

// Handle PATCH /api/v1/notifications/{notificationId}/read
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	notificationID, err := handlers.PathInt64(r, "notificationId")
	if err != nil {
		h.logger.Warn("PATCH /notifications/{id}/read - Invalid notification ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidNotificationID)
		return
	}
	userID, _ := middleware.GetUserID(r.Context())

	if err := h.service.MarkAsRead(r.Context(), notificationID, userID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotificationNotFound):
			h.logger.Warn("PATCH /notifications/{id}/read - Notification not found: notification_id=%d", notificationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrNotOwner):
			h.logger.Warn("PATCH /notifications/{id}/read - Access denied: notification_id=%d, user_id=%d",
				notificationID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PATCH /notifications/{id}/read - Failed: notification_id=%d, error=%v", notificationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
