package set_availability

import (
	"github.com/m04kA/SMC-MarketplaceBooking/internal/service/availability/models"
)

// SetAvailabilityRequest HTTP request model: полный новый набор слотов на день
type SetAvailabilityRequest struct {
	TimeSlots []string `json:"timeSlots"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *SetAvailabilityRequest) ToServiceRequest(actorID, providerID int64, day string) *models.SetAvailabilityRequest {
	return &models.SetAvailabilityRequest{
		ActorID:    actorID,
		ProviderID: providerID,
		Day:        day,
		TimeSlots:  r.TimeSlots,
	}
}
