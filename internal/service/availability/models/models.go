package models

import (
	"time"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
)

// SetAvailabilityRequest замена набора слотов провайдера на день недели
type SetAvailabilityRequest struct {
	ActorID    int64    `json:"-"`
	ProviderID int64    `json:"-"`
	Day        string   `json:"-"`
	TimeSlots  []string `json:"timeSlots"`
}

// AvailabilityResponse слоты провайдера на день недели
type AvailabilityResponse struct {
	ProviderID int64     `json:"providerId"`
	Day        string    `json:"day"`
	TimeSlots  []string  `json:"timeSlots"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ProviderScheduleResponse недельное расписание провайдера
type ProviderScheduleResponse struct {
	ProviderID int64                  `json:"providerId"`
	Days       []AvailabilityResponse `json:"days"`
}

func FromDomainAvailability(a *domain.ProviderAvailability) *AvailabilityResponse {
	slots := make([]string, len(a.TimeSlots))
	copy(slots, a.TimeSlots)

	return &AvailabilityResponse{
		ProviderID: a.ProviderID,
		Day:        a.Day.String(),
		TimeSlots:  slots,
		UpdatedAt:  a.UpdatedAt,
	}
}

func FromDomainSchedule(providerID int64, list []*domain.ProviderAvailability) *ProviderScheduleResponse {
	resp := &ProviderScheduleResponse{
		ProviderID: providerID,
		Days:       make([]AvailabilityResponse, 0, len(list)),
	}
	for _, a := range list {
		resp.Days = append(resp.Days, *FromDomainAvailability(a))
	}
	return resp
}
