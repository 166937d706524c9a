package get_available_slots

import (
	"time"
)

// Request модель запроса на получение слотов провайдера на дату
type Request struct {
	ProviderID int64     // ID провайдера
	Date       time.Time // Дата (без времени)
}

// Response модель ответа со слотами на дату
type Response struct {
	ProviderID int64  `json:"providerId"`
	Date       string `json:"date"`
	Day        string `json:"day"`
	Slots      []Slot `json:"slots"`
}

// Slot предлагаемый слот и его занятость на дату
type Slot struct {
	TimeSlot string `json:"timeSlot"`
	Taken    bool   `json:"taken"`
}
