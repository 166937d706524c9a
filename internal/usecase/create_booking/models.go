package create_booking

import (
	"time"
)

// Request модель запроса на создание бронирования
type Request struct {
	CustomerID int64     // ID клиента (X-User-ID)
	ProviderID int64     // ID провайдера
	ListingID  int64     // ID объявления
	Date       time.Time // Дата бронирования (без времени)
	TimeSlot   string    // Метка слота, например "10:00 AM"
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID          int64     `json:"id"`
	CustomerID  int64     `json:"customerId"`
	ProviderID  int64     `json:"providerId"`
	ListingID   int64     `json:"listingId"`
	BookingDate string    `json:"bookingDate"`
	TimeSlot    string    `json:"timeSlot"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
