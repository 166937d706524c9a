package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID             int64   `json:"-"` // из заголовка X-User-ID
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// ListBookingsRequest запрос списка бронирований клиента или провайдера
type ListBookingsRequest struct {
	UserID int64
	Status *string
}

// Response модели

// BookingResponse бронирование с данными участников и объявления
// Поля участников и объявления заполняются при чтении и могут быть пустыми,
// если внешний сервис недоступен или не знает ID
type BookingResponse struct {
	ID int64 `json:"id"`

	CustomerID      int64  `json:"customerId"`
	CustomerName    string `json:"customerName,omitempty"`
	CustomerEmail   string `json:"customerEmail,omitempty"`
	CustomerAddress string `json:"customerAddress,omitempty"`
	CustomerPhone   string `json:"customerPhone,omitempty"`

	ProviderID      int64  `json:"providerId"`
	ProviderName    string `json:"providerName,omitempty"`
	ProviderEmail   string `json:"providerEmail,omitempty"`
	ProviderAddress string `json:"providerAddress,omitempty"`
	ProviderPhone   string `json:"providerPhone,omitempty"`

	ListingID          int64    `json:"listingId"`
	ServiceName        string   `json:"serviceName,omitempty"`
	ServiceDescription string   `json:"serviceDescription,omitempty"`
	Price              *float64 `json:"price,omitempty"`
	ServiceImage       string   `json:"serviceImage,omitempty"`

	BookingDate string `json:"bookingDate"` // "2024-06-03"
	TimeSlot    string `json:"timeSlot"`    // "10:00 AM"
	Status      string `json:"status"`

	CancelledBy        *int64  `json:"cancelledBy,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		CustomerID:         b.CustomerID,
		ProviderID:         b.ProviderID,
		ListingID:          b.ListingID,
		BookingDate:        b.BookingDate.Format(domain.DateFormat),
		TimeSlot:           b.TimeSlot,
		Status:             string(b.Status),
		CancelledBy:        b.CancelledBy,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
// Регистр не важен: "pending" и "PENDING" равнозначны
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(strings.ToUpper(strings.TrimSpace(status)))
	if !s.Valid() {
		return "", fmt.Errorf("%w: unknown booking status %q", domain.ErrInvalidInput, status)
	}
	return s, nil
}
