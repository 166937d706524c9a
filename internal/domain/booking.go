package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCompleted BookingStatus = "COMPLETED"
	StatusCancelled BookingStatus = "CANCELLED"
)

// Valid reports whether s is one of the known statuses
func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal returns true for statuses no transition can leave
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Booking represents a customer's reservation of a provider's slot on a date
type Booking struct {
	ID          int64
	CustomerID  int64
	ProviderID  int64
	ListingID   int64
	BookingDate time.Time // только дата, время 00:00 UTC
	TimeSlot    string    // метка слота, например "09:00 AM"
	Status      BookingStatus

	CancelledBy        *int64
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// CanBeConfirmed returns true if the booking is waiting for the provider
func (b *Booking) CanBeConfirmed() bool {
	return b.Status == StatusPending
}

// CanBeCompleted returns true if the service can be marked as delivered
func (b *Booking) CanBeCompleted() bool {
	return b.Status == StatusConfirmed
}

// CanBeCancelled returns true if the booking is in a non-terminal state
func (b *Booking) CanBeCancelled() bool {
	return !b.Status.IsTerminal()
}

// CanBeReviewed returns true once the service has been delivered
func (b *Booking) CanBeReviewed() bool {
	return b.Status == StatusCompleted
}

// IsParticipant returns true if userID is the booking's customer or provider
func (b *Booking) IsParticipant(userID int64) bool {
	return userID == b.CustomerID || userID == b.ProviderID
}

// IsProvider returns true if userID is the provider serving the booking
func (b *Booking) IsProvider(userID int64) bool {
	return userID == b.ProviderID
}

// CounterpartyOf returns the other side of the booking for the given participant
func (b *Booking) CounterpartyOf(userID int64) int64 {
	if userID == b.ProviderID {
		return b.CustomerID
	}
	return b.ProviderID
}

// BookingsFilter фильтр списка бронирований клиента или провайдера
type BookingsFilter struct {
	CustomerID *int64
	ProviderID *int64
	Status     *BookingStatus // опционально
}
