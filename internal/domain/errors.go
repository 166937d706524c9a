package domain

import "errors"

// Виды ошибок ядра. Конкретные ошибки ниже разворачиваются в один из них,
// поэтому errors.Is работает и с конкретной ошибкой, и с её видом
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrValidation   = errors.New("validation failed")
	ErrForbidden    = errors.New("forbidden")
)

// Error ошибка с сообщением для клиента и видом
type Error struct {
	kind    error
	message string
}

func newError(kind error, message string) *Error {
	return &Error{kind: kind, message: message}
}

func (e *Error) Error() string { return e.message }

func (e *Error) Unwrap() error { return e.kind }

// Kind вид ошибки (ErrNotFound, ErrConflict, ...)
func (e *Error) Kind() error { return e.kind }

var (
	ErrBookingNotFound      = newError(ErrNotFound, "Booking not found")
	ErrAvailabilityNotSet   = newError(ErrNotFound, "Availability not set")
	ErrSlotNotFound         = newError(ErrNotFound, "Slot is not found")
	ErrProviderNotAvailable = newError(ErrNotFound, "Provider not available")
	ErrNotificationNotFound = newError(ErrNotFound, "Notification not found")

	ErrSlotAlreadyBooked    = newError(ErrConflict, "Time slot already booked")
	ErrSlotNotOffered       = newError(ErrConflict, "Selected slot not available")
	ErrSlotHasActiveBooking = newError(ErrConflict, "Cannot remove slot with active booking")

	ErrNotPending              = newError(ErrInvalidState, "Only pending bookings can be confirmed")
	ErrNotConfirmed            = newError(ErrInvalidState, "Only confirmed bookings can be completed")
	ErrCompletedNotCancellable = newError(ErrInvalidState, "Completed bookings cannot be cancelled")
	ErrAlreadyCancelled        = newError(ErrInvalidState, "Booking is already cancelled")
	ErrReviewNotAllowed        = newError(ErrInvalidState, "You can only review a completed booking")

	ErrInvalidRating    = newError(ErrValidation, "Rating must be between 1 and 5")
	ErrInvalidTimeSlots = newError(ErrValidation, "Invalid time slots")
	ErrInvalidInput     = newError(ErrValidation, "Invalid input")

	ErrNotParticipant = newError(ErrForbidden, "Only the booking's customer or provider can cancel it")
	ErrNotOwner       = newError(ErrForbidden, "Access denied")
	ErrNotProvider    = newError(ErrForbidden, "Only the booking's provider can change its status")
)

// Message сообщение первой доменной ошибки в цепочке, либо err.Error()
func Message(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.message
	}
	return err.Error()
}
