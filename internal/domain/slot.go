package domain

// AvailableSlot represents an offered slot on a concrete date
type AvailableSlot struct {
	TimeSlot string
	Taken    bool // на эту дату уже есть активное бронирование
}

// IsFree returns true if the slot can still be booked
func (s *AvailableSlot) IsFree() bool {
	return !s.Taken
}
