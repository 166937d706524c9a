package domain

import "time"

// ProviderAvailability slots a provider offers on one weekday
// Unique per (ProviderID, Day)
type ProviderAvailability struct {
	ID         int64
	ProviderID int64
	Day        Weekday
	TimeSlots  TimeSlots
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Offers returns true if the slot is in the provider's set for this day
func (a *ProviderAvailability) Offers(timeSlot string) bool {
	return a.TimeSlots.Contains(timeSlot)
}
