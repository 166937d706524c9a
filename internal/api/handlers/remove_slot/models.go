package remove_slot

// RemoveSlotRequest HTTP request model
type RemoveSlotRequest struct {
	TimeSlot string `json:"timeSlot"`
}
