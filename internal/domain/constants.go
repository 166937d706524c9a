package domain

// Business validation constants
const (
	MinRating                   = 1
	MaxRating                   = 5
	MaxTimeSlotLength           = 32
	MaxSlotsPerDay              = 96
	MaxCommentLength            = 2000
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// TimeSlotsDelimiter разделитель меток слотов в хранилище
const TimeSlotsDelimiter = ","
