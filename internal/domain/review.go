package domain

import (
	"fmt"
	"time"
)

// Review оценка клиента по завершенному бронированию
type Review struct {
	ID        int64
	BookingID int64
	Rating    int
	Comment   *string
	CreatedAt time.Time
}

// ValidateRating проверяет, что оценка в диапазоне 1..5
func ValidateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return fmt.Errorf("%w: got %d", ErrInvalidRating, rating)
	}
	return nil
}

// Notification сообщение пользователю в ленте уведомлений
type Notification struct {
	ID        int64
	UserID    int64
	Message   string
	IsRead    bool
	CreatedAt time.Time
}
