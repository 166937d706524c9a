package submit_review

import "time"

// Request модель запроса на отзыв по бронированию
type Request struct {
	BookingID int64   // ID бронирования
	Rating    int     // Оценка 1..5
	Comment   *string // Комментарий, опционально
}

// Response созданный отзыв
type Response struct {
	ID        int64     `json:"id"`
	BookingID int64     `json:"bookingId"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
