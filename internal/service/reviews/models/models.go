package models

import (
	"time"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
)

// ReviewResponse отзыв
type ReviewResponse struct {
	ID        int64     `json:"id"`
	BookingID int64     `json:"bookingId"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ReviewListResponse отзывы бронирования
type ReviewListResponse struct {
	Reviews []ReviewResponse `json:"reviews"`
}

func FromDomainReview(r *domain.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:        r.ID,
		BookingID: r.BookingID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

func FromDomainReviewList(list []*domain.Review) *ReviewListResponse {
	resp := &ReviewListResponse{Reviews: make([]ReviewResponse, 0, len(list))}
	for _, r := range list {
		resp.Reviews = append(resp.Reviews, *FromDomainReview(r))
	}
	return resp
}
