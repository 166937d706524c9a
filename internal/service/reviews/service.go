package reviews

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/service/reviews/models"
)

// Service чтение отзывов; создание отзыва - usecase submit_review
type Service struct {
	reviewRepo  ReviewRepository
	bookingRepo BookingRepository
	logger      Logger
}

func NewService(reviewRepo ReviewRepository, bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		reviewRepo:  reviewRepo,
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetReviewsByBooking отзывы бронирования, сначала новые
func (s *Service) GetReviewsByBooking(ctx context.Context, bookingID int64) (*models.ReviewListResponse, error) {
	if _, err := s.bookingRepo.GetByID(ctx, bookingID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, domain.ErrBookingNotFound
		}
		s.logger.Error("GetReviewsByBooking: booking repository error for id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: GetReviewsByBooking - booking repository error: %w", ErrInternal, err)
	}

	list, err := s.reviewRepo.GetByBookingID(ctx, bookingID)
	if err != nil {
		s.logger.Error("GetReviewsByBooking: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: GetReviewsByBooking - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainReviewList(list), nil
}
