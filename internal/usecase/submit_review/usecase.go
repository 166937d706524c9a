package submit_review

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/booking"
)

// UseCase use case для отзыва по завершенному бронированию
type UseCase struct {
	bookingRepo BookingRepository
	reviewRepo  ReviewRepository
	notifier    Notifier
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	reviewRepo ReviewRepository,
	notifier Notifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		reviewRepo:  reviewRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

// Execute сохраняет отзыв и уведомляет провайдера
// Отзывов на одно бронирование может быть несколько
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SubmitReview: booking=%d, rating=%d", req.BookingID, req.Rating)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SubmitReview: validation failed: %v", err)
		return nil, err
	}

	// 2. Бронирование существует и завершено
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("SubmitReview: booking id=%d not found", req.BookingID)
			return nil, domain.ErrBookingNotFound
		}
		uc.logger.Error("SubmitReview: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
	}

	if !booking.CanBeReviewed() {
		uc.logger.Warn("SubmitReview: booking id=%d has status %s", booking.ID, booking.Status)
		return nil, domain.ErrReviewNotAllowed
	}

	// 3. Сохраняем отзыв
	review, err := uc.reviewRepo.Create(ctx, &domain.Review{
		BookingID: booking.ID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		uc.logger.Error("SubmitReview: failed to create review for booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: failed to create review: %w", ErrInternal, err)
	}

	// 4. Уведомляем провайдера
	uc.notifier.Notify(ctx, booking.ProviderID,
		fmt.Sprintf("You received a %d★ rating for booking ID: %d", review.Rating, booking.ID))

	uc.logger.Info("SubmitReview: review id=%d created for booking id=%d", review.ID, booking.ID)

	return &Response{
		ID:        review.ID,
		BookingID: review.BookingID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	}, nil
}
