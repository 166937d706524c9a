package submit_review

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/logger"
)

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if b, ok := args.Get(0).(*domain.Booking); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockReviewRepo struct {
	mock.Mock
}

func (m *mockReviewRepo) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	args := m.Called(ctx, review)
	if r, ok := args.Get(0).(*domain.Review); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

type sent struct {
	userID  int64
	message string
}

type recordingNotifier struct {
	sent []sent
}

func (n *recordingNotifier) Notify(_ context.Context, userID int64, message string) {
	n.sent = append(n.sent, sent{userID: userID, message: message})
}

func booking(status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{ID: 10, CustomerID: 1, ProviderID: 5, Status: status}
}

func TestExecute_CompletedBooking(t *testing.T) {
	bookings := &mockBookingRepo{}
	reviews := &mockReviewRepo{}
	notifier := &recordingNotifier{}
	comment := "great"
	createdAt := time.Date(2024, 6, 4, 10, 0, 0, 0, time.UTC)

	bookings.On("GetByID", mock.Anything, int64(10)).Return(booking(domain.StatusCompleted), nil)
	reviews.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.Review) bool {
		return r.BookingID == 10 && r.Rating == 4 && r.Comment == &comment
	})).Return(&domain.Review{ID: 7, BookingID: 10, Rating: 4, Comment: &comment, CreatedAt: createdAt}, nil)

	uc := NewUseCase(bookings, reviews, notifier, logger.NewNop())
	resp, err := uc.Execute(context.Background(), &Request{BookingID: 10, Rating: 4, Comment: &comment})

	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, createdAt, resp.CreatedAt)
	assert.Equal(t, []sent{{userID: 5, message: "You received a 4★ rating for booking ID: 10"}}, notifier.sent)
	bookings.AssertExpectations(t)
	reviews.AssertExpectations(t)
}

func TestExecute_NotCompleted(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusPending, domain.StatusConfirmed, domain.StatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			bookings := &mockBookingRepo{}
			reviews := &mockReviewRepo{}
			notifier := &recordingNotifier{}
			bookings.On("GetByID", mock.Anything, int64(10)).Return(booking(status), nil)

			_, err := NewUseCase(bookings, reviews, notifier, logger.NewNop()).
				Execute(context.Background(), &Request{BookingID: 10, Rating: 5})

			assert.ErrorIs(t, err, domain.ErrReviewNotAllowed)
			assert.ErrorIs(t, err, domain.ErrInvalidState)
			assert.Equal(t, "You can only review a completed booking", domain.Message(err))
			reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			assert.Empty(t, notifier.sent)
		})
	}
}

func TestExecute_RatingCheckedFirst(t *testing.T) {
	for _, rating := range []int{0, 6, -1} {
		bookings := &mockBookingRepo{}

		_, err := NewUseCase(bookings, &mockReviewRepo{}, &recordingNotifier{}, logger.NewNop()).
			Execute(context.Background(), &Request{BookingID: 10, Rating: rating})

		assert.ErrorIs(t, err, domain.ErrInvalidRating)
		assert.ErrorIs(t, err, domain.ErrValidation)
		bookings.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	}
}

func TestExecute_BookingNotFound(t *testing.T) {
	bookings := &mockBookingRepo{}
	bookings.On("GetByID", mock.Anything, int64(99)).Return(nil, bookingRepo.ErrBookingNotFound)

	_, err := NewUseCase(bookings, &mockReviewRepo{}, &recordingNotifier{}, logger.NewNop()).
		Execute(context.Background(), &Request{BookingID: 99, Rating: 3})

	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
}

func TestExecute_StorageFailure(t *testing.T) {
	bookings := &mockBookingRepo{}
	reviews := &mockReviewRepo{}
	notifier := &recordingNotifier{}
	bookings.On("GetByID", mock.Anything, int64(10)).Return(booking(domain.StatusCompleted), nil)
	reviews.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("insert failed"))

	_, err := NewUseCase(bookings, reviews, notifier, logger.NewNop()).
		Execute(context.Background(), &Request{BookingID: 10, Rating: 3})

	assert.ErrorIs(t, err, ErrInternal)
	assert.Empty(t, notifier.sent)
}
