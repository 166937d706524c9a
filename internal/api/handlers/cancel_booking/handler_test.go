package cancel_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/api/middleware"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/logger"
)

type stubService struct {
	id  int64
	got *models.CancelBookingRequest
	err error
}

func (s *stubService) Cancel(_ context.Context, id int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.id, s.got = id, req
	if s.err != nil {
		return nil, s.err
	}
	return &models.BookingResponse{ID: id, Status: "CANCELLED"}, nil
}

func serve(svc BookingService, bookingID, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/bookings/{bookingId}/cancel", NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, "/bookings/"+bookingID+"/cancel", strings.NewReader(body))
	req = req.WithContext(middleware.WithUserID(req.Context(), 1))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_CancelWithReason(t *testing.T) {
	svc := &stubService{}

	rec := serve(svc, "10", `{"cancellationReason":"changed plans"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(10), svc.id)
	assert.Equal(t, int64(1), svc.got.UserID)
	require.NotNil(t, svc.got.CancellationReason)
	assert.Equal(t, "changed plans", *svc.got.CancellationReason)
}

func TestHandle_CancelWithoutBody(t *testing.T) {
	svc := &stubService{}

	rec := serve(svc, "10", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, svc.got.CancellationReason)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		err    error
		status int
	}{
		{"bad id", "abc", nil, http.StatusBadRequest},
		{"not found", "10", domain.ErrBookingNotFound, http.StatusNotFound},
		{"stranger", "10", domain.ErrNotParticipant, http.StatusForbidden},
		{"completed", "10", domain.ErrCompletedNotCancellable, http.StatusUnprocessableEntity},
		{"already cancelled", "10", domain.ErrAlreadyCancelled, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&stubService{err: tt.err}, tt.id, "")
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
