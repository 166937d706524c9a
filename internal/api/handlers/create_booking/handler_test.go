package create_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/api/middleware"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-MarketplaceBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/logger"
)

type stubUseCase struct {
	got  *createBooking.Request
	resp *createBooking.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	s.got = req
	return s.resp, s.err
}

func serve(uc CreateBookingUseCase, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	req = req.WithContext(middleware.WithUserID(req.Context(), 7))
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := &stubUseCase{resp: &createBooking.Response{ID: 1, Status: "PENDING", BookingDate: "2024-06-03", TimeSlot: "10:00 AM"}}

	rec := serve(uc, `{"providerId":5,"listingId":42,"bookingDate":"2024-06-03","timeSlot":"10:00 AM"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(7), uc.got.CustomerID)
	assert.Equal(t, int64(5), uc.got.ProviderID)
	assert.Equal(t, time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), uc.got.Date)

	var body createBooking.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "PENDING", body.Status)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		err     error
		status  int
		message string
	}{
		{"malformed body", `{"providerId":`, nil, http.StatusBadRequest, msgInvalidRequestBody},
		{"bad date", `{"providerId":5,"listingId":1,"bookingDate":"03.06.2024","timeSlot":"10:00 AM"}`, nil, http.StatusBadRequest, msgInvalidDate},
		{"slot taken", `{"providerId":5,"listingId":1,"bookingDate":"2024-06-03","timeSlot":"10:00 AM"}`, domain.ErrSlotAlreadyBooked, http.StatusConflict, "Time slot already booked"},
		{"not offered", `{"providerId":5,"listingId":1,"bookingDate":"2024-06-03","timeSlot":"10:00 AM"}`, domain.ErrSlotNotOffered, http.StatusConflict, "Selected slot not available"},
		{"no availability", `{"providerId":5,"listingId":1,"bookingDate":"2024-06-03","timeSlot":"10:00 AM"}`, domain.ErrProviderNotAvailable, http.StatusNotFound, "Provider not available"},
		{"internal", `{"providerId":5,"listingId":1,"bookingDate":"2024-06-03","timeSlot":"10:00 AM"}`, createBooking.ErrInternal, http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&stubUseCase{err: tt.err}, tt.body)

			assert.Equal(t, tt.status, rec.Code)
			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.message, body.Message)
		})
	}
}
