package remove_slot

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/api/middleware"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	removeSlot "github.com/m04kA/SMC-MarketplaceBooking/internal/usecase/remove_slot"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/logger"
)

type stubUseCase struct {
	err  error
	last *removeSlot.Request
}

func (s *stubUseCase) Execute(_ context.Context, req *removeSlot.Request) (*removeSlot.Response, error) {
	s.last = req
	if s.err != nil {
		return nil, s.err
	}
	return &removeSlot.Response{ProviderID: req.ProviderID, Day: req.Day, TimeSlots: []string{"10:00 AM"}}, nil
}

func serve(uc RemoveSlotUseCase, providerID string, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/providers/{providerId}/availability/{day}/slots", NewHandler(uc, logger.NewNop()).Handle).
		Methods(http.MethodDelete)

	req := httptest.NewRequest(http.MethodDelete,
		fmt.Sprintf("/providers/%s/availability/MONDAY/slots", providerID), strings.NewReader(body))
	req = req.WithContext(middleware.WithUserID(req.Context(), 5))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	uc := &stubUseCase{}

	rec := serve(uc, "5", `{"timeSlot":"09:00 AM"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.last)
	assert.Equal(t, int64(5), uc.last.ActorID)
	assert.Equal(t, "MONDAY", uc.last.Day)
	assert.Equal(t, "09:00 AM", uc.last.TimeSlot)

	var body removeSlot.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"10:00 AM"}, body.TimeSlots)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		provider string
		body     string
		status   int
		message  string
	}{
		{"bad provider id", nil, "abc", `{"timeSlot":"09:00 AM"}`, http.StatusBadRequest, msgInvalidProviderID},
		{"malformed body", nil, "5", `{"timeSlot":`, http.StatusBadRequest, msgInvalidRequestBody},
		{"not owner", domain.ErrNotOwner, "6", `{"timeSlot":"09:00 AM"}`, http.StatusForbidden, "Access denied"},
		{"no availability", domain.ErrAvailabilityNotSet, "5", `{"timeSlot":"09:00 AM"}`, http.StatusNotFound, "Availability not set"},
		{"slot missing", domain.ErrSlotNotFound, "5", `{"timeSlot":"09:00 AM"}`, http.StatusNotFound, "Slot is not found"},
		{"active booking", domain.ErrSlotHasActiveBooking, "5", `{"timeSlot":"09:00 AM"}`, http.StatusConflict, "Cannot remove slot with active booking"},
		{"storage failure", assert.AnError, "5", `{"timeSlot":"09:00 AM"}`, http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&stubUseCase{err: tt.err}, tt.provider, tt.body)

			assert.Equal(t, tt.status, rec.Code)
			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.message, body.Message)
		})
	}
}
