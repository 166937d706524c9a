package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/logger"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/metrics"
)

func echoUserID(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		w.WriteHeader(http.StatusTeapot)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, map[string]int64{"userId": userID})
}

func TestAuth(t *testing.T) {
	tests := []struct {
		name   string
		header string
		status int
	}{
		{"valid", "42", http.StatusOK},
		{"missing", "", http.StatusUnauthorized},
		{"not a number", "abc", http.StatusUnauthorized},
		{"zero", "0", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(UserIDHeader, tt.header)
			}
			rec := httptest.NewRecorder()

			Auth(http.HandlerFunc(echoUserID)).ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				var body map[string]int64
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, int64(42), body["userId"])
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	_, err := uuid.Parse(seen)
	require.NoError(t, err)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	given := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, given)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, given, seen)
}

func TestRateLimiter_PerUser(t *testing.T) {
	limiter := NewRateLimiter(1, 2)
	h := Auth(limiter.Middleware(http.HandlerFunc(echoUserID)))

	call := func(userID string) int {
		req := httptest.NewRequest(http.MethodPost, "/bookings", nil)
		req.Header.Set(UserIDHeader, userID)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, call("1"))
	assert.Equal(t, http.StatusOK, call("1"))
	assert.Equal(t, http.StatusTooManyRequests, call("1"))
	assert.Equal(t, http.StatusOK, call("2"))
}

func TestRateLimiter_EvictsIdleKeys(t *testing.T) {
	limiter := NewRateLimiter(60, 2)
	now := time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }
	h := Auth(limiter.Middleware(http.HandlerFunc(echoUserID)))

	call := func(userID string) int {
		req := httptest.NewRequest(http.MethodPost, "/bookings", nil)
		req.Header.Set(UserIDHeader, userID)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	for i := 1; i <= 100; i++ {
		assert.Equal(t, http.StatusOK, call(strconv.Itoa(i)))
	}
	assert.Equal(t, 100, limiter.Len())

	now = now.Add(5 * time.Minute)
	assert.Equal(t, http.StatusOK, call("7"))

	now = now.Add(6 * time.Minute)
	assert.Equal(t, http.StatusOK, call("100"))

	// Остались только ключи, обращавшиеся за последние idleTTL
	assert.Equal(t, 2, limiter.Len())
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := metrics.NewWithRegistry("test", prometheus.NewRegistry())

	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/bookings/{bookingId}", func(w http.ResponseWriter, r *http.Request) {
		handlers.RespondNotFound(w, "Booking not found")
	}).Methods(http.MethodGet)

	for _, path := range []string{"/bookings/1", "/bookings/2"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/bookings/{bookingId}", "404")))
}

func TestLogging_PassesThrough(t *testing.T) {
	h := RequestID(Logging(logger.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	assert.Equal(t, http.StatusCreated, rec.Code)
}
