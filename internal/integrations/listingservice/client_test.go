package listingservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MarketplaceBooking/pkg/logger"
)

func TestClient_GetListing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/internal/listings/3":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":3,"provider_id":5,"title":"Haircut","description":"Classic","price":25.5,"images":["a.png","b.png"]}`))
		case "/internal/listings/4":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusBadGateway)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, logger.NewNop())

	listing, err := client.GetListing(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Haircut", listing.Title)
	assert.Equal(t, int64(5), listing.ProviderID)
	assert.Equal(t, 25.5, listing.Price)
	assert.Equal(t, "a.png", listing.MainImage())

	_, err = client.GetListing(context.Background(), 4)
	assert.ErrorIs(t, err, ErrListingNotFound)

	_, err = client.GetListing(context.Background(), 9)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClient_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	client := NewClient(server.URL, 100*time.Millisecond, logger.NewNop())

	_, err := client.GetListing(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestListing_MainImage(t *testing.T) {
	assert.Empty(t, (&Listing{}).MainImage())
}
