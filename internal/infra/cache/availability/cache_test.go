package availability

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
)

func testAvailability() *domain.ProviderAvailability {
	ts := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	return &domain.ProviderAvailability{
		ID:         7,
		ProviderID: 5,
		Day:        domain.Monday,
		TimeSlots:  domain.TimeSlots{"10:00 AM", "09:00 AM"},
		CreatedAt:  ts,
		UpdatedAt:  ts,
	}
}

func payloadOf(t *testing.T, a *domain.ProviderAvailability) string {
	t.Helper()
	raw, err := json.Marshal(entry{
		ID:         a.ID,
		ProviderID: a.ProviderID,
		Day:        a.Day.String(),
		TimeSlots:  a.TimeSlots,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	})
	require.NoError(t, err)
	return string(raw)
}

func TestCache_Key(t *testing.T) {
	assert.Equal(t, "availability:5:MONDAY", Key(5, domain.Monday))
	assert.Equal(t, "availability:version:5:MONDAY", VersionKey(5, domain.Monday))
}

func TestCache_SetThenGet(t *testing.T) {
	ctx := context.Background()
	client, mock := redismock.NewClientMock()
	cache := NewCache(client, time.Minute)

	a := testAvailability()
	payload := payloadOf(t, a)

	mock.ExpectEval(setIfVersionScript,
		[]string{"availability:5:MONDAY", "availability:version:5:MONDAY"},
		int64(0), payload, int64(60000),
	).SetVal(int64(1))
	mock.ExpectGet("availability:5:MONDAY").SetVal(payload)

	require.NoError(t, cache.Set(ctx, a, 0))

	got, err := cache.Get(ctx, 5, domain.Monday)
	require.NoError(t, err)
	assert.Equal(t, a.TimeSlots, got.TimeSlots)
	assert.Equal(t, a.ID, got.ID)
	assert.Equal(t, domain.Monday, got.Day)
	assert.True(t, a.UpdatedAt.Equal(got.UpdatedAt))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCache_GetMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewCache(client, time.Minute)

	mock.ExpectGet("availability:5:FRIDAY").RedisNil()

	_, err := cache.Get(context.Background(), 5, domain.Friday)
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCache_GetErrors(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewCache(client, time.Minute)

	mock.ExpectGet("availability:5:MONDAY").SetErr(errors.New("connection refused"))
	mock.ExpectGet("availability:5:MONDAY").SetVal("{not json")

	_, err := cache.Get(context.Background(), 5, domain.Monday)
	assert.ErrorIs(t, err, ErrCacheRead)

	_, err = cache.Get(context.Background(), 5, domain.Monday)
	assert.ErrorIs(t, err, ErrCacheDecode)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCache_SetRejectedAfterInvalidate(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewCache(client, time.Minute)
	a := testAvailability()

	mock.ExpectEval(setIfVersionScript,
		[]string{"availability:5:MONDAY", "availability:version:5:MONDAY"},
		int64(3), payloadOf(t, a), int64(60000),
	).SetVal(int64(0))

	assert.ErrorIs(t, cache.Set(context.Background(), a, 3), ErrStaleVersion)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCache_Version(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewCache(client, time.Minute)

	mock.ExpectGet("availability:version:5:MONDAY").RedisNil()
	mock.ExpectGet("availability:version:5:MONDAY").SetVal("4")
	mock.ExpectGet("availability:version:5:MONDAY").SetErr(errors.New("connection refused"))

	v, err := cache.Version(context.Background(), 5, domain.Monday)
	require.NoError(t, err)
	assert.Zero(t, v)

	v, err = cache.Version(context.Background(), 5, domain.Monday)
	require.NoError(t, err)
	assert.Equal(t, int64(4), v)

	_, err = cache.Version(context.Background(), 5, domain.Monday)
	assert.ErrorIs(t, err, ErrCacheRead)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCache_InvalidateBumpsVersionBeforeDelete(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewCache(client, time.Minute)

	mock.ExpectIncr("availability:version:5:MONDAY").SetVal(1)
	mock.ExpectDel("availability:5:MONDAY").SetVal(1)
	mock.ExpectIncr("availability:version:5:MONDAY").SetVal(2)
	mock.ExpectDel("availability:5:MONDAY").SetErr(errors.New("timeout"))
	mock.ExpectIncr("availability:version:5:MONDAY").SetErr(errors.New("timeout"))

	assert.NoError(t, cache.Invalidate(context.Background(), 5, domain.Monday))
	assert.ErrorIs(t, cache.Invalidate(context.Background(), 5, domain.Monday), ErrCacheWrite)
	assert.ErrorIs(t, cache.Invalidate(context.Background(), 5, domain.Monday), ErrCacheWrite)
	assert.NoError(t, mock.ExpectationsWereMet())
}
