package availability

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	availabilityCache "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/cache/availability"
	availabilityRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/availability"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/service/availability/models"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/logger"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/metrics"
)

type key struct {
	provider int64
	day      domain.Weekday
}

type memRepo struct {
	rows  map[key]*domain.ProviderAvailability
	reads int
}

func newMemRepo() *memRepo {
	return &memRepo{rows: make(map[key]*domain.ProviderAvailability)}
}

func (r *memRepo) Upsert(_ context.Context, a *domain.ProviderAvailability) (*domain.ProviderAvailability, error) {
	k := key{a.ProviderID, a.Day}
	if existing, ok := r.rows[k]; ok {
		a.ID = existing.ID
	} else {
		a.ID = int64(len(r.rows) + 1)
	}
	stored := *a
	stored.TimeSlots = append(domain.TimeSlots{}, a.TimeSlots...)
	r.rows[k] = &stored
	return a, nil
}

func (r *memRepo) GetByProviderAndDay(_ context.Context, providerID int64, day domain.Weekday) (*domain.ProviderAvailability, error) {
	r.reads++
	a, ok := r.rows[key{providerID, day}]
	if !ok {
		return nil, availabilityRepo.ErrAvailabilityNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *memRepo) GetAllByProvider(_ context.Context, providerID int64) ([]*domain.ProviderAvailability, error) {
	out := make([]*domain.ProviderAvailability, 0)
	for _, d := range domain.Weekdays {
		if a, ok := r.rows[key{providerID, d}]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

type memCache struct {
	items       map[key]*domain.ProviderAvailability
	versions    map[key]int64
	getErr      error
	invalidated []key
	skipped     int
}

func newMemCache() *memCache {
	return &memCache{
		items:    make(map[key]*domain.ProviderAvailability),
		versions: make(map[key]int64),
	}
}

func (c *memCache) Get(_ context.Context, providerID int64, day domain.Weekday) (*domain.ProviderAvailability, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	a, ok := c.items[key{providerID, day}]
	if !ok {
		return nil, availabilityCache.ErrCacheMiss
	}
	return a, nil
}

func (c *memCache) Version(_ context.Context, providerID int64, day domain.Weekday) (int64, error) {
	return c.versions[key{providerID, day}], nil
}

func (c *memCache) Set(_ context.Context, a *domain.ProviderAvailability, version int64) error {
	k := key{a.ProviderID, a.Day}
	if c.versions[k] != version {
		c.skipped++
		return availabilityCache.ErrStaleVersion
	}
	c.items[k] = a
	return nil
}

func (c *memCache) Invalidate(_ context.Context, providerID int64, day domain.Weekday) error {
	k := key{providerID, day}
	c.invalidated = append(c.invalidated, k)
	c.versions[k]++
	delete(c.items, k)
	return nil
}

// interleavingRepo выполняет afterRead один раз сразу после чтения строки,
// до того как читатель успеет положить ее в кэш
type interleavingRepo struct {
	*memRepo
	afterRead func()
}

func (r *interleavingRepo) GetByProviderAndDay(ctx context.Context, providerID int64, day domain.Weekday) (*domain.ProviderAvailability, error) {
	a, err := r.memRepo.GetByProviderAndDay(ctx, providerID, day)
	if hook := r.afterRead; hook != nil {
		r.afterRead = nil
		hook()
	}
	return a, err
}

func newTestService(repo AvailabilityRepository, cache Cache) (*Service, *metrics.Metrics) {
	m := metrics.NewWithRegistry("test", prometheus.NewRegistry())
	return NewService(repo, cache, m, logger.NewNop()), m
}

func TestSetAvailability_ThenGetIsStable(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(newMemRepo(), nil)

	_, err := svc.SetAvailability(ctx, &models.SetAvailabilityRequest{
		ActorID: 5, ProviderID: 5, Day: "monday", TimeSlots: []string{"10:00 AM", "09:00 AM"},
	})
	require.NoError(t, err)

	first, err := svc.GetAvailability(ctx, 5, "MONDAY")
	require.NoError(t, err)
	second, err := svc.GetAvailability(ctx, 5, "Monday")
	require.NoError(t, err)

	assert.Equal(t, []string{"10:00 AM", "09:00 AM"}, first.TimeSlots)
	assert.Equal(t, first.TimeSlots, second.TimeSlots)
	assert.Equal(t, "MONDAY", first.Day)
}

func TestSetAvailability_ReplacesWholesale(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	svc, _ := newTestService(repo, nil)

	for _, slots := range [][]string{{"09:00 AM", "10:00 AM"}, {"01:00 PM"}} {
		_, err := svc.SetAvailability(ctx, &models.SetAvailabilityRequest{ActorID: 5, ProviderID: 5, Day: "FRIDAY", TimeSlots: slots})
		require.NoError(t, err)
	}

	got, err := svc.GetAvailability(ctx, 5, "FRIDAY")
	require.NoError(t, err)
	assert.Equal(t, []string{"01:00 PM"}, got.TimeSlots)
	assert.Len(t, repo.rows, 1)
}

func TestSetAvailability_Rejects(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(newMemRepo(), nil)

	cases := []struct {
		name string
		req  models.SetAvailabilityRequest
		want error
	}{
		{"other user", models.SetAvailabilityRequest{ActorID: 6, ProviderID: 5, Day: "MONDAY"}, domain.ErrForbidden},
		{"bad day", models.SetAvailabilityRequest{ActorID: 5, ProviderID: 5, Day: "FUNDAY"}, domain.ErrValidation},
		{"delimiter in label", models.SetAvailabilityRequest{ActorID: 5, ProviderID: 5, Day: "MONDAY", TimeSlots: []string{"9,10"}}, domain.ErrInvalidTimeSlots},
		{"duplicates", models.SetAvailabilityRequest{ActorID: 5, ProviderID: 5, Day: "MONDAY", TimeSlots: []string{"9", "9"}}, domain.ErrInvalidTimeSlots},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := c.req
			_, err := svc.SetAvailability(ctx, &req)
			assert.ErrorIs(t, err, c.want)
		})
	}
}

func TestSetAvailability_EmptySetIsAllowed(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(newMemRepo(), nil)

	_, err := svc.SetAvailability(ctx, &models.SetAvailabilityRequest{ActorID: 5, ProviderID: 5, Day: "SUNDAY"})
	require.NoError(t, err)

	got, err := svc.GetAvailability(ctx, 5, "SUNDAY")
	require.NoError(t, err)
	assert.Empty(t, got.TimeSlots)
}

func TestGetAvailability_NotSet(t *testing.T) {
	svc, _ := newTestService(newMemRepo(), nil)

	_, err := svc.GetAvailability(context.Background(), 5, "TUESDAY")

	assert.ErrorIs(t, err, domain.ErrAvailabilityNotSet)
	assert.Equal(t, "Availability not set", domain.Message(err))
}

func TestGetAvailability_ReadThroughCache(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	cache := newMemCache()
	svc, m := newTestService(repo, cache)

	_, err := svc.SetAvailability(ctx, &models.SetAvailabilityRequest{ActorID: 5, ProviderID: 5, Day: "MONDAY", TimeSlots: []string{"09:00 AM"}})
	require.NoError(t, err)
	assert.Equal(t, []key{{5, domain.Monday}}, cache.invalidated)

	_, err = svc.GetAvailability(ctx, 5, "MONDAY")
	require.NoError(t, err)
	_, err = svc.GetAvailability(ctx, 5, "MONDAY")
	require.NoError(t, err)

	assert.Equal(t, 1, repo.reads)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheRequests.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheRequests.WithLabelValues("hit")))
}

func TestGetAvailability_CacheFailureFallsBack(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	cache := newMemCache()
	svc, m := newTestService(repo, cache)

	_, err := svc.SetAvailability(ctx, &models.SetAvailabilityRequest{ActorID: 5, ProviderID: 5, Day: "MONDAY", TimeSlots: []string{"09:00 AM"}})
	require.NoError(t, err)

	cache.getErr = errors.New("redis down")
	got, err := svc.GetAvailability(ctx, 5, "MONDAY")

	require.NoError(t, err)
	assert.Equal(t, []string{"09:00 AM"}, got.TimeSlots)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheRequests.WithLabelValues("error")))
}

func TestGetProviderSchedule(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(newMemRepo(), nil)

	for _, day := range []string{"FRIDAY", "MONDAY"} {
		_, err := svc.SetAvailability(ctx, &models.SetAvailabilityRequest{ActorID: 5, ProviderID: 5, Day: day, TimeSlots: []string{"09:00 AM"}})
		require.NoError(t, err)
	}

	schedule, err := svc.GetProviderSchedule(ctx, 5)
	require.NoError(t, err)
	require.Len(t, schedule.Days, 2)
	assert.Equal(t, "MONDAY", schedule.Days[0].Day)
	assert.Equal(t, "FRIDAY", schedule.Days[1].Day)
}

func TestGetAvailability_WriteDuringReadDoesNotPoisonCache(t *testing.T) {
	ctx := context.Background()
	mem := newMemRepo()
	repo := &interleavingRepo{memRepo: mem}
	cache := newMemCache()
	svc, _ := newTestService(repo, cache)

	_, err := svc.SetAvailability(ctx, &models.SetAvailabilityRequest{
		ActorID: 5, ProviderID: 5, Day: "MONDAY", TimeSlots: []string{"09:00 AM", "10:00 AM"},
	})
	require.NoError(t, err)

	// Слот удаляют и инвалидируют кэш, пока читатель держит старую строку
	repo.afterRead = func() {
		mem.rows[key{5, domain.Monday}].TimeSlots = domain.TimeSlots{"10:00 AM"}
		svc.Invalidate(ctx, 5, domain.Monday)
	}

	stale, err := svc.GetAvailability(ctx, 5, "MONDAY")
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00 AM", "10:00 AM"}, stale.TimeSlots)
	assert.Equal(t, 1, cache.skipped)
	assert.Empty(t, cache.items)

	fresh, err := svc.GetAvailability(ctx, 5, "MONDAY")
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00 AM"}, fresh.TimeSlots)

	cached, err := svc.GetAvailability(ctx, 5, "MONDAY")
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00 AM"}, cached.TimeSlots)
	assert.Equal(t, 2, mem.reads)
}
