package availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
)

const keyPrefix = "availability"

// setIfVersionScript пишет запись, только если счетчик инвалидаций не изменился
// с момента, когда читатель взял его перед походом в Postgres
var setIfVersionScript = `
local current = redis.call('GET', KEYS[2])
if (current or '0') ~= ARGV[1] then
	return 0
end
if tonumber(ARGV[3]) > 0 then
	redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
else
	redis.call('SET', KEYS[1], ARGV[2])
end
return 1
`

// entry формат записи в Redis
type entry struct {
	ID         int64     `json:"id"`
	ProviderID int64     `json:"provider_id"`
	Day        string    `json:"day"`
	TimeSlots  []string  `json:"time_slots"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Cache read-through кэш расписания провайдера на день недели
type Cache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewCache создает кэш поверх клиента Redis
func NewCache(client redis.Cmdable, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Key ключ записи (provider, day)
func Key(providerID int64, day domain.Weekday) string {
	return fmt.Sprintf("%s:%d:%s", keyPrefix, providerID, day)
}

// VersionKey счетчик инвалидаций записи (provider, day)
func VersionKey(providerID int64, day domain.Weekday) string {
	return fmt.Sprintf("%s:version:%d:%s", keyPrefix, providerID, day)
}

// Version текущее значение счетчика инвалидаций; 0, если инвалидаций не было
func (c *Cache) Version(ctx context.Context, providerID int64, day domain.Weekday) (int64, error) {
	v, err := c.client.Get(ctx, VersionKey(providerID, day)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: Version: %w", ErrCacheRead, err)
	}
	return v, nil
}

// Get возвращает запись или ErrCacheMiss
func (c *Cache) Get(ctx context.Context, providerID int64, day domain.Weekday) (*domain.ProviderAvailability, error) {
	raw, err := c.client.Get(ctx, Key(providerID, day)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get: %w", ErrCacheRead, err)
	}

	var e entry
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		return nil, fmt.Errorf("%w: Get: %w", ErrCacheDecode, err)
	}

	slots := make(domain.TimeSlots, len(e.TimeSlots))
	copy(slots, e.TimeSlots)

	return &domain.ProviderAvailability{
		ID:         e.ID,
		ProviderID: e.ProviderID,
		Day:        domain.Weekday(e.Day),
		TimeSlots:  slots,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}, nil
}

// Set кладет запись с TTL, если с момента чтения version запись не инвалидировали
// Иначе ErrStaleVersion: прочитанная из Postgres строка могла устареть
func (c *Cache) Set(ctx context.Context, a *domain.ProviderAvailability, version int64) error {
	e := entry{
		ID:         a.ID,
		ProviderID: a.ProviderID,
		Day:        a.Day.String(),
		TimeSlots:  []string(a.TimeSlots),
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
	if e.TimeSlots == nil {
		e.TimeSlots = []string{}
	}

	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("%w: Set - marshal: %w", ErrCacheWrite, err)
	}

	stored, err := c.client.Eval(ctx, setIfVersionScript,
		[]string{Key(a.ProviderID, a.Day), VersionKey(a.ProviderID, a.Day)},
		version, string(payload), c.ttl.Milliseconds(),
	).Int64()
	if err != nil {
		return fmt.Errorf("%w: Set: %w", ErrCacheWrite, err)
	}
	if stored == 0 {
		return ErrStaleVersion
	}

	return nil
}

// Invalidate увеличивает счетчик версии и удаляет запись (provider, day)
// Порядок важен: сначала версия, чтобы отложенный Set читателя был отклонен
func (c *Cache) Invalidate(ctx context.Context, providerID int64, day domain.Weekday) error {
	if err := c.client.Incr(ctx, VersionKey(providerID, day)).Err(); err != nil {
		return fmt.Errorf("%w: Invalidate - version: %w", ErrCacheWrite, err)
	}
	if err := c.client.Del(ctx, Key(providerID, day)).Err(); err != nil {
		return fmt.Errorf("%w: Invalidate: %w", ErrCacheWrite, err)
	}
	return nil
}
