package availability

import "errors"

var (
	// ErrCacheMiss возвращается, когда записи нет в кэше
	ErrCacheMiss = errors.New("availability.cache: miss")

	ErrCacheRead   = errors.New("availability.cache: failed to read")
	ErrCacheWrite  = errors.New("availability.cache: failed to write")
	ErrCacheDecode = errors.New("availability.cache: failed to decode entry")

	// ErrStaleVersion запись инвалидирована, пока читатель ходил в Postgres
	ErrStaleVersion = errors.New("availability.cache: entry invalidated since read")
)
