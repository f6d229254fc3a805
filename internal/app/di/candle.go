package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	candleadapters "nifty_backend/internal/feature/candles/adapters"
	"nifty_backend/internal/feature/candles/usecase"
	"nifty_backend/internal/platform/cache"
)

// NewCandleRepository creates the candle persistence stack.
// With Redis available, the Postgres repository is wrapped in the caching
// decorator whose entries expire before the next morning ingest.
// With rdb == nil the decorator transparently bypasses the cache.
func NewCandleRepository(db *gorm.DB, rdb *redis.Client) usecase.CandleRepository {
	repo := candleadapters.NewCandleRepository(db)
	return cache.NewCachingCandleRepository(rdb, cache.TimeUntilNext8AM(), repo, "candles")
}
