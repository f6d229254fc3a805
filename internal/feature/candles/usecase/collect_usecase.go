package usecase

import (
	"context"
	"log/slog"
	"sync"

	"nifty_backend/internal/feature/candles/domain/entity"
	"nifty_backend/internal/shared/ratelimiter"
)

// DefaultCollectWorkers はユニバース一括収集の並列フェッチ数です。
// プロバイダのレート制限を踏まえた控えめな値にしています。
const DefaultCollectWorkers = 5

// SeriesFetcher は1銘柄分のシリーズ取得を抽象化します。
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SeriesFetcher interface {
	FetchSeries(ctx context.Context, symbol, instrumentKey, interval string, lookbackDays int) entity.Series
}

// InstrumentRegistry は銘柄ユニバースとプロバイダキーの対応表を抽象化します。
type InstrumentRegistry interface {
	Symbols() []string
	Lookup(symbol string) (string, bool)
}

// CollectUsecase はユニバース全銘柄のヒストリカルデータを
// 固定サイズのワーカープールで収集するユースケースです。
type CollectUsecase struct {
	fetcher     SeriesFetcher
	registry    InstrumentRegistry
	rateLimiter ratelimiter.RateLimiterInterface
	workers     int
}

// NewCollectUsecase は新しい CollectUsecase を作成します。
// workersが0以下の場合は DefaultCollectWorkers を使います。
func NewCollectUsecase(fetcher SeriesFetcher, registry InstrumentRegistry, rl ratelimiter.RateLimiterInterface, workers int) *CollectUsecase {
	if workers <= 0 {
		workers = DefaultCollectWorkers
	}
	return &CollectUsecase{fetcher: fetcher, registry: registry, rateLimiter: rl, workers: workers}
}

// CollectAll はユニバース全銘柄のシリーズを収集し、シンボルをキーとした
// マップで返します。ジョブは対応表の順序で投入され、1銘柄の失敗は
// 他の銘柄の収集を止めません。データが得られなかった銘柄は
// 結果に含まれないため、マップの値はすべて非空です。
func (cu *CollectUsecase) CollectAll(ctx context.Context, interval string, lookbackDays int) map[string]entity.Series {
	symbols := cu.registry.Symbols()

	jobs := make(chan string)
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	out := make(map[string]entity.Series, len(symbols))

	for i := 0; i < cu.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for symbol := range jobs {
				key, ok := cu.registry.Lookup(symbol)
				if !ok {
					slog.Warn("symbol missing from registry, skipping", "symbol", symbol)
					continue
				}
				cu.rateLimiter.WaitIfNeeded()
				series := cu.fetcher.FetchSeries(ctx, symbol, key, interval, lookbackDays)
				if series.Empty() {
					slog.Warn("no historical data collected", "symbol", symbol)
					continue
				}
				mu.Lock()
				out[symbol] = series
				mu.Unlock()
			}
		}()
	}

	for _, s := range symbols {
		jobs <- s
	}
	close(jobs)
	wg.Wait()

	slog.Info("collection finished", "collected", len(out), "universe", len(symbols))
	return out
}
