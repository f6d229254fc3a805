package usecase

import (
	"context"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"nifty_backend/internal/feature/candles/domain/entity"
)

// mockCollectRegistry はInstrumentRegistryインターフェースのモック実装です。
type mockCollectRegistry struct {
	symbols []string
	keys    map[string]string
}

func (m *mockCollectRegistry) Symbols() []string {
	return append([]string(nil), m.symbols...)
}

func (m *mockCollectRegistry) Lookup(symbol string) (string, bool) {
	k, ok := m.keys[symbol]
	return k, ok
}

// mockSeriesFetcher はSeriesFetcherインターフェースのモック実装です。
// ワーカーから並行に呼ばれるため、記録はミューテックスで保護します。
type mockSeriesFetcher struct {
	FetchSeriesFunc func(ctx context.Context, symbol, instrumentKey, interval string, lookbackDays int) entity.Series

	mu      sync.Mutex
	fetched []string
}

func (m *mockSeriesFetcher) FetchSeries(ctx context.Context, symbol, instrumentKey, interval string, lookbackDays int) entity.Series {
	m.mu.Lock()
	m.fetched = append(m.fetched, symbol)
	m.mu.Unlock()
	if m.FetchSeriesFunc != nil {
		return m.FetchSeriesFunc(ctx, symbol, instrumentKey, interval, lookbackDays)
	}
	return entity.Series{Symbol: symbol}
}

func (m *mockSeriesFetcher) fetchedSymbols() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.fetched...)
}

// mockRateLimiter はRateLimiterInterfaceのモック実装です。
type mockRateLimiter struct {
	calls atomic.Int64
}

func (m *mockRateLimiter) WaitIfNeeded() {
	m.calls.Add(1)
}

func oneCandle(symbol string) entity.Series {
	return entity.Series{
		Symbol:  symbol,
		Candles: []entity.Candle{{Date: time.Date(2024, 6, 13, 0, 0, 0, 0, time.UTC), Close: 100}},
	}
}

func TestCollectUsecase_CollectAll(t *testing.T) {
	registry := &mockCollectRegistry{
		symbols: []string{"INFY", "RELIANCE", "TCS"},
		keys: map[string]string{
			"INFY":     "NSE_EQ|INE009A01021",
			"RELIANCE": "NSE_EQ|INE002A01018",
			"TCS":      "NSE_EQ|INE467B01029",
		},
	}
	fetcher := &mockSeriesFetcher{
		FetchSeriesFunc: func(ctx context.Context, symbol, instrumentKey, interval string, lookbackDays int) entity.Series {
			if interval != "day" || lookbackDays != 365 {
				t.Errorf("unexpected fetch params: interval=%s lookbackDays=%d", interval, lookbackDays)
			}
			return oneCandle(symbol)
		},
	}
	rl := &mockRateLimiter{}
	cu := NewCollectUsecase(fetcher, registry, rl, 2)

	out := cu.CollectAll(context.Background(), "day", 365)

	if len(out) != 3 {
		t.Fatalf("expected 3 series, got %d", len(out))
	}
	for _, symbol := range registry.symbols {
		series, ok := out[symbol]
		if !ok {
			t.Errorf("missing series for %s", symbol)
			continue
		}
		if series.Symbol != symbol || series.Empty() {
			t.Errorf("unexpected series for %s: %+v", symbol, series)
		}
	}
	if got := rl.calls.Load(); got != 3 {
		t.Errorf("rate limiter called %d times, expected 3", got)
	}
}

// TestCollectUsecase_CollectAll_SkipsEmptySeries はデータが得られなかった
// 銘柄が結果から除外され、他の銘柄の収集は継続することを検証します。
func TestCollectUsecase_CollectAll_SkipsEmptySeries(t *testing.T) {
	registry := &mockCollectRegistry{
		symbols: []string{"INFY", "RELIANCE", "TCS"},
		keys: map[string]string{
			"INFY":     "NSE_EQ|INE009A01021",
			"RELIANCE": "NSE_EQ|INE002A01018",
			"TCS":      "NSE_EQ|INE467B01029",
		},
	}
	fetcher := &mockSeriesFetcher{
		FetchSeriesFunc: func(ctx context.Context, symbol, instrumentKey, interval string, lookbackDays int) entity.Series {
			if symbol == "RELIANCE" {
				// 取得失敗は空シリーズとして現れる
				return entity.Series{Symbol: symbol}
			}
			return oneCandle(symbol)
		},
	}
	cu := NewCollectUsecase(fetcher, registry, &mockRateLimiter{}, 2)

	out := cu.CollectAll(context.Background(), "day", 365)

	if len(out) != 2 {
		t.Fatalf("expected 2 series, got %d", len(out))
	}
	if _, ok := out["RELIANCE"]; ok {
		t.Error("empty series should not appear in the result")
	}
	for _, symbol := range []string{"INFY", "TCS"} {
		if _, ok := out[symbol]; !ok {
			t.Errorf("missing series for %s", symbol)
		}
	}
}

// TestCollectUsecase_CollectAll_SkipsUnknownSymbols は対応表に存在しない
// シンボルがフェッチされずにスキップされることを検証します。
func TestCollectUsecase_CollectAll_SkipsUnknownSymbols(t *testing.T) {
	registry := &mockCollectRegistry{
		symbols: []string{"RELIANCE", "GHOST"},
		keys: map[string]string{
			"RELIANCE": "NSE_EQ|INE002A01018",
		},
	}
	fetcher := &mockSeriesFetcher{
		FetchSeriesFunc: func(ctx context.Context, symbol, instrumentKey, interval string, lookbackDays int) entity.Series {
			return oneCandle(symbol)
		},
	}
	cu := NewCollectUsecase(fetcher, registry, &mockRateLimiter{}, 1)

	out := cu.CollectAll(context.Background(), "day", 365)

	if len(out) != 1 {
		t.Fatalf("expected 1 series, got %d", len(out))
	}
	fetched := fetcher.fetchedSymbols()
	if len(fetched) != 1 || fetched[0] != "RELIANCE" {
		t.Errorf("unexpected fetches: %v", fetched)
	}
}

// TestCollectUsecase_CollectAll_BoundedConcurrency は同時フェッチ数が
// ワーカー数を超えないことを検証します。
func TestCollectUsecase_CollectAll_BoundedConcurrency(t *testing.T) {
	const workers = 3

	symbols := []string{"S1", "S2", "S3", "S4", "S5", "S6", "S7", "S8", "S9", "S10"}
	keys := make(map[string]string, len(symbols))
	for _, s := range symbols {
		keys[s] = "NSE_EQ|" + s
	}
	registry := &mockCollectRegistry{symbols: symbols, keys: keys}

	var current, peak atomic.Int64
	fetcher := &mockSeriesFetcher{
		FetchSeriesFunc: func(ctx context.Context, symbol, instrumentKey, interval string, lookbackDays int) entity.Series {
			cur := current.Add(1)
			for {
				prev := peak.Load()
				if cur <= prev || peak.CompareAndSwap(prev, cur) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			current.Add(-1)
			return oneCandle(symbol)
		},
	}
	cu := NewCollectUsecase(fetcher, registry, &mockRateLimiter{}, workers)

	out := cu.CollectAll(context.Background(), "day", 365)

	if len(out) != len(symbols) {
		t.Fatalf("expected %d series, got %d", len(symbols), len(out))
	}
	if got := peak.Load(); got > workers {
		t.Errorf("peak concurrency %d exceeds worker count %d", got, workers)
	}
}

// TestCollectUsecase_CollectAll_SingleWorkerPreservesOrder はワーカーが1つの
// 場合にフェッチ順序が対応表の順序と一致することを検証します。
func TestCollectUsecase_CollectAll_SingleWorkerPreservesOrder(t *testing.T) {
	registry := &mockCollectRegistry{
		symbols: []string{"INFY", "RELIANCE", "TCS", "WIPRO"},
		keys: map[string]string{
			"INFY":     "NSE_EQ|INE009A01021",
			"RELIANCE": "NSE_EQ|INE002A01018",
			"TCS":      "NSE_EQ|INE467B01029",
			"WIPRO":    "NSE_EQ|INE075A01022",
		},
	}
	fetcher := &mockSeriesFetcher{
		FetchSeriesFunc: func(ctx context.Context, symbol, instrumentKey, interval string, lookbackDays int) entity.Series {
			return oneCandle(symbol)
		},
	}
	cu := NewCollectUsecase(fetcher, registry, &mockRateLimiter{}, 1)

	cu.CollectAll(context.Background(), "day", 365)

	if !reflect.DeepEqual(fetcher.fetchedSymbols(), registry.symbols) {
		t.Errorf("fetch order mismatch: got %v, want %v", fetcher.fetchedSymbols(), registry.symbols)
	}
}

// TestNewCollectUsecase_DefaultWorkers はworkersが0以下のときデフォルト値が
// 使われることを検証します。
func TestNewCollectUsecase_DefaultWorkers(t *testing.T) {
	cu := NewCollectUsecase(&mockSeriesFetcher{}, &mockCollectRegistry{}, &mockRateLimiter{}, 0)
	if cu.workers != DefaultCollectWorkers {
		t.Errorf("expected %d workers, got %d", DefaultCollectWorkers, cu.workers)
	}

	cu = NewCollectUsecase(&mockSeriesFetcher{}, &mockCollectRegistry{}, &mockRateLimiter{}, -1)
	if cu.workers != DefaultCollectWorkers {
		t.Errorf("expected %d workers, got %d", DefaultCollectWorkers, cu.workers)
	}
}
