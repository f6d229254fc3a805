package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"

	"nifty_backend/internal/feature/candles/domain/entity"
)

// mockCandleRepository はテスト用のCandleRepositoryモック実装です。
type mockCandleRepository struct {
	findFn         func(ctx context.Context, symbol, interval string, outputsize int) ([]entity.Candle, error)
	upsertSeriesFn func(ctx context.Context, series entity.Series, interval string) error
}

// Find はモックのFind関数を呼び出します。
func (m *mockCandleRepository) Find(ctx context.Context, symbol, interval string, outputsize int) ([]entity.Candle, error) {
	if m.findFn != nil {
		return m.findFn(ctx, symbol, interval, outputsize)
	}
	return nil, nil
}

// UpsertSeries はモックのUpsertSeries関数を呼び出します。
func (m *mockCandleRepository) UpsertSeries(ctx context.Context, series entity.Series, interval string) error {
	if m.upsertSeriesFn != nil {
		return m.upsertSeriesFn(ctx, series, interval)
	}
	return nil
}

func day(d string) time.Time {
	t, _ := time.Parse("2006-01-02", d)
	return t
}

// TestNewCachingCandleRepository_Defaults はデフォルト値（TTLとnamespace）が正しく設定されることを検証します。
func TestNewCachingCandleRepository_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		ttl               time.Duration
		namespace         string
		expectedTTL       time.Duration
		expectedNamespace string
	}{
		{
			name:              "default values when zero/empty",
			ttl:               0,
			namespace:         "",
			expectedTTL:       5 * time.Minute,
			expectedNamespace: "candles",
		},
		{
			name:              "negative ttl uses default",
			ttl:               -1 * time.Minute,
			namespace:         "",
			expectedTTL:       5 * time.Minute,
			expectedNamespace: "candles",
		},
		{
			name:              "custom values preserved",
			ttl:               10 * time.Minute,
			namespace:         "custom",
			expectedTTL:       10 * time.Minute,
			expectedNamespace: "custom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := NewCachingCandleRepository(nil, tt.ttl, &mockCandleRepository{}, tt.namespace)

			if repo.ttl != tt.expectedTTL {
				t.Errorf("expected TTL %v, got %v", tt.expectedTTL, repo.ttl)
			}
			if repo.namespace != tt.expectedNamespace {
				t.Errorf("expected namespace %q, got %q", tt.expectedNamespace, repo.namespace)
			}
		})
	}
}

// TestCachingCandleRepository_Find_NilRedis はRedisがnilの場合にキャッシュをバイパスして内部リポジトリを直接呼び出すことを検証します。
func TestCachingCandleRepository_Find_NilRedis(t *testing.T) {
	t.Parallel()

	expectedCandles := []entity.Candle{
		{Date: day("2024-01-15"), Open: 2800.0, Close: 2836.75},
	}

	inner := &mockCandleRepository{
		findFn: func(ctx context.Context, symbol, interval string, outputsize int) ([]entity.Candle, error) {
			return expectedCandles, nil
		},
	}

	// Redis is nil - should bypass cache and call inner directly
	repo := NewCachingCandleRepository(nil, 5*time.Minute, inner, "candles")

	candles, err := repo.Find(context.Background(), "RELIANCE", "day", 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candles) != len(expectedCandles) {
		t.Errorf("expected %d candles, got %d", len(expectedCandles), len(candles))
	}
}

// TestCachingCandleRepository_Find_CacheHit はキャッシュヒット時にRedisからデータを返し、内部リポジトリを呼ばないことを検証します。
func TestCachingCandleRepository_Find_CacheHit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	cachedCandles := []entity.Candle{
		{Date: day("2024-01-15"), Open: 2800.0, Close: 2836.75},
	}
	cachedJSON, _ := json.Marshal(cachedCandles)

	mock.ExpectGet("candles:RELIANCE:day:100").SetVal(string(cachedJSON))

	innerCalled := false
	inner := &mockCandleRepository{
		findFn: func(ctx context.Context, symbol, interval string, outputsize int) ([]entity.Candle, error) {
			innerCalled = true
			return nil, nil
		},
	}

	repo := NewCachingCandleRepository(rdb, 5*time.Minute, inner, "candles")
	candles, err := repo.Find(context.Background(), "RELIANCE", "day", 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if innerCalled {
		t.Error("inner repository should not be called on cache hit")
	}
	if len(candles) != 1 {
		t.Errorf("expected 1 candle, got %d", len(candles))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingCandleRepository_Find_CacheMiss はキャッシュミス時にDBからデータを取得し、キャッシュに保存することを検証します。
func TestCachingCandleRepository_Find_CacheMiss(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expectedCandles := []entity.Candle{
		{Date: day("2024-01-15"), Open: 2800.0, Close: 2836.75},
	}
	expectedJSON, _ := json.Marshal(expectedCandles)

	// Cache miss
	mock.ExpectGet("candles:RELIANCE:day:100").RedisNil()
	// Set cache after fetching from inner
	mock.ExpectSet("candles:RELIANCE:day:100", expectedJSON, 5*time.Minute).SetVal("OK")

	inner := &mockCandleRepository{
		findFn: func(ctx context.Context, symbol, interval string, outputsize int) ([]entity.Candle, error) {
			return expectedCandles, nil
		},
	}

	repo := NewCachingCandleRepository(rdb, 5*time.Minute, inner, "candles")
	candles, err := repo.Find(context.Background(), "RELIANCE", "day", 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candles) != 1 {
		t.Errorf("expected 1 candle, got %d", len(candles))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingCandleRepository_Find_InnerError は内部リポジトリがエラーを返した場合にそのエラーが伝播されることを検証します。
func TestCachingCandleRepository_Find_InnerError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expectedErr := errors.New("database error")

	mock.ExpectGet("candles:RELIANCE:day:100").RedisNil()

	inner := &mockCandleRepository{
		findFn: func(ctx context.Context, symbol, interval string, outputsize int) ([]entity.Candle, error) {
			return nil, expectedErr
		},
	}

	repo := NewCachingCandleRepository(rdb, 5*time.Minute, inner, "candles")
	_, err := repo.Find(context.Background(), "RELIANCE", "day", 100)

	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, expectedErr) {
		t.Errorf("expected error %v, got %v", expectedErr, err)
	}
}

// TestCachingCandleRepository_Find_CorruptedCache は破損したキャッシュを検出・削除し、DBにフォールバックすることを検証します。
func TestCachingCandleRepository_Find_CorruptedCache(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expectedCandles := []entity.Candle{
		{Date: day("2024-01-15"), Open: 2800.0, Close: 2836.75},
	}
	expectedJSON, _ := json.Marshal(expectedCandles)

	// Return invalid JSON from cache
	mock.ExpectGet("candles:RELIANCE:day:100").SetVal("invalid json")
	// Delete corrupted cache
	mock.ExpectDel("candles:RELIANCE:day:100").SetVal(1)
	// Set new cache after fetching from inner
	mock.ExpectSet("candles:RELIANCE:day:100", expectedJSON, 5*time.Minute).SetVal("OK")

	inner := &mockCandleRepository{
		findFn: func(ctx context.Context, symbol, interval string, outputsize int) ([]entity.Candle, error) {
			return expectedCandles, nil
		},
	}

	repo := NewCachingCandleRepository(rdb, 5*time.Minute, inner, "candles")
	candles, err := repo.Find(context.Background(), "RELIANCE", "day", 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candles) != 1 {
		t.Errorf("expected 1 candle, got %d", len(candles))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingCandleRepository_UpsertSeries_NilRedis はRedisがnilの場合にUpsertSeriesが内部リポジトリのみを呼び出すことを検証します。
func TestCachingCandleRepository_UpsertSeries_NilRedis(t *testing.T) {
	t.Parallel()

	innerCalled := false
	inner := &mockCandleRepository{
		upsertSeriesFn: func(ctx context.Context, series entity.Series, interval string) error {
			innerCalled = true
			return nil
		},
	}

	repo := NewCachingCandleRepository(nil, 5*time.Minute, inner, "candles")
	err := repo.UpsertSeries(context.Background(), entity.Series{
		Symbol:  "RELIANCE",
		Candles: []entity.Candle{{Date: day("2024-01-15"), Close: 2836.75}},
	}, "day")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !innerCalled {
		t.Error("expected inner repository to be called")
	}
}

// TestCachingCandleRepository_UpsertSeries_InnerError は内部リポジトリのUpsertSeriesエラーが伝播されることを検証します。
func TestCachingCandleRepository_UpsertSeries_InnerError(t *testing.T) {
	t.Parallel()

	expectedErr := errors.New("upsert error")
	inner := &mockCandleRepository{
		upsertSeriesFn: func(ctx context.Context, series entity.Series, interval string) error {
			return expectedErr
		},
	}

	repo := NewCachingCandleRepository(nil, 5*time.Minute, inner, "candles")
	err := repo.UpsertSeries(context.Background(), entity.Series{
		Symbol:  "RELIANCE",
		Candles: []entity.Candle{{Date: day("2024-01-15")}},
	}, "day")

	if !errors.Is(err, expectedErr) {
		t.Errorf("expected error %v, got %v", expectedErr, err)
	}
}

// TestCachingCandleRepository_UpsertSeries_EmptySeries は空のシリーズでUpsertSeriesが正常に完了し、キャッシュ操作を行わないことを検証します。
func TestCachingCandleRepository_UpsertSeries_EmptySeries(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	inner := &mockCandleRepository{
		upsertSeriesFn: func(ctx context.Context, series entity.Series, interval string) error {
			return nil
		},
	}

	repo := NewCachingCandleRepository(rdb, 5*time.Minute, inner, "candles")
	err := repo.UpsertSeries(context.Background(), entity.Series{Symbol: "RELIANCE"}, "day")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingCandleRepository_UpsertSeries_CacheInvalidation はUpsertSeries後に関連するキャッシュが無効化されることを検証します。
func TestCachingCandleRepository_UpsertSeries_CacheInvalidation(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	inner := &mockCandleRepository{
		upsertSeriesFn: func(ctx context.Context, series entity.Series, interval string) error {
			return nil
		},
	}

	// Expect cache invalidation via SCAN and DEL
	mock.ExpectScan(0, "candles:RELIANCE:day:*", 200).SetVal([]string{"candles:RELIANCE:day:100", "candles:RELIANCE:day:200"}, 0)
	mock.ExpectDel("candles:RELIANCE:day:100", "candles:RELIANCE:day:200").SetVal(2)

	repo := NewCachingCandleRepository(rdb, 5*time.Minute, inner, "candles")
	err := repo.UpsertSeries(context.Background(), entity.Series{
		Symbol: "RELIANCE",
		Candles: []entity.Candle{
			{Date: day("2024-01-15"), Close: 2836.75},
			{Date: day("2024-01-16"), Close: 2812.40},
		},
	}, "day")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestSafe はsafe関数がRedisキーで問題となる文字を正しくエスケープすることを検証します。
func TestSafe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"RELIANCE", "RELIANCE"},
		{"M&M", "M&M"},
		{"BRK A", "BRK_A"},
		{"key:value", "key_value"},
		{"a b:c", "a_b_c"},
		{"", ""},
		{"  ", "__"},
		{"::", "__"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			result := safe(tt.input)
			if result != tt.expected {
				t.Errorf("safe(%q) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}
