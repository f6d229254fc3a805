package usecase

import (
	"context"
	"log/slog"
	"time"

	"nifty_backend/internal/feature/candles/domain/entity"
)

// DefaultLookbackDays は日足ヒストリカル取得のデフォルト遡及日数です。
const DefaultLookbackDays = 365

// HistoryProvider は外部プロバイダのヒストリカルAPIを抽象化します。
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type HistoryProvider interface {
	GetCandles(ctx context.Context, instrumentKey, interval string, from, to time.Time) ([]entity.Candle, error)
}

// HistoryUsecase は外部プロバイダから銘柄の時系列を取得し、
// 日付昇順・重複排除済みのシリーズへ正規化するユースケースです。
type HistoryUsecase struct {
	provider HistoryProvider
	now      func() time.Time
}

// NewHistoryUsecase は新しい HistoryUsecase を作成します。
func NewHistoryUsecase(provider HistoryProvider) *HistoryUsecase {
	return &HistoryUsecase{provider: provider, now: time.Now}
}

// FetchSeries は指定銘柄の直近lookbackDays日分のローソク足を取得します。
// 取得や解析の失敗は警告ログを残して空のシリーズに吸収されるため、
// エラーは返しません。同じ引数で繰り返し呼んでも結果は変わりません。
func (hu *HistoryUsecase) FetchSeries(ctx context.Context, symbol, instrumentKey, interval string, lookbackDays int) entity.Series {
	if interval == "" {
		interval = DefaultInterval
	}
	if lookbackDays <= 0 {
		lookbackDays = DefaultLookbackDays
	}

	to := hu.now()
	from := to.AddDate(0, 0, -lookbackDays)

	candles, err := hu.provider.GetCandles(ctx, instrumentKey, interval, from, to)
	if err != nil {
		slog.Warn("historical fetch failed, returning empty series",
			"symbol", symbol, "interval", interval, "error", err)
		return entity.Series{Symbol: symbol}
	}

	return entity.Series{Symbol: symbol, Candles: entity.Normalize(candles)}
}
