// Package usecase は現在価格の解決ロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	candles "nifty_backend/internal/feature/candles/domain/entity"
	"nifty_backend/internal/feature/quotes/domain/entity"
)

// recentCloseLookbackDays は直近終値フォールバックで参照する遡及日数です。
// 週末や連休を挟んでも直近セッションを1本は拾える幅にしています。
const recentCloseLookbackDays = 5

// InstrumentRegistry はシンボルからプロバイダ銘柄キーへの解決を抽象化します。
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type InstrumentRegistry interface {
	Lookup(symbol string) (string, bool)
}

// MarketClock は取引所の立会時間判定を抽象化します。
type MarketClock interface {
	IsSessionOpen(t time.Time) bool
}

// LivePriceProvider はライブの直近約定値取得を抽象化します。
// okはレスポンスに値が含まれていたかを示し、エラーとは区別されます。
type LivePriceProvider interface {
	LastPrice(ctx context.Context, instrumentKey string) (float64, bool, error)
}

// SessionQuoteProvider は当日セッションの四本値取得を抽象化します。
type SessionQuoteProvider interface {
	SessionOHLC(ctx context.Context, instrumentKey string) (entity.SessionOHLC, bool, error)
}

// SeriesFetcher は直近終値フォールバックに使う日足取得を抽象化します。
type SeriesFetcher interface {
	FetchSeries(ctx context.Context, symbol, instrumentKey, interval string, lookbackDays int) candles.Series
}

// QuoteUsecase は銘柄の現在価格を解決するユースケースです。
// 立会時間中はライブ価格を優先し、取得できない場合や閉場中は
// 直近セッションの終値に切り替えます。
type QuoteUsecase struct {
	registry InstrumentRegistry
	clock    MarketClock
	live     LivePriceProvider
	session  SessionQuoteProvider
	history  SeriesFetcher
	now      func() time.Time
}

// NewQuoteUsecase は新しい QuoteUsecase を作成します。
func NewQuoteUsecase(registry InstrumentRegistry, clock MarketClock, live LivePriceProvider, session SessionQuoteProvider, history SeriesFetcher) *QuoteUsecase {
	return &QuoteUsecase{
		registry: registry,
		clock:    clock,
		live:     live,
		session:  session,
		history:  history,
		now:      time.Now,
	}
}

// CurrentPrice はシンボルの現在価格を解決します。
//
// ユニバース外のシンボルは ErrUnknownSymbol を返します。それ以外の失敗は
// エラーにならず、ライブ価格が得られなければ直近終値へ、それも得られなけ
// れば「値なし」(ok=false) へ段階的に切り替わります。
func (qu *QuoteUsecase) CurrentPrice(ctx context.Context, symbol string) (entity.Quote, bool, error) {
	key, ok := qu.registry.Lookup(symbol)
	if !ok {
		return entity.Quote{}, false, fmt.Errorf("%w: %s", ErrUnknownSymbol, symbol)
	}

	now := qu.now()
	if qu.clock.IsSessionOpen(now) {
		price, found, err := qu.live.LastPrice(ctx, key)
		if err != nil {
			slog.Warn("live quote failed, falling back to last close", "symbol", symbol, "error", err)
		} else if found {
			return entity.Quote{
				Symbol: symbol,
				Price:  price,
				Kind:   entity.KindLive,
				AsOf:   now,
			}, true, nil
		}
		// レスポンスに値が無かった場合も直近終値フォールバックへ進む
	}

	series := qu.history.FetchSeries(ctx, symbol, key, "day", recentCloseLookbackDays)
	last, ok := series.Last()
	if !ok {
		return entity.Quote{}, false, nil
	}
	return entity.Quote{
		Symbol:      symbol,
		Price:       last.Close,
		Kind:        entity.KindLastSession,
		AsOf:        now,
		SessionDate: last.Date,
	}, true, nil
}

// SessionQuote は当日セッションの四本値と直近約定値を返します。
// ユニバース外のシンボルは ErrUnknownSymbol を返し、プロバイダ障害は
// 「値なし」(ok=false) に吸収されます。
func (qu *QuoteUsecase) SessionQuote(ctx context.Context, symbol string) (entity.SessionOHLC, bool, error) {
	key, ok := qu.registry.Lookup(symbol)
	if !ok {
		return entity.SessionOHLC{}, false, fmt.Errorf("%w: %s", ErrUnknownSymbol, symbol)
	}

	ohlc, found, err := qu.session.SessionOHLC(ctx, key)
	if err != nil {
		slog.Warn("session quote failed", "symbol", symbol, "error", err)
		return entity.SessionOHLC{}, false, nil
	}
	if !found {
		return entity.SessionOHLC{}, false, nil
	}

	ohlc.Symbol = symbol
	ohlc.AsOf = qu.now()
	return ohlc, true, nil
}
