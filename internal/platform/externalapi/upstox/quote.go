package upstox

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"

	"nifty_backend/internal/feature/quotes/domain/entity"
	"nifty_backend/internal/feature/quotes/usecase"
	"nifty_backend/internal/platform/externalapi/upstox/dto"
)

// Clientが気配値系の2つのポートを実装していることをコンパイル時に検証します。
var (
	_ usecase.LivePriceProvider    = (*Client)(nil)
	_ usecase.SessionQuoteProvider = (*Client)(nil)
)

// LastPrice は当該銘柄の直近約定値を取得します。レスポンスに銘柄キーが
// 含まれていなかった場合は ok=false を返し、通信エラーとは区別します。
func (c *Client) LastPrice(ctx context.Context, instrumentKey string) (float64, bool, error) {
	ctx, cancel := withTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	q := url.Values{}
	q.Set("instrument_key", instrumentKey)
	u := fmt.Sprintf("%s/market-quote/ltp?%s", c.cfg.BaseURL, q.Encode())

	req, err := c.newAPIRequest(ctx, u)
	if err != nil {
		return 0, false, err
	}

	res, err := c.client.Do(req)
	if err != nil {
		return 0, false, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return 0, false, fmt.Errorf("upstox http %d", res.StatusCode)
	}

	var body dto.LTPResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return 0, false, err
	}
	if body.Status != statusSuccess {
		return 0, false, fmt.Errorf("upstox status %q", body.Status)
	}

	entry, ok := body.Data[instrumentKey]
	if !ok {
		return 0, false, nil
	}
	return entry.LastTradedPrice, true, nil
}

// SessionOHLC は当該銘柄の当日セッションの四本値と直近約定値を取得します。
// Symbol と AsOf は呼び出し側が補完します。
func (c *Client) SessionOHLC(ctx context.Context, instrumentKey string) (entity.SessionOHLC, bool, error) {
	ctx, cancel := withTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	q := url.Values{}
	q.Set("instrument_key", instrumentKey)
	q.Set("interval", "1d")
	u := fmt.Sprintf("%s/market-quote/ohlc?%s", c.cfg.BaseURL, q.Encode())

	req, err := c.newAPIRequest(ctx, u)
	if err != nil {
		return entity.SessionOHLC{}, false, err
	}

	res, err := c.client.Do(req)
	if err != nil {
		return entity.SessionOHLC{}, false, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return entity.SessionOHLC{}, false, fmt.Errorf("upstox http %d", res.StatusCode)
	}

	var body dto.OHLCResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return entity.SessionOHLC{}, false, err
	}
	if body.Status != statusSuccess {
		return entity.SessionOHLC{}, false, fmt.Errorf("upstox status %q", body.Status)
	}

	entry, ok := body.Data[instrumentKey]
	if !ok {
		return entity.SessionOHLC{}, false, nil
	}
	return entity.SessionOHLC{
		Open:      entry.OHLC.Open,
		High:      entry.OHLC.High,
		Low:       entry.OHLC.Low,
		Close:     entry.OHLC.Close,
		LastPrice: entry.LastTradedPrice,
	}, true, nil
}
