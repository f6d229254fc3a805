package upstox

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"nifty_backend/internal/feature/candles/domain/entity"
	"nifty_backend/internal/feature/candles/usecase"
	"nifty_backend/internal/platform/externalapi/upstox/dto"
)

// dateLayout is the calendar-date form used in historical URLs and in
// daily bar timestamps.
const dateLayout = "2006-01-02"

// ClientがHistoryProviderを実装していることをコンパイル時に検証します。
var _ usecase.HistoryProvider = (*Client)(nil)

// GetCandles はUpstoxのヒストリカルAPIからローソク足を取得します。
// 期間はURLパスの to/from 日付で指定する仕様です。返る順序はプロバイダ依存
// (通常は新しい順)のため、並び替えは呼び出し側で行います。
func (c *Client) GetCandles(ctx context.Context, instrumentKey, interval string, from, to time.Time) ([]entity.Candle, error) {
	ctx, cancel := withTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	// URLを生成
	u := fmt.Sprintf("%s/historical-candle/%s/%s/%s/%s",
		c.cfg.BaseURL,
		url.PathEscape(instrumentKey),
		url.PathEscape(interval),
		to.Format(dateLayout),
		from.Format(dateLayout),
	)

	req, err := c.newAPIRequest(ctx, u)
	if err != nil {
		return nil, err
	}

	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("upstox http %d", res.StatusCode)
	}

	// 数値がJSON number・文字列のどちらで届いても桁落ちなく扱えるよう
	// UseNumberでデコードします。
	dec := json.NewDecoder(res.Body)
	dec.UseNumber()
	var body dto.HistoricalCandleResponse
	if err := dec.Decode(&body); err != nil {
		return nil, err
	}
	if body.Status != statusSuccess {
		return nil, fmt.Errorf("upstox status %q", body.Status)
	}

	candles := make([]entity.Candle, 0, len(body.Data.Candles))
	for _, row := range body.Data.Candles {
		cd, err := parseCandleRow(row)
		if err != nil {
			return nil, err
		}
		candles = append(candles, cd)
	}
	return candles, nil
}

// parseCandleRow は [timestamp, open, high, low, close, volume, open_interest]
// 形式の行をCandleに変換します。建玉は現物株式では常に0のため捨てます。
func parseCandleRow(row []any) (entity.Candle, error) {
	if len(row) < 6 {
		return entity.Candle{}, fmt.Errorf("candle row has %d fields, want at least 6", len(row))
	}

	ts, err := rowTime(row[0])
	if err != nil {
		return entity.Candle{}, err
	}
	o, err := rowFloat(row[1], "open")
	if err != nil {
		return entity.Candle{}, err
	}
	h, err := rowFloat(row[2], "high")
	if err != nil {
		return entity.Candle{}, err
	}
	l, err := rowFloat(row[3], "low")
	if err != nil {
		return entity.Candle{}, err
	}
	cl, err := rowFloat(row[4], "close")
	if err != nil {
		return entity.Candle{}, err
	}
	vol, err := rowFloat(row[5], "volume")
	if err != nil {
		return entity.Candle{}, err
	}

	return entity.Candle{
		Date:   sessionDate(ts),
		Open:   o,
		High:   h,
		Low:    l,
		Close:  cl,
		Volume: int64(vol),
	}, nil
}

// rowTime はタイムスタンプ要素をパースします。タイムゾーン付きRFC3339と
// 日付のみの2形式を受け付けます。
func rowTime(v any) (time.Time, error) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, fmt.Errorf("candle timestamp has type %T, want string", v)
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t, err = time.Parse(dateLayout, s)
		if err != nil {
			return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
		}
	}
	return t, nil
}

// rowFloat は数値要素をパースします。
func rowFloat(v any, field string) (float64, error) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("parse %s %q: %w", field, n.String(), err)
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, fmt.Errorf("parse %s %q: %w", field, n, err)
		}
		return f, nil
	}
	return 0, fmt.Errorf("candle %s has type %T, want number", field, v)
}

// sessionDate はタイムスタンプをセッション日付(UTC深夜0時)へ正規化します。
// 日足バーの同一性は時刻ではなく暦日で決まります。
func sessionDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
