package upstox

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"nifty_backend/internal/feature/instruments/domain/entity"
	"nifty_backend/internal/feature/instruments/usecase"
	"nifty_backend/internal/platform/externalapi/upstox/dto"
)

const (
	segmentNSEEquity     = "NSE_EQ"
	instrumentTypeEquity = "EQ"

	// browserUserAgent is required by the asset CDN, which rejects
	// requests that identify themselves as non-browser clients.
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// ClientがInstrumentSourceを実装していることをコンパイル時に検証します。
var _ usecase.InstrumentSource = (*Client)(nil)

// EquityInstruments は取引所全体の銘柄ダンプをダウンロードし、
// NSEの現物株式(segment=NSE_EQ, instrument_type=EQ)のみを返します。
// ダンプは数十MBのgzip JSONなので、通常のAPI呼び出しより長いタイムアウトを使います。
func (c *Client) EquityInstruments(ctx context.Context) ([]entity.Instrument, error) {
	ctx, cancel := withTimeout(ctx, c.cfg.DownloadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.InstrumentsURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", browserUserAgent)

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
		return nil, fmt.Errorf("upstox instruments http %d", res.StatusCode)
	}

	// CDNがContent-Encodingで透過展開するかはレスポンス次第なので、
	// マジックバイトを見てgzipのまま届いたかを判定します。
	br := bufio.NewReader(res.Body)
	var r io.Reader = br
	if magic, err := br.Peek(2); err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("open gzip: %w", err)
		}
		defer func() {
			if err := gz.Close(); err != nil {
				slog.Warn("failed to close gzip reader", "error", err)
			}
		}()
		r = gz
	}

	var records []dto.InstrumentRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode instruments: %w", err)
	}

	out := make([]entity.Instrument, 0, 2048)
	for _, rec := range records {
		if rec.Segment != segmentNSEEquity || rec.InstrumentType != instrumentTypeEquity {
			continue
		}
		out = append(out, entity.Instrument{
			Symbol:        rec.TradingSymbol,
			InstrumentKey: rec.InstrumentKey,
		})
	}
	return out, nil
}
