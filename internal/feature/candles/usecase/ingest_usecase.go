package usecase

import (
	"context"
	"log/slog"
	"sort"

	"nifty_backend/internal/feature/candles/domain/entity"
)

// SeriesCollector はユニバース一括収集を抽象化します。
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SeriesCollector interface {
	CollectAll(ctx context.Context, interval string, lookbackDays int) map[string]entity.Series
}

// SeriesWriter は収集済みシリーズのファイル書き出しを抽象化します。
type SeriesWriter interface {
	Write(series entity.Series) error
}

// IngestUsecase は収集したヒストリカルデータをデータベースへ永続化し、
// 必要に応じてファイルにも書き出すユースケースです。
type IngestUsecase struct {
	collector SeriesCollector
	candle    CandleRepository
	writer    SeriesWriter
}

// NewIngestUsecase は新しい IngestUsecase を作成します。
// writerはnil可で、その場合ファイル書き出しは行いません。
func NewIngestUsecase(collector SeriesCollector, candle CandleRepository, writer SeriesWriter) *IngestUsecase {
	return &IngestUsecase{collector: collector, candle: candle, writer: writer}
}

// IngestAll はユニバース全銘柄のシリーズを収集し、銘柄ごとに永続化します。
// 1つの銘柄でエラーが発生しても処理を止めずにログに出力し、次の銘柄へ進みます。
func (iu *IngestUsecase) IngestAll(ctx context.Context, interval string, lookbackDays int) error {
	if interval == "" {
		interval = DefaultInterval
	}

	all := iu.collector.CollectAll(ctx, interval, lookbackDays)

	// マップの走査順は不定なので、ログと書き出しを再現可能にするため整列する
	symbols := make([]string, 0, len(all))
	for s := range all {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)

	for _, symbol := range symbols {
		series := all[symbol]
		if err := iu.candle.UpsertSeries(ctx, series, interval); err != nil {
			slog.Error("failed to persist series", "symbol", symbol, "error", err)
			continue
		}
		if iu.writer != nil {
			if err := iu.writer.Write(series); err != nil {
				slog.Error("failed to export series", "symbol", symbol, "error", err)
				continue
			}
		}
		slog.Info("series ingested", "symbol", symbol, "candles", len(series.Candles))
	}
	return nil
}
