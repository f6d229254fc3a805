// Package export writes collected candle series to per-symbol files.
// Supported formats: csv, json, parquet.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"nifty_backend/internal/feature/candles/domain/entity"
	"nifty_backend/internal/feature/candles/usecase"
)

// dateLayout is the session-date format used in every export format.
const dateLayout = "2006-01-02"

// candleRow is the flat on-disk representation of one candle.
// The export package does not depend on provider types; it only
// flattens the domain entity.
type candleRow struct {
	Date   string  `json:"date" parquet:"date"`
	Open   float64 `json:"open" parquet:"open"`
	High   float64 `json:"high" parquet:"high"`
	Low    float64 `json:"low" parquet:"low"`
	Close  float64 `json:"close" parquet:"close"`
	Volume int64   `json:"volume" parquet:"volume"`
}

func toRows(candles []entity.Candle) []candleRow {
	rows := make([]candleRow, 0, len(candles))
	for _, c := range candles {
		rows = append(rows, candleRow{
			Date:   c.Date.UTC().Format(dateLayout),
			Open:   c.Open,
			High:   c.High,
			Low:    c.Low,
			Close:  c.Close,
			Volume: c.Volume,
		})
	}
	return rows
}

// filePath returns dir/{symbol}_data.{ext}.
func filePath(dir, symbol, ext string) string {
	return filepath.Join(dir, fmt.Sprintf("%s_data.%s", symbol, ext))
}

// NewSeriesWriter は指定フォーマットのライターを生成します。
// 出力ディレクトリは存在しなければ作成されます。
// サポート外のフォーマットはエラーを返します（csv, json, parquet のみ）。
func NewSeriesWriter(format, dir string) (usecase.SeriesWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir %s: %w", dir, err)
	}
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "csv":
		return &CSVWriter{Dir: dir}, nil
	case "json":
		return &JSONWriter{Dir: dir}, nil
	case "parquet":
		return &ParquetWriter{Dir: dir}, nil
	default:
		return nil, fmt.Errorf("unsupported export format %q (use: csv, json, parquet)", format)
	}
}
