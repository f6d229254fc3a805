package export

import (
	"github.com/parquet-go/parquet-go"

	"nifty_backend/internal/feature/candles/domain/entity"
)

// ParquetWriter writes one {symbol}_data.parquet per series.
type ParquetWriter struct {
	Dir string
}

func (w *ParquetWriter) Extension() string { return "parquet" }

func (w *ParquetWriter) Write(series entity.Series) error {
	return parquet.WriteFile(filePath(w.Dir, series.Symbol, w.Extension()), toRows(series.Candles))
}
