package export

import (
	"encoding/csv"
	"os"
	"strconv"

	"nifty_backend/internal/feature/candles/domain/entity"
)

// CSVWriter writes one {symbol}_data.csv per series with a
// Date,Open,High,Low,Close,Volume header row.
type CSVWriter struct {
	Dir string
}

func (w *CSVWriter) Extension() string { return "csv" }

func (w *CSVWriter) Write(series entity.Series) error {
	f, err := os.Create(filePath(w.Dir, series.Symbol, w.Extension()))
	if err != nil {
		return err
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if err := cw.Write([]string{"Date", "Open", "High", "Low", "Close", "Volume"}); err != nil {
		return err
	}
	for _, r := range toRows(series.Candles) {
		if err := cw.Write([]string{
			r.Date,
			floatStr(r.Open),
			floatStr(r.High),
			floatStr(r.Low),
			floatStr(r.Close),
			strconv.FormatInt(r.Volume, 10),
		}); err != nil {
			return err
		}
	}
	return cw.Error()
}

func floatStr(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
