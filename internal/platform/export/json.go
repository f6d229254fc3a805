package export

import (
	"encoding/json"
	"os"

	"nifty_backend/internal/feature/candles/domain/entity"
)

// JSONWriter writes one {symbol}_data.json per series (indented array).
type JSONWriter struct {
	Dir string
}

func (w *JSONWriter) Extension() string { return "json" }

func (w *JSONWriter) Write(series entity.Series) error {
	f, err := os.Create(filePath(w.Dir, series.Symbol, w.Extension()))
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(toRows(series.Candles))
}
