package dto

// HistoricalCandleResponse is the envelope of the historical-candle
// endpoint. Each candle row is a positional array:
//
//	[timestamp, open, high, low, close, volume, open_interest]
//
// The rows are decoded loosely and converted field by field because the
// provider mixes strings and numbers inside one array.
type HistoricalCandleResponse struct {
	Status string `json:"status"`
	Data   struct {
		Candles [][]any `json:"candles"`
	} `json:"data"`
}
