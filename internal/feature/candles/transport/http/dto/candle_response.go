// Package dto defines data transfer objects for the candles HTTP API.
package dto

// CandleResponse はローソク足データのレスポンスDTOです。
type CandleResponse struct {
	Date   string  `json:"date"`   // セッション日付 (YYYY-MM-DD)
	Open   float64 `json:"open"`   // 始値
	High   float64 `json:"high"`   // 高値
	Low    float64 `json:"low"`    // 安値
	Close  float64 `json:"close"`  // 終値
	Volume int64   `json:"volume"` // 出来高
}
