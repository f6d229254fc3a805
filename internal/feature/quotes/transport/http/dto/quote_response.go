// Package dto defines data transfer objects for the quotes HTTP API.
package dto

// QuoteResponse は現在価格のレスポンスDTOです。
type QuoteResponse struct {
	Symbol      string  `json:"symbol"`
	Price       float64 `json:"price"`
	Kind        string  `json:"kind"`                   // "live" または "last_session"
	AsOf        string  `json:"as_of"`                  // RFC3339
	SessionDate string  `json:"session_date,omitempty"` // YYYY-MM-DD、last_sessionのときのみ
}

// SessionOHLCResponse は当日セッション四本値のレスポンスDTOです。
type SessionOHLCResponse struct {
	Symbol    string  `json:"symbol"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	LastPrice float64 `json:"last_price"`
	AsOf      string  `json:"as_of"` // RFC3339
}
