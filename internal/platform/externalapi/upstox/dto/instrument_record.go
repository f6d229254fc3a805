// Package dto defines the JSON shapes returned by the Upstox API.
package dto

// InstrumentRecord is one entry of the exchange-wide instrument dump.
// The dump carries many more fields (lot size, tick size, expiry) that
// this application never reads; only the ones needed for filtering and
// key resolution are decoded.
type InstrumentRecord struct {
	Segment        string `json:"segment"`
	InstrumentType string `json:"instrument_type"`
	TradingSymbol  string `json:"trading_symbol"`
	InstrumentKey  string `json:"instrument_key"`
}
