package dto

// LTPResponse is the envelope of the market-quote/ltp endpoint.
// Data is keyed by instrument key; a key the provider does not
// recognize is simply absent from the map.
type LTPResponse struct {
	Status string              `json:"status"`
	Data   map[string]LTPEntry `json:"data"`
}

// LTPEntry carries the last traded price of one instrument.
type LTPEntry struct {
	LastTradedPrice float64 `json:"last_price"`
	InstrumentToken string  `json:"instrument_token"`
}

// OHLCResponse is the envelope of the market-quote/ohlc endpoint.
type OHLCResponse struct {
	Status string               `json:"status"`
	Data   map[string]OHLCEntry `json:"data"`
}

// OHLCEntry carries the running session OHLC of one instrument.
type OHLCEntry struct {
	LastTradedPrice float64 `json:"last_price"`
	OHLC            OHLC    `json:"ohlc"`
}

// OHLC is the open/high/low/close block nested in a quote entry.
type OHLC struct {
	Open  float64 `json:"open"`
	High  float64 `json:"high"`
	Low   float64 `json:"low"`
	Close float64 `json:"close"`
}
