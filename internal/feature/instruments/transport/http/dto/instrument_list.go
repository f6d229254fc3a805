// Package dto defines data transfer objects for the instruments HTTP API.
package dto

// InstrumentItem represents one registry entry in the API response.
type InstrumentItem struct {
	Symbol        string `json:"symbol"`
	InstrumentKey string `json:"instrument_key"`
}
