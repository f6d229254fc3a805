// Package entity defines the domain models for the instruments feature.
package entity

// Instrument represents a tradable security on the exchange.
// InstrumentKey is the provider-specific identifier (e.g. "NSE_EQ|INE002A01018")
// and is treated as an opaque token everywhere outside the provider adapter.
type Instrument struct {
	Symbol        string // Trading symbol (e.g. "RELIANCE")
	InstrumentKey string // Provider instrument identifier
}
