// Package entity defines the domain models for the quotes feature.
package entity

import "time"

// QuoteKind identifies how a quote price was obtained.
type QuoteKind string

const (
	// KindLive is a last traded price sampled during an open session.
	KindLive QuoteKind = "live"
	// KindLastSession is the closing price of the last completed session,
	// used when a live price is unavailable.
	KindLastSession QuoteKind = "last_session"
)

// Quote is a best-effort current price for one symbol.
type Quote struct {
	Symbol      string
	Price       float64
	Kind        QuoteKind
	AsOf        time.Time // When the quote was resolved
	SessionDate time.Time // Session the price belongs to; set only for KindLastSession
}

// SessionOHLC is the aggregate quote for the current trading session.
type SessionOHLC struct {
	Symbol    string
	Open      float64
	High      float64
	Low       float64
	Close     float64
	LastPrice float64
	AsOf      time.Time
}
