// Package upstox provides a client for the Upstox market data API.
package upstox

import (
	"os"
	"time"
)

const (
	// DefaultBaseURL is the Upstox v2 REST endpoint.
	DefaultBaseURL = "https://api.upstox.com/v2"
	// DefaultInstrumentsURL is the public gzip JSON dump of every tradable
	// instrument on the exchange, refreshed daily by the provider.
	DefaultInstrumentsURL = "https://assets.upstox.com/market-quote/instruments/exchange/complete.json.gz"
)

// Config holds configuration for the Upstox API client.
type Config struct {
	AccessToken     string        // OAuth access token for quote/history endpoints
	BaseURL         string        // Base URL for the API
	InstrumentsURL  string        // URL of the instrument reference dump
	Timeout         time.Duration // Per-call timeout for quote/history requests
	DownloadTimeout time.Duration // Timeout for the instrument dump download
}

// LoadConfig loads Upstox configuration from environment variables.
// Unset URLs fall back to the public production endpoints.
func LoadConfig() Config {
	cfg := Config{
		AccessToken:     os.Getenv("UPSTOX_ACCESS_TOKEN"),
		BaseURL:         os.Getenv("UPSTOX_BASE_URL"),
		InstrumentsURL:  os.Getenv("UPSTOX_INSTRUMENTS_URL"),
		Timeout:         10 * time.Second,
		DownloadTimeout: 30 * time.Second,
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.InstrumentsURL == "" {
		cfg.InstrumentsURL = DefaultInstrumentsURL
	}
	return cfg
}
