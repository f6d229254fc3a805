// Package di provides dependency injection factories for creating application components.
package di

import (
	"nifty_backend/internal/platform/externalapi/upstox"
	infrahttp "nifty_backend/internal/platform/http"
)

// NewUpstoxClient creates a fully configured Upstox client.
// The HTTP client carries no client-level timeout; each endpoint applies
// its own deadline from the config (the instrument dump download is
// allowed more time than quote and history calls).
func NewUpstoxClient() *upstox.Client {
	cfg := upstox.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(0)
	return upstox.NewClient(cfg, httpClient)
}
