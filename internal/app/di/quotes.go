// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"

	"stock_watchlist/internal/feature/quotes/usecase"
	"stock_watchlist/internal/platform/cache"
	"stock_watchlist/internal/platform/externalapi/yahoofinance"
	infrahttp "stock_watchlist/internal/platform/http"
)

// NewQuoteProvider creates a fully configured Yahoo Finance provider with
// HTTP client. If Redis is available the provider is wrapped with a short
// lived quote cache; otherwise quotes always go upstream.
func NewQuoteProvider(rdb *redis.Client) usecase.QuoteProvider {
	cfg := yahoofinance.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	provider := yahoofinance.NewYahooFinanceProvider(cfg, httpClient)
	if rdb == nil {
		return provider
	}
	return cache.NewCachingQuoteProvider(rdb, time.Minute, provider, "quote")
}
