// Package cache provides caching implementations for provider interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"stock_watchlist/internal/feature/quotes/domain/entity"
	"stock_watchlist/internal/feature/quotes/usecase"
)

// CachingQuoteProvider decorates a QuoteProvider with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying provider. Only successful, positively priced
// quotes are cached; misses and zero-price answers always go upstream.
type CachingQuoteProvider struct {
	inner     usecase.QuoteProvider
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// NewCachingQuoteProvider decorates a QuoteProvider with Redis caching.
// If ttl is 0, it defaults to 1 minute. If namespace is empty, it uses "quote".
func NewCachingQuoteProvider(rdb *redis.Client, ttl time.Duration, inner usecase.QuoteProvider, namespace string) *CachingQuoteProvider {
	if ttl <= 0 {
		ttl = time.Minute
	}
	if namespace == "" {
		namespace = "quote"
	}
	return &CachingQuoteProvider{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// GetQuote retrieves a quote, checking the cache first then falling back to
// the upstream provider.
func (c *CachingQuoteProvider) GetQuote(ctx context.Context, symbol string) (*entity.Instrument, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.GetQuote(ctx, symbol)
	}

	key := c.cacheKey(symbol)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.Instrument
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to the upstream provider
	out, err := c.inner.GetQuote(ctx, symbol)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort); never cache "no market data"
	if out != nil && out.Price > 0 {
		if b, err := json.Marshal(out); err == nil {
			_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
		}
	}

	return out, nil
}

// SearchSymbols passes through to the upstream provider. Candidate lists go
// stale quickly and every candidate is re-priced via GetQuote anyway, so
// caching them buys nothing.
func (c *CachingQuoteProvider) SearchSymbols(ctx context.Context, query string) ([]string, error) {
	return c.inner.SearchSymbols(ctx, query)
}

// cacheKey generates the cache key for a symbol.
func (c *CachingQuoteProvider) cacheKey(symbol string) string {
	return fmt.Sprintf("%s:%s", c.namespace, safe(symbol))
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
