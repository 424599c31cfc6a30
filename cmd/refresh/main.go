// Command refresh re-resolves every cached instrument through the quote
// provider so the local store never serves stale prices. It runs once by
// default; set REFRESH_CRON to a cron expression to run on a schedule.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"stock_watchlist/internal/app/di"
	quotesadapters "stock_watchlist/internal/feature/quotes/adapters"
	quotesusecase "stock_watchlist/internal/feature/quotes/usecase"
	infradb "stock_watchlist/internal/platform/db"
	"stock_watchlist/internal/shared/ratelimiter"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] .env file not found, using environment variables")
	}

	db := infradb.OpenDB()
	instrumentRepo := quotesadapters.NewInstrumentRepository(db)

	// リフレッシュは常に最新値が欲しいので、Redisキャッシュは通さない
	provider := di.NewQuoteProvider(nil)

	rl := ratelimiter.NewRateLimiter(60, time.Minute)
	uc := quotesusecase.NewRefreshUsecase(provider, instrumentRepo, rl)

	refresh := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		symbols, err := instrumentRepo.ListSymbols(ctx)
		if err != nil {
			log.Println("[ERROR] failed to load symbols:", err)
			return
		}
		if err := uc.RefreshAll(ctx, symbols); err != nil {
			log.Println("[ERROR] refresh failed:", err)
			return
		}
		log.Printf("refresh ok (%d symbols)", len(symbols))
	}

	spec := os.Getenv("REFRESH_CRON")
	if spec == "" {
		refresh()
		return
	}

	c := cron.New()
	if _, err := c.AddFunc(spec, refresh); err != nil {
		log.Fatalf("invalid REFRESH_CRON %q: %v", spec, err)
	}
	log.Printf("refresh scheduled: %s", spec)
	c.Run()
}
