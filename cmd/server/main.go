package main

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"stock_watchlist/internal/app/di"
	"stock_watchlist/internal/app/router"
	authadapters "stock_watchlist/internal/feature/auth/adapters"
	authhandler "stock_watchlist/internal/feature/auth/transport/handler"
	authusecase "stock_watchlist/internal/feature/auth/usecase"
	quotesadapters "stock_watchlist/internal/feature/quotes/adapters"
	quotehandler "stock_watchlist/internal/feature/quotes/transport/handler"
	quotesusecase "stock_watchlist/internal/feature/quotes/usecase"
	watchlistadapters "stock_watchlist/internal/feature/watchlist/adapters"
	watchlisthandler "stock_watchlist/internal/feature/watchlist/transport/handler"
	watchlistusecase "stock_watchlist/internal/feature/watchlist/usecase"
	infradb "stock_watchlist/internal/platform/db"
	jwtmw "stock_watchlist/internal/platform/jwt"
	infraredis "stock_watchlist/internal/platform/redis"
)

func main() {
	// .env（ローカル開発用）
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] .env file not found, using environment variables")
	}

	// db
	db := infradb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without quote cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	userRepo := authadapters.NewUserMySQL(db)
	instrumentRepo := quotesadapters.NewInstrumentRepository(db)
	watchlistRepo := watchlistadapters.NewWatchlistRepository(db)

	// 外部クオートプロバイダー（Redisが使えればキャッシュ付き）
	provider := di.NewQuoteProvider(rdb)

	// JWT_SECRETチェック（開発中の注意喚起）
	secret := os.Getenv(jwtmw.EnvKeyJWTSecret)
	if secret == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}
	tokenGen := jwtmw.NewGenerator(secret, 24*time.Hour)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, tokenGen)
	quoteUC := quotesusecase.NewQuoteUsecase(provider, instrumentRepo)
	watchlistUC := watchlistusecase.NewWatchlistUsecase(watchlistRepo, instrumentRepo, userRepo)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	quoteH := quotehandler.NewQuoteHandler(quoteUC)
	watchlistH := watchlisthandler.NewWatchlistHandler(watchlistUC)

	// ルータ生成
	router := router.NewRouter(authH, quoteH, watchlistH)

	if err := router.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
