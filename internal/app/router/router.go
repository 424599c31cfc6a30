package router

import (
	"github.com/gin-gonic/gin"

	authhandler "stock_watchlist/internal/feature/auth/transport/handler"
	quotehandler "stock_watchlist/internal/feature/quotes/transport/handler"
	watchlisthandler "stock_watchlist/internal/feature/watchlist/transport/handler"
	"stock_watchlist/internal/platform/http/handler"
	jwtmw "stock_watchlist/internal/platform/jwt"
)

func NewRouter(authHandler *authhandler.AuthHandler, quotes *quotehandler.QuoteHandler,
	watchlist *watchlisthandler.WatchlistHandler) *gin.Engine {
	r := gin.Default()

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	// 新規ユーザー登録
	r.POST("/signup", authHandler.Signup)
	// ログイン（JWT 発行）
	r.POST("/login", authHandler.Login)

	// 認証必須のルート
	auth := r.Group("/")
	auth.Use(jwtmw.AuthRequired())
	{
		auth.GET("/stocks", quotes.List)
		auth.GET("/stocks/search", quotes.Search)
		auth.GET("/watchlist", watchlist.List)
		auth.GET("/watchlist/:symbol", watchlist.Membership)
		auth.POST("/watchlist/:symbol", watchlist.Add)
		auth.DELETE("/watchlist/:symbol", watchlist.Remove)
	}

	return r
}
