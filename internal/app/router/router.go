package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "nifty_backend/internal/feature/auth/transport/handler"
	candlehandler "nifty_backend/internal/feature/candles/transport/handler"
	instrumenthandler "nifty_backend/internal/feature/instruments/transport/handler"
	quotehandler "nifty_backend/internal/feature/quotes/transport/handler"
	"nifty_backend/internal/platform/http/handler"
	jwtmw "nifty_backend/internal/platform/jwt"
)

func NewRouter(authHandler *authhandler.AuthHandler, quotes *quotehandler.QuoteHandler,
	candles *candlehandler.CandlesHandler, instruments *instrumenthandler.InstrumentHandler) *gin.Engine {
	r := gin.Default()

	// ブラウザのダッシュボードから叩けるようにCORSを許可
	r.Use(cors.Default())

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	// 新規ユーザー登録
	r.POST("/signup", authHandler.Signup)
	// ログイン（JWT 発行）
	r.POST("/login", authHandler.Login)

	// 認証必須のルート
	// jwtmw.AuthRequired() ミドルウェアを適用
	// → リクエストヘッダーに JWT が必要になる
	auth := r.Group("/")
	auth.Use(jwtmw.AuthRequired())
	{
		auth.GET("/quotes/:symbol", quotes.GetQuoteHandler)
		auth.GET("/quotes/:symbol/ohlc", quotes.GetSessionOHLCHandler)
		auth.GET("/candles/:symbol", candles.GetCandlesHandler)
		auth.GET("/instruments", instruments.List)
	}

	return r
}
