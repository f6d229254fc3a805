package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"nifty_backend/internal/app/di"
	"nifty_backend/internal/app/router"
	authadapters "nifty_backend/internal/feature/auth/adapters"
	authhandler "nifty_backend/internal/feature/auth/transport/handler"
	authusecase "nifty_backend/internal/feature/auth/usecase"
	candlehandler "nifty_backend/internal/feature/candles/transport/handler"
	candleusecase "nifty_backend/internal/feature/candles/usecase"
	instrumenthandler "nifty_backend/internal/feature/instruments/transport/handler"
	instrumentusecase "nifty_backend/internal/feature/instruments/usecase"
	quotehandler "nifty_backend/internal/feature/quotes/transport/handler"
	quoteusecase "nifty_backend/internal/feature/quotes/usecase"
	"nifty_backend/internal/platform/db"
	jwtmw "nifty_backend/internal/platform/jwt"
	infraredis "nifty_backend/internal/platform/redis"
	"nifty_backend/internal/shared/marketclock"
)

// registryLoadTimeout は起動時の銘柄データセット取得に許す時間です。
const registryLoadTimeout = 60 * time.Second

// tokenLifetime は発行するJWTの有効期間です。
const tokenLifetime = 24 * time.Hour

func main() {
	// .env はローカル開発用。無ければシステム環境変数だけで動かします。
	if err := godotenv.Load(".env"); err != nil {
		log.Println("[INFO] .env not found; using system environment variables")
	}

	// db
	gormDB := db.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// 銘柄レジストリ。データセット取得に失敗しても組み込みの
	// フォールバックユニバースで必ず起動します。
	upstoxClient := di.NewUpstoxClient()

	loadCtx, cancel := context.WithTimeout(context.Background(), registryLoadTimeout)
	registry := instrumentusecase.NewRegistryUsecase(upstoxClient).LoadRegistry(loadCtx)
	cancel()

	// Repository
	userRepo := authadapters.NewUserRepository(gormDB)
	candleRepo := di.NewCandleRepository(gormDB, rdb)

	// Usecase
	tokens := jwtmw.NewGenerator(os.Getenv(jwtmw.EnvKeyJWTSecret), tokenLifetime)
	authUC := authusecase.NewAuthUsecase(userRepo, tokens)
	candlesUC := candleusecase.NewCandlesUsecase(candleRepo)
	historyUC := candleusecase.NewHistoryUsecase(upstoxClient)
	quoteUC := quoteusecase.NewQuoteUsecase(registry, marketclock.NewIST(), upstoxClient, upstoxClient, historyUC)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	quoteH := quotehandler.NewQuoteHandler(quoteUC)
	candlesH := candlehandler.NewCandlesHandler(candlesUC)
	instrumentH := instrumenthandler.NewInstrumentHandler(registry)

	// ルータ生成
	r := router.NewRouter(authH, quoteH, candlesH, instrumentH)

	// JWT_SECRETチェック（開発中の注意喚起）
	if os.Getenv(jwtmw.EnvKeyJWTSecret) == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	if err := r.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
