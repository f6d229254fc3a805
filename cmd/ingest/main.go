package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"nifty_backend/internal/app/di"
	candleusecase "nifty_backend/internal/feature/candles/usecase"
	instrumentusecase "nifty_backend/internal/feature/instruments/usecase"
	"nifty_backend/internal/platform/db"
	"nifty_backend/internal/platform/export"
	infraredis "nifty_backend/internal/platform/redis"
	"nifty_backend/internal/shared/ratelimiter"
)

// ingestTimeout はユニバース一括収集と永続化に許す時間です。
const ingestTimeout = 30 * time.Minute

func main() {
	// .env はローカル開発用。無ければシステム環境変数だけで動かします。
	if err := godotenv.Load(".env"); err != nil {
		log.Println("[INFO] .env not found; using system environment variables")
	}

	gormDB := db.OpenDB()

	// Redisが生きていればUpsert時に古いキャッシュを無効化できる。無くても動く。
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Ingesting without cache invalidation.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	client := di.NewUpstoxClient()

	ctx, cancel := context.WithTimeout(context.Background(), ingestTimeout)
	defer cancel()

	registry := instrumentusecase.NewRegistryUsecase(client).LoadRegistry(ctx)

	// 収集前にAPIとの疎通を確認する。トークン切れはここで気づけるが、
	// 収集自体はフェイルソフトなので中断はしない。
	// レジストリはフォールバックにより常に1件以上ある。
	probe := registry.Instruments()[0]
	if err := client.Ping(ctx, probe.InstrumentKey); err != nil {
		log.Println("[WARN] Upstox quote endpoint unreachable:", err)
	}

	fetcher := candleusecase.NewHistoryUsecase(client)

	// Upstoxの上限は500リクエスト/分。余裕を持って1秒8回に抑える。
	rl := ratelimiter.NewRateLimiter(8, time.Second)
	collector := candleusecase.NewCollectUsecase(fetcher, registry, rl, envInt("COLLECTOR_WORKERS"))

	// EXPORT_FORMAT が指定されたときだけ銘柄ごとのファイル書き出しを行う
	var writer candleusecase.SeriesWriter
	if format := os.Getenv("EXPORT_FORMAT"); format != "" {
		dir := os.Getenv("EXPORT_DIR")
		if dir == "" {
			dir = "data"
		}
		w, err := export.NewSeriesWriter(format, dir)
		if err != nil {
			log.Fatal(err)
		}
		writer = w
	}

	candleRepo := di.NewCandleRepository(gormDB, rdb)
	uc := candleusecase.NewIngestUsecase(collector, candleRepo, writer)

	if err := uc.IngestAll(ctx, os.Getenv("CANDLE_INTERVAL"), envInt("LOOKBACK_DAYS")); err != nil {
		log.Fatal(err)
	}
	log.Println("ingest ok")
}

// envInt は環境変数を整数として読みます。未設定・不正値は0を返し、
// 各ユースケース側のデフォルトに委ねます。
func envInt(key string) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return 0
	}
	return v
}
