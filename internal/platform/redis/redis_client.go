// Package redis は共有Redisクライアントの生成を担います。
package redis

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultHost = "localhost"
	defaultPort = "6379"

	// 起動時の疎通確認に許す時間
	pingTimeout = 5 * time.Second
)

// NewRedisClient は環境変数（REDIS_HOST, REDIS_PORT, REDIS_PASSWORD）から
// Redisクライアントを生成し、接続確認まで行います。未設定の項目は
// ローカル開発向けのデフォルトに倒します。
func NewRedisClient() (*redis.Client, error) {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		host = defaultHost
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = defaultPort
	}
	addr := host + ":" + port

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Error("Redis connection failed", "address", addr, "error", err)
		return nil, err
	}

	slog.Info("Redis connection successful", "address", addr)
	return rdb, nil
}
