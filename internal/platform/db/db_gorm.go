package db

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	authentity "nifty_backend/internal/feature/auth/domain/entity"
	candleadapters "nifty_backend/internal/feature/candles/adapters"
)

// retryInterval は接続リトライの間隔です。
const retryInterval = 3 * time.Second

// Config はPostgres接続の設定を保持します。
type Config struct {
	User     string
	Password string
	Name     string
	Host     string
	Port     string

	// InstanceName はCloud SQLのインスタンス接続名（project:region:instance）です。
	// 設定されている場合、Host/PortよりUnixソケット接続が優先されます。
	InstanceName string
}

// LoadConfigFromEnv は環境変数からデータベース設定を読み込みます。
// DB_PORTが未設定の場合はPostgresの標準ポート5432を使用します。
func LoadConfigFromEnv() Config {
	port := os.Getenv("DB_PORT")
	if port == "" {
		port = "5432"
	}
	return Config{
		User:         os.Getenv("DB_USER"),
		Password:     os.Getenv("DB_PASSWORD"),
		Name:         os.Getenv("DB_NAME"),
		Host:         os.Getenv("DB_HOST"),
		Port:         port,
		InstanceName: os.Getenv("INSTANCE_CONNECTION_NAME"),
	}
}

// BuildDSN は設定からPostgresのDSN文字列を生成します。
// InstanceNameが設定されている場合はCloud SQLのUnixソケット形式を使用します。
func BuildDSN(cfg Config) string {
	if cfg.InstanceName != "" {
		return fmt.Sprintf("host=/cloudsql/%s user=%s password=%s dbname=%s sslmode=disable TimeZone=Asia/Kolkata",
			cfg.InstanceName, cfg.User, cfg.Password, cfg.Name)
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=Asia/Kolkata",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name)
}

// ConnectWithRetry は指定されたタイムアウトまで接続を繰り返し試行します。
// openerは接続方法を差し替え可能にするためのもので、テストではモックを注入できます。
func ConnectWithRetry(dsn string, timeout time.Duration, opener func(dsn string) (*gorm.DB, error)) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("DB connect failed after %s: %w", timeout, err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(retryInterval)
	}
}

// openPostgres は本番用のgorm接続を開きます。
// TranslateErrorを有効にして、重複キー等のドライバーエラーをgormのエラーに変換します。
func openPostgres(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
}

// OpenDB は環境変数の設定でPostgresに接続し、gorm.DBを返します。
// 接続は最大60秒までリトライし、失敗時はプロセスを終了します。
// RUN_MIGRATIONS=trueの場合はスキーマのAutoMigrateを実行します。
func OpenDB() *gorm.DB {
	cfg := LoadConfigFromEnv()
	dsn := BuildDSN(cfg)

	db, err := ConnectWithRetry(dsn, 60*time.Second, openPostgres)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		// マイグレーション（User, Candle）
		if err := db.AutoMigrate(
			&authentity.User{},
			&candleadapters.CandleModel{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}
