package upstox

import (
	"context"
	"net/http"
	"time"
)

const (
	// apiVersion is sent on every authenticated call; the provider
	// rejects requests without it.
	apiVersion = "2.0"
	// statusSuccess is the envelope status of a well-formed response.
	statusSuccess = "success"
)

// Client はUpstox REST APIから株価データを取得するクライアントです。
// 銘柄リファレンス・ライブ気配値・日足ヒストリカルの3系統のエンドポイントを扱います。
type Client struct {
	cfg    Config
	client *http.Client
}

// NewClient は指定された設定とHTTPクライアントでClientの新しいインスタンスを生成します。
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client}
}

// withTimeout は d が正のときだけ ctx に期限を課します。
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}

// newAPIRequest は認証ヘッダ付きのGETリクエストを組み立てます。
func (c *Client) newAPIRequest(ctx context.Context, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Api-Version", apiVersion)
	return req, nil
}

// Ping は指定銘柄の気配値を1件取得してAPIとの疎通を確認します。
// 取得した値そのものは捨て、到達可否だけを返します。
func (c *Client) Ping(ctx context.Context, instrumentKey string) error {
	_, _, err := c.LastPrice(ctx, instrumentKey)
	return err
}
