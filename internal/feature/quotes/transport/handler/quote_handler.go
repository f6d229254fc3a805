// Package handler はquotesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"nifty_backend/internal/feature/quotes/domain/entity"
	"nifty_backend/internal/feature/quotes/transport/http/dto"
	"nifty_backend/internal/feature/quotes/usecase"

	"github.com/gin-gonic/gin"
)

// QuoteUsecase は現在価格解決のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type QuoteUsecase interface {
	CurrentPrice(ctx context.Context, symbol string) (entity.Quote, bool, error)
	SessionQuote(ctx context.Context, symbol string) (entity.SessionOHLC, bool, error)
}

// QuoteHandler は現在価格のHTTPリクエストを処理します。
type QuoteHandler struct {
	uc QuoteUsecase
}

// NewQuoteHandler は新しい QuoteHandler を作成します。
func NewQuoteHandler(uc QuoteUsecase) *QuoteHandler {
	return &QuoteHandler{uc: uc}
}

// GetQuoteHandler は銘柄の現在価格を返すAPIです。
//
// ユニバース外のシンボルは404、プロバイダから値が得られなかった場合は
// 502を返します。
//
// エンドポイント例:
// GET /quotes/:symbol
func (h *QuoteHandler) GetQuoteHandler(c *gin.Context) {
	symbol := c.Param("symbol")

	quote, ok, err := h.uc.CurrentPrice(c.Request.Context(), symbol)
	if err != nil {
		if errors.Is(err, usecase.ErrUnknownSymbol) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusBadGateway, gin.H{"error": "price unavailable"})
		return
	}

	out := dto.QuoteResponse{
		Symbol: quote.Symbol,
		Price:  quote.Price,
		Kind:   string(quote.Kind),
		AsOf:   quote.AsOf.UTC().Format(time.RFC3339),
	}
	if quote.Kind == entity.KindLastSession {
		out.SessionDate = quote.SessionDate.UTC().Format("2006-01-02")
	}

	c.JSON(http.StatusOK, out)
}

// GetSessionOHLCHandler は銘柄の当日セッション四本値を返すAPIです。
//
// エンドポイント例:
// GET /quotes/:symbol/ohlc
func (h *QuoteHandler) GetSessionOHLCHandler(c *gin.Context) {
	symbol := c.Param("symbol")

	ohlc, ok, err := h.uc.SessionQuote(c.Request.Context(), symbol)
	if err != nil {
		if errors.Is(err, usecase.ErrUnknownSymbol) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusBadGateway, gin.H{"error": "session quote unavailable"})
		return
	}

	c.JSON(http.StatusOK, dto.SessionOHLCResponse{
		Symbol:    ohlc.Symbol,
		Open:      ohlc.Open,
		High:      ohlc.High,
		Low:       ohlc.Low,
		Close:     ohlc.Close,
		LastPrice: ohlc.LastPrice,
		AsOf:      ohlc.AsOf.UTC().Format(time.RFC3339),
	})
}
