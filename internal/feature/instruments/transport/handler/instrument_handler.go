package handler

import (
	"net/http"

	"nifty_backend/internal/feature/instruments/domain/entity"
	"nifty_backend/internal/feature/instruments/transport/http/dto"

	"github.com/gin-gonic/gin"
)

// InstrumentRegistry は解決済みの銘柄対応表のインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type InstrumentRegistry interface {
	Instruments() []entity.Instrument
}

// InstrumentHandler は銘柄対応表に関するHTTPリクエストを処理します。
type InstrumentHandler struct {
	registry InstrumentRegistry
}

// NewInstrumentHandler は新しい InstrumentHandler を作成します。
func NewInstrumentHandler(registry InstrumentRegistry) *InstrumentHandler {
	return &InstrumentHandler{registry: registry}
}

// List は監視対象ユニバースの銘柄対応表を返すAPIです。
// 対応表は起動時に解決済みでメモリ上にあるため、このAPIは失敗しません。
func (h *InstrumentHandler) List(c *gin.Context) {
	instruments := h.registry.Instruments()
	out := make([]dto.InstrumentItem, 0, len(instruments))
	for _, inst := range instruments {
		out = append(out, dto.InstrumentItem{Symbol: inst.Symbol, InstrumentKey: inst.InstrumentKey})
	}
	c.JSON(http.StatusOK, out)
}
