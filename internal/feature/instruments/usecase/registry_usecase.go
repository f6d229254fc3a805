// Package usecase implements the business logic for instrument reference data.
package usecase

import (
	"context"
	"log/slog"
	"sort"

	"nifty_backend/internal/feature/instruments/domain/entity"
)

// InstrumentSource abstracts where the exchange instrument dump comes from.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type InstrumentSource interface {
	EquityInstruments(ctx context.Context) ([]entity.Instrument, error)
}

// Registry は取引シンボルからプロバイダ銘柄キーへの不変の対応表です。
// 構築後は読み取り専用なので、複数のgoroutineから同時に参照できます。
type Registry struct {
	keys    map[string]string
	symbols []string
}

// NewRegistry は銘柄スライスから対応表を構築します。
// 同一シンボルが複数回現れた場合は後の出現が優先されます。
func NewRegistry(instruments []entity.Instrument) *Registry {
	keys := make(map[string]string, len(instruments))
	for _, inst := range instruments {
		keys[inst.Symbol] = inst.InstrumentKey
	}
	symbols := make([]string, 0, len(keys))
	for s := range keys {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	return &Registry{keys: keys, symbols: symbols}
}

// Lookup はシンボルに対応する銘柄キーを返します。
func (r *Registry) Lookup(symbol string) (string, bool) {
	key, ok := r.keys[symbol]
	return key, ok
}

// Symbols は登録済みシンボルを辞書順で返します。返り値は呼び出しごとのコピーです。
func (r *Registry) Symbols() []string {
	out := make([]string, len(r.symbols))
	copy(out, r.symbols)
	return out
}

// Instruments は登録内容をシンボル辞書順で返します。
func (r *Registry) Instruments() []entity.Instrument {
	out := make([]entity.Instrument, 0, len(r.symbols))
	for _, s := range r.symbols {
		out = append(out, entity.Instrument{Symbol: s, InstrumentKey: r.keys[s]})
	}
	return out
}

// Len は登録済みシンボル数を返します。
func (r *Registry) Len() int {
	return len(r.symbols)
}

// RegistryUsecase builds the symbol-to-instrument-key registry for the
// watched universe.
type RegistryUsecase struct {
	source InstrumentSource
}

// NewRegistryUsecase creates a new RegistryUsecase with the given source.
func NewRegistryUsecase(source InstrumentSource) *RegistryUsecase {
	return &RegistryUsecase{source: source}
}

// LoadRegistry はユニバースの対応表を構築します。ダンプの取得・解析に
// 失敗した場合や、ユニバースと1件も一致しなかった場合は組み込みの
// フォールバック表に切り替えるため、エラーは返しません。
func (u *RegistryUsecase) LoadRegistry(ctx context.Context) *Registry {
	instruments, err := u.source.EquityInstruments(ctx)
	if err != nil {
		slog.Warn("instrument dump unavailable, falling back to built-in registry", "error", err)
		return NewRegistry(fallbackInstruments)
	}

	wanted := make(map[string]struct{}, len(nifty50Symbols))
	for _, s := range nifty50Symbols {
		wanted[s] = struct{}{}
	}
	matched := make([]entity.Instrument, 0, len(nifty50Symbols))
	for _, inst := range instruments {
		if _, ok := wanted[inst.Symbol]; ok {
			matched = append(matched, inst)
		}
	}
	if len(matched) == 0 {
		slog.Warn("instrument dump matched no universe symbols, falling back to built-in registry")
		return NewRegistry(fallbackInstruments)
	}

	slog.Info("instrument registry loaded", "symbols", len(matched))
	return NewRegistry(matched)
}
