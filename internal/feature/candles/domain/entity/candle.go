// Package entity defines the domain models for the candles feature.
package entity

import (
	"sort"
	"time"
)

// Candle represents OHLCV (Open, High, Low, Close, Volume) data
// for one instrument over one trading session.
type Candle struct {
	Date   time.Time // Session date, normalized to midnight UTC
	Open   float64   // Opening price
	High   float64   // Highest price during the session
	Low    float64   // Lowest price during the session
	Close  float64   // Closing price
	Volume int64     // Trading volume
}

// Series is an ordered sequence of candles for a single symbol,
// ascending by date after normalization.
type Series struct {
	Symbol  string
	Candles []Candle
}

// Empty reports whether the series contains no candles.
func (s Series) Empty() bool {
	return len(s.Candles) == 0
}

// Last returns the most recent candle. ok is false for an empty series.
func (s Series) Last() (Candle, bool) {
	if len(s.Candles) == 0 {
		return Candle{}, false
	}
	return s.Candles[len(s.Candles)-1], true
}

// Normalize sorts candles ascending by date and removes duplicate dates,
// keeping the last-seen candle for each date. Providers may return
// overlapping pages, so duplicate dates are expected occasionally.
// The result has strictly increasing dates; normalizing an already
// normalized slice is a no-op.
func Normalize(candles []Candle) []Candle {
	if len(candles) == 0 {
		return candles
	}

	out := make([]Candle, len(candles))
	copy(out, candles)

	// 安定ソートで同一日付の入力順を保持し、後勝ちのdedupeを成立させる
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})

	deduped := out[:1]
	for _, c := range out[1:] {
		if sameDate(c.Date, deduped[len(deduped)-1].Date) {
			deduped[len(deduped)-1] = c
			continue
		}
		deduped = append(deduped, c)
	}
	return deduped
}

// sameDate reports whether two timestamps fall on the same calendar date in UTC.
func sameDate(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
