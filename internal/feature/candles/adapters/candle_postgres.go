package adapters

import (
	"context"
	"time"

	"nifty_backend/internal/feature/candles/domain/entity"
	"nifty_backend/internal/feature/candles/usecase"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type candlePostgres struct {
	db *gorm.DB
}

var _ usecase.CandleRepository = (*candlePostgres)(nil)

func NewCandleRepository(db *gorm.DB) *candlePostgres {
	return &candlePostgres{db: db}
}

type CandleModel struct {
	ID       uint      `gorm:"primaryKey"`
	Symbol   string    `gorm:"size:32;not null;uniqueIndex:candle_sym_int_date,priority:1"`
	Interval string    `gorm:"size:16;not null;uniqueIndex:candle_sym_int_date,priority:2"`
	Date     time.Time `gorm:"not null;uniqueIndex:candle_sym_int_date,priority:3"`

	Open   float64 `gorm:"not null"`
	High   float64 `gorm:"not null"`
	Low    float64 `gorm:"not null"`
	Close  float64 `gorm:"not null"`
	Volume int64   `gorm:"not null;default:0"`
}

func (CandleModel) TableName() string {
	return "candles"
}

func toModel(symbol, interval string, e entity.Candle) CandleModel {
	return CandleModel{
		Symbol:   symbol,
		Interval: interval,
		Date:     e.Date,
		Open:     e.Open,
		High:     e.High,
		Low:      e.Low,
		Close:    e.Close,
		Volume:   e.Volume,
	}
}

func (r *candlePostgres) UpsertSeries(ctx context.Context, series entity.Series, interval string) error {
	if series.Empty() {
		return nil
	}
	ms := make([]CandleModel, 0, len(series.Candles))
	for _, e := range series.Candles {
		ms = append(ms, toModel(series.Symbol, interval, e))
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}, {Name: "interval"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"open", "high", "low", "close", "volume"}),
	}).Create(&ms).Error
}

func (r *candlePostgres) Find(ctx context.Context, symbol, interval string, outputsize int) ([]entity.Candle, error) {
	var rows []CandleModel
	q := r.db.WithContext(ctx).
		Where(`symbol = ? AND "interval" = ?`, symbol, interval).
		Order(`"date" DESC`)
	if outputsize > 0 {
		q = q.Limit(outputsize)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	// 直近N件に絞ったうえで日付昇順に並べ直す
	out := make([]entity.Candle, len(rows))
	for i, m := range rows {
		out[len(rows)-1-i] = entity.Candle{
			Date:   m.Date,
			Open:   m.Open,
			High:   m.High,
			Low:    m.Low,
			Close:  m.Close,
			Volume: m.Volume,
		}
	}
	return out, nil
}
