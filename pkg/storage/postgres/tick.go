package postgres

import (
	"context"
	"fmt"
	"time"

	"tickprobe/pkg/terminal"

	"gorm.io/gorm/clause"
)

// tickConflictColumns must match the idx_tick_identity unique index.
var tickConflictColumns = []clause.Column{
	{Name: "symbol"},
	{Name: "time_msc"},
	{Name: "flags"},
	{Name: "bid"},
	{Name: "ask"},
	{Name: "last"},
}

// RecordTicks inserts ticks for symbol, skipping rows already archived.
func (p *PostgresClient) RecordTicks(ctx context.Context, symbol string, ticks []terminal.Tick) error {
	if len(ticks) == 0 {
		return nil
	}

	records := make([]*TickRecord, 0, len(ticks))
	for _, t := range ticks {
		records = append(records, ToTickRecord(symbol, t))
	}

	tx := p.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   tickConflictColumns,
		DoNothing: true,
	}).Create(&records)

	if tx.Error != nil {
		return fmt.Errorf("insert ticks: symbol=%s: %w", symbol, tx.Error)
	}
	return nil
}

// GetTicks returns archived ticks of symbol in [from, to), oldest first.
func (p *PostgresClient) GetTicks(ctx context.Context, symbol string, from, to time.Time) ([]TickRecord, error) {
	var ticks []TickRecord
	err := p.DB.WithContext(ctx).
		Where("symbol = ? AND time_msc >= ? AND time_msc < ?", symbol, from, to).
		Order("time_msc").
		Find(&ticks).Error
	if err != nil {
		return nil, err
	}
	return ticks, nil
}

func (p *PostgresClient) DeleteOldTicks(ctx context.Context, before time.Time) error {
	return p.DB.WithContext(ctx).
		Where("time_msc < ?", before).
		Delete(&TickRecord{}).Error
}

// ToTickRecord converts a terminal tick into a TickRecord for DB insertion.
func ToTickRecord(symbol string, t terminal.Tick) *TickRecord {
	return &TickRecord{
		Symbol:     symbol,
		TimeMsc:    t.Timestamp().UTC(),
		Flags:      uint32(t.Flags),
		Bid:        t.Bid,
		Ask:        t.Ask,
		Last:       t.Last,
		Volume:     int64(t.Volume),
		VolumeReal: t.VolumeReal,
	}
}
