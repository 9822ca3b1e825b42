package postgres

import "time"

// TickRecord is one archived terminal tick.
type TickRecord struct {
	ID uint `gorm:"primaryKey"`

	// unique index: several ticks can share a millisecond, so the prices are part of the key
	Symbol  string    `gorm:"type:text;not null;index:idx_tick_symbol;index:idx_tick_identity,unique"`
	TimeMsc time.Time `gorm:"not null;index:idx_tick_identity,unique"`
	Flags   uint32    `gorm:"not null;index:idx_tick_identity,unique"`

	Bid  float64 `gorm:"type:numeric;not null;index:idx_tick_identity,unique"`
	Ask  float64 `gorm:"type:numeric;not null;index:idx_tick_identity,unique"`
	Last float64 `gorm:"type:numeric;not null;index:idx_tick_identity,unique"`

	Volume     int64   `gorm:"not null"`
	VolumeReal float64 `gorm:"type:numeric;not null"`

	RecordedAt time.Time `gorm:"autoCreateTime;index:idx_tick_recorded_at"`
}

// TableName overrides the default table name for GORM.
func (TickRecord) TableName() string {
	return "tick_record"
}
