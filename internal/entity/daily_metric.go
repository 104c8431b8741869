package entity

import (
	"time"

	"gorm.io/datatypes"
)

// DailyMetric is one day's OHLCV observation for a ticker. Rows are immutable once created.
type DailyMetric struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Symbol       string         `gorm:"type:varchar(20);not null;uniqueIndex:idx_daily_metrics_symbol_date" json:"symbol"`
	Date         string         `gorm:"type:varchar(10);not null;uniqueIndex:idx_daily_metrics_symbol_date" json:"date"`
	OpenPrice    float64        `json:"open_price"`
	ClosePrice   float64        `json:"close_price"`
	HighPrice    float64        `json:"high_price"`
	LowPrice     float64        `json:"low_price"`
	Volume       int64          `json:"volume"`
	VWAP         float64        `gorm:"column:vwap" json:"vwap"`
	Transactions int64          `json:"transactions"`
	RawData      datatypes.JSON `gorm:"type:jsonb" json:"raw_data"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the DailyMetric model.
func (DailyMetric) TableName() string {
	return "daily_metrics"
}
