package dto

import (
	"encoding/json"
	"math"
)

// StockData is one daily OHLCV observation as handed between source, store and analysis.
type StockData struct {
	ID           uint            `json:"id,omitempty"`
	Symbol       string          `json:"symbol" validate:"required"`
	Date         string          `json:"date" validate:"required,datetime=2006-01-02"`
	Open         float64         `json:"open" validate:"gte=0"`
	Close        float64         `json:"close" validate:"gt=0"`
	High         float64         `json:"high" validate:"gte=0"`
	Low          float64         `json:"low" validate:"gte=0"`
	Volume       int64           `json:"volume" validate:"gte=0"`
	VWAP         float64         `json:"vwap" validate:"gte=0"`
	Transactions int64           `json:"transactions" validate:"gte=0"`
	RawData      json.RawMessage `json:"raw_data,omitempty" swaggertype:"object"`
}

// Persisted reports whether the observation has a row in the store.
func (s StockData) Persisted() bool {
	return s.ID != 0
}

// Change returns the absolute close-minus-open move.
func (s StockData) Change() float64 {
	return s.Close - s.Open
}

// ChangePercent returns the close-versus-open move in percent. ok is false when
// the open price is missing or zero, or the result is not a finite number.
func (s StockData) ChangePercent() (pct float64, ok bool) {
	if s.Open <= 0 {
		return 0, false
	}
	pct = (s.Close - s.Open) / s.Open * 100
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return 0, false
	}
	return pct, true
}

// PolygonOpenCloseResponse is the payload of Polygon's daily open/close endpoint.
type PolygonOpenCloseResponse struct {
	Status       string  `json:"status"`
	From         string  `json:"from"`
	Symbol       string  `json:"symbol"`
	Open         float64 `json:"open"`
	High         float64 `json:"high"`
	Low          float64 `json:"low"`
	Close        float64 `json:"close"`
	Volume       float64 `json:"volume"`
	AfterHours   float64 `json:"afterHours"`
	PreMarket    float64 `json:"preMarket"`
	VWAP         float64 `json:"vwap"`
	Transactions int64   `json:"transactions"`
	Message      string  `json:"message,omitempty"`
}
