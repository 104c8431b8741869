package entity

import (
	"time"

	"github.com/lib/pq"
)

// AIRecommendation is an analysis computed from one DailyMetric.
type AIRecommendation struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Date            string         `gorm:"type:varchar(10);not null" json:"date"`
	MetricsID       uint           `gorm:"not null;index" json:"metrics_id"`
	Metrics         *DailyMetric   `gorm:"foreignKey:MetricsID" json:"-"`
	Sentiment       string         `gorm:"type:varchar(20);not null" json:"sentiment"`
	Recommendations pq.StringArray `gorm:"type:text[]" json:"recommendations"`
	RiskScore       int            `gorm:"not null" json:"risk_score"`
	PricePrediction float64        `json:"price_prediction"`
	FullAnalysis    string         `gorm:"type:text" json:"full_analysis"`
	ModelUsed       string         `gorm:"type:varchar(255)" json:"model_used"`
	RawResponse     string         `gorm:"type:text" json:"raw_response"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the AIRecommendation model.
func (AIRecommendation) TableName() string {
	return "ai_recommendations"
}
