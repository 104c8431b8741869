package repository

import (
	"fmt"

	"golang-stock-intel/internal/pipeline/dto"
	"golang-stock-intel/pkg/utils"
)

// BuildStockAnalysisPrompt renders the analysis request for one observation.
func BuildStockAnalysisPrompt(data dto.StockData) string {
	changePct := "n/a"
	if pct, ok := data.ChangePercent(); ok {
		changePct = fmt.Sprintf("%+.2f%%", pct)
	}

	return fmt.Sprintf(`Analyze this stock data for %s on %s:

Open: $%.2f
Close: $%.2f
High: $%.2f
Low: $%.2f
Volume: %s
Change: $%+.2f (%s)

Provide analysis in JSON format only, with no other text:
{
  "sentiment": "bullish|bearish|neutral",
  "risk_score": 1-10,
  "recommendations": ["recommendation 1", "recommendation 2", "recommendation 3"],
  "price_prediction": next_day_price_estimate,
  "summary": "brief analysis summary"
}
`, data.Symbol, data.Date, data.Open, data.Close, data.High, data.Low,
		utils.FormatThousands(data.Volume), data.Change(), changePct)
}
