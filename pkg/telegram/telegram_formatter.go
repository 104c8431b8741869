package telegram

import (
	"fmt"
	"strings"
	"time"

	"golang-stock-intel/internal/pipeline/dto"
	"golang-stock-intel/pkg/utils"
)

var markdownEscaper = strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")

// FormatDailyReport formats an observation and its analysis into a Markdown message.
func FormatDailyReport(data dto.StockData, analysis dto.AnalysisResult) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("📊 *Daily Report %s* (%s)\n\n", escape(data.Symbol), data.Date))

	sb.WriteString("💹 *Price Data:*\n")
	sb.WriteString(fmt.Sprintf("• Open: $%.2f\n", data.Open))
	sb.WriteString(fmt.Sprintf("• Close: $%.2f\n", data.Close))
	sb.WriteString(fmt.Sprintf("• High: $%.2f\n", data.High))
	sb.WriteString(fmt.Sprintf("• Low: $%.2f\n", data.Low))
	sb.WriteString(fmt.Sprintf("• Volume: %s\n", utils.FormatThousands(data.Volume)))
	if pct, ok := data.ChangePercent(); ok {
		sb.WriteString(fmt.Sprintf("• Change: $%+.2f (%+.2f%%)\n\n", data.Change(), pct))
	} else {
		sb.WriteString(fmt.Sprintf("• Change: $%+.2f (n/a)\n\n", data.Change()))
	}

	var sentimentIcon string
	switch analysis.Sentiment {
	case "bullish":
		sentimentIcon = "🟢"
	case "bearish":
		sentimentIcon = "🔴"
	default:
		sentimentIcon = "🟡"
	}

	sb.WriteString("🧠 *AI Analysis:*\n")
	sb.WriteString(fmt.Sprintf("%s Sentiment: *%s*\n", sentimentIcon, strings.ToUpper(analysis.Sentiment)))
	sb.WriteString(fmt.Sprintf("⚠️ Risk Score: %d/10\n", analysis.RiskScore))
	sb.WriteString(fmt.Sprintf("🎯 Price Prediction: $%.2f\n\n", analysis.PricePrediction))

	sb.WriteString("💡 *Recommendations:*\n")
	for i, rec := range analysis.Recommendations {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, escape(rec)))
	}

	sb.WriteString(fmt.Sprintf("\n📝 *Summary:*\n_%s_\n\n", escape(analysis.Summary)))
	sb.WriteString(fmt.Sprintf("🤖 Model: %s\n", escape(analysis.ModelUsed)))

	return sb.String()
}

// FormatErrorAlertMessage formats a pipeline failure.
func FormatErrorAlertMessage(at time.Time, errType string, errMsg string, data string) string {
	return fmt.Sprintf(`📛 [ERROR ALERT]
%s
🔧 %s
⚠️ %s

📄 Data: %s
`, utils.PrettyDate(at), escape(errType), escape(errMsg), escape(data))
}

func escape(s string) string {
	return markdownEscaper.Replace(s)
}
