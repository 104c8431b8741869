package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"golang-stock-intel/internal/pipeline/dto"
)

func TestBuildStockAnalysisPrompt(t *testing.T) {
	prompt := BuildStockAnalysisPrompt(dto.StockData{
		Symbol: "AAPL", Date: "2024-01-15",
		Open: 150.25, Close: 152.80, High: 154.20, Low: 149.50, Volume: 25000000,
	})

	assert.Contains(t, prompt, "AAPL on 2024-01-15")
	assert.Contains(t, prompt, "Open: $150.25")
	assert.Contains(t, prompt, "Close: $152.80")
	assert.Contains(t, prompt, "Volume: 25,000,000")
	assert.Contains(t, prompt, "Change: $+2.55 (+1.70%)")
	assert.Contains(t, prompt, `"risk_score"`)
	assert.Contains(t, prompt, `"recommendations"`)
	assert.Contains(t, prompt, "JSON format only")
}

func TestBuildStockAnalysisPromptZeroOpen(t *testing.T) {
	prompt := BuildStockAnalysisPrompt(dto.StockData{Symbol: "X", Date: "2024-01-15", Close: 10})
	assert.Contains(t, prompt, "(n/a)")
}
