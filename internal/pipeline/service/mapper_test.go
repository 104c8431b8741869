package service

import (
	"context"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-stock-intel/internal/pipeline/dto"
)

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "plain", sanitizeText("plain"))
	assert.Equal(t, "ab", sanitizeText("a\x00b"))
	assert.Equal(t, "�{}", sanitizeText("\xff\xfe{}"))
	assert.Equal(t, "", sanitizeText(""))
}

func TestToAIRecommendationEntitySanitizesModelText(t *testing.T) {
	rec := toAIRecommendationEntity(7, dto.AnalysisResult{
		Date:            "2024-01-15",
		Sentiment:       "bullish",
		RiskScore:       4,
		Recommendations: []string{"hold\x00", "buy \xff dips"},
		Summary:         "strong\x00 day",
		ModelUsed:       "model",
		RawResponse:     "\xff\xfe{\"sentiment\": \"bullish\"}\x00",
	})

	assert.Equal(t, uint(7), rec.MetricsID)
	assert.Equal(t, []string{"hold", "buy � dips"}, []string(rec.Recommendations))
	assert.Equal(t, "strong day", rec.FullAnalysis)
	assert.Equal(t, "�{\"sentiment\": \"bullish\"}", rec.RawResponse)
	assert.True(t, utf8.ValidString(rec.RawResponse))
}

func TestRunDailyStoresSanitizedRawResponse(t *testing.T) {
	f := newPipelineFixture()
	f.ai.text = "\xff\xfe" + validModelText + "\x00"

	report, err := f.service(true).RunDaily(context.Background(), "2024-01-15", false)

	require.NoError(t, err)
	assert.Equal(t, "model", report.AnalysisPath)
	require.Len(t, f.recRepo.rows, 1)
	stored := f.recRepo.rows[0].RawResponse
	assert.True(t, utf8.ValidString(stored))
	assert.NotContains(t, stored, "\x00")
	assert.Contains(t, stored, `"sentiment": "bearish"`)
}
