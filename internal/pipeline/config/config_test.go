package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "AAPL", cfg.Stock.Symbol)
	assert.Equal(t, "openrouter", cfg.AI.Provider)
	assert.Equal(t, 30*time.Second, cfg.AI.Timeout)
	assert.Equal(t, 9, cfg.Scheduler.RunHour)
	assert.Equal(t, 500, cfg.OpenRouter.MaxTokens)
	assert.Equal(t, 5000, cfg.API.Port)
}

func TestLoadLegacyEnvironmentNames(t *testing.T) {
	t.Setenv("STOCK_SYMBOL", "TSLA")
	t.Setenv("LLM_PROVIDER", "demo")
	t.Setenv("LLM_MODEL", "my-model")
	t.Setenv("RUN_HOUR", "7")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/db")
	t.Setenv("POLYGON_API_KEY", "pk")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "TSLA", cfg.Stock.Symbol)
	assert.Equal(t, "demo", cfg.AI.Provider)
	assert.Equal(t, "my-model", cfg.AI.Model)
	assert.Equal(t, 7, cfg.Scheduler.RunHour)
	assert.Equal(t, "postgres://u:p@localhost/db", cfg.Database.URL)
	assert.Equal(t, "pk", cfg.Polygon.APIKey)
}

func TestLoadProviderKeyAliases(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-openai")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("GEMINI_API_KEY", "gm-key")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "sk-openai", cfg.OpenAI.APIKey)
	assert.Equal(t, "sk-ant", cfg.Anthropic.APIKey)
	assert.Equal(t, "gm-key", cfg.Gemini.APIKey)
}

func TestLoadCanonicalNameWinsOverLegacyName(t *testing.T) {
	t.Setenv("AI_PROVIDER", "anthropic")
	t.Setenv("LLM_PROVIDER", "demo")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "anthropic", cfg.AI.Provider)
}
