package config

import (
	"time"

	"golang-stock-intel/pkg/config"
)

// Stock holds the tracked ticker.
type Stock struct {
	Symbol   string `mapstructure:"symbol"`
	Timezone string `mapstructure:"timezone"`
}

// AI selects the model provider used for analysis.
type AI struct {
	Provider string        `mapstructure:"provider"`
	Model    string        `mapstructure:"model"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// OpenRouter holds the configuration for the OpenRouter API.
type OpenRouter struct {
	APIKey      string  `mapstructure:"api_key"`
	BaseURL     string  `mapstructure:"base_url"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
}

// OpenAI holds the configuration for the OpenAI API.
type OpenAI struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// Anthropic holds the configuration for the Anthropic API.
type Anthropic struct {
	APIKey    string `mapstructure:"api_key"`
	MaxTokens int64  `mapstructure:"max_tokens"`
}

// Gemini holds the configuration for the Gemini API.
type Gemini struct {
	APIKey string `mapstructure:"api_key"`
}

// Polygon holds the configuration for the Polygon daily open/close API.
type Polygon struct {
	APIKey              string        `mapstructure:"api_key"`
	BaseURL             string        `mapstructure:"base_url"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
	Timeout             time.Duration `mapstructure:"timeout"`
}

// Scheduler holds configuration for the daily run.
type Scheduler struct {
	RunHour    int  `mapstructure:"run_hour"`
	RunOnStart bool `mapstructure:"run_on_start"`
}

// Telegram holds configuration for the Telegram notifier.
type Telegram struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Cache holds cache lifetimes.
type Cache struct {
	LatestReportTTL time.Duration `mapstructure:"latest_report_ttl"`
	ObservationTTL  time.Duration `mapstructure:"observation_ttl"`
}

// Config holds the full configuration for the pipeline.
type Config struct {
	App        config.App      `mapstructure:"app"`
	Logger     config.Logger   `mapstructure:"logger"`
	Database   config.Database `mapstructure:"database"`
	Redis      config.Redis    `mapstructure:"redis"`
	API        config.API      `mapstructure:"api"`
	Stock      Stock           `mapstructure:"stock"`
	AI         AI              `mapstructure:"ai"`
	OpenRouter OpenRouter      `mapstructure:"openrouter"`
	OpenAI     OpenAI          `mapstructure:"openai"`
	Anthropic  Anthropic       `mapstructure:"anthropic"`
	Gemini     Gemini          `mapstructure:"gemini"`
	Polygon    Polygon         `mapstructure:"polygon"`
	Scheduler  Scheduler       `mapstructure:"scheduler"`
	Telegram   Telegram        `mapstructure:"telegram"`
	Cache      Cache           `mapstructure:"cache"`
}

// Defaults returns the value of every key that may be left out of the config file.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"app.name":                       "stock-pipeline",
		"app.env":                        "development",
		"app.version":                    "1.0.0",
		"logger.level":                   "info",
		"logger.encoding":                "console",
		"database.enabled":               true,
		"database.url":                   "",
		"database.host":                  "localhost",
		"database.port":                  5432,
		"database.user":                  "postgres",
		"database.password":              "",
		"database.name":                  "stock_pipeline",
		"database.ssl_mode":              "disable",
		"database.time_zone":             "UTC",
		"database.max_idle_conns":        5,
		"database.max_open_conns":        10,
		"database.conn_max_lifetime":     "1h",
		"database.log_level":             "warn",
		"database.auto_migrate":          false,
		"redis.enabled":                  false,
		"redis.host":                     "localhost",
		"redis.port":                     6379,
		"redis.password":                 "",
		"redis.db":                       0,
		"redis.pool_size":                10,
		"api.host":                       "0.0.0.0",
		"api.port":                       5000,
		"stock.symbol":                   "AAPL",
		"stock.timezone":                 "America/New_York",
		"ai.provider":                    "openrouter",
		"ai.model":                       "meta-llama/llama-3.2-3b-instruct:free",
		"ai.timeout":                     "30s",
		"openrouter.api_key":             "",
		"openrouter.base_url":            "https://openrouter.ai/api/v1",
		"openrouter.max_tokens":          500,
		"openrouter.temperature":         0.7,
		"openai.api_key":                 "",
		"openai.base_url":                "",
		"anthropic.api_key":              "",
		"anthropic.max_tokens":           1024,
		"gemini.api_key":                 "",
		"polygon.api_key":                "",
		"polygon.base_url":               "https://api.polygon.io",
		"polygon.max_request_per_minute": 5,
		"polygon.timeout":                "30s",
		"scheduler.run_hour":             9,
		"scheduler.run_on_start":         true,
		"telegram.bot_token":             "",
		"telegram.chat_id":               0,
		"cache.latest_report_ttl":        "5m",
		"cache.observation_ttl":          "24h",
	}
}

// EnvAliases maps config keys to the environment variable names used by existing deployments.
func EnvAliases() map[string][]string {
	return map[string][]string{
		"ai.provider":        {"LLM_PROVIDER"},
		"ai.model":           {"LLM_MODEL"},
		"scheduler.run_hour": {"RUN_HOUR"},
		"openai.api_key":     {"OPENAI_API_KEY"},
		"anthropic.api_key":  {"ANTHROPIC_API_KEY"},
		"gemini.api_key":     {"GEMINI_API_KEY"},
	}
}

// Load loads the pipeline configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg, config.Options{Defaults: Defaults(), EnvAliases: EnvAliases()}); err != nil {
		return nil, err
	}
	return &cfg, nil
}
