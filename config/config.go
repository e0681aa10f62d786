package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// Mapstructure tags are used to map environment variables and config file keys.
type Config struct {
	// Server Configuration
	ServerAddress string `mapstructure:"SERVER_ADDRESS"` // e.g., ":8080"
	AppEnv        string `mapstructure:"APP_ENV"`        // "production" switches gin and log output modes
	LogLevel      string `mapstructure:"LOG_LEVEL"`      // debug, info, warn or error

	// Completion Service Configuration
	LLMProvider      string `mapstructure:"LLM_PROVIDER"` // "openrouter" or "gemini"
	OpenRouterAPIKey string `mapstructure:"OPENROUTER_API_KEY"`
	GeminiAPIKey     string `mapstructure:"GEMINI_API_KEY"`
	LLMBaseURL       string `mapstructure:"LLM_BASE_URL"` // OpenAI-compatible endpoint
	LLMModel         string `mapstructure:"LLM_MODEL"`
	GeminiModel      string `mapstructure:"GEMINI_MODEL"`
	SiteURL          string `mapstructure:"SITE_URL"`   // sent as HTTP-Referer and linked from exported pages
	SiteTitle        string `mapstructure:"SITE_TITLE"` // sent as X-Title

	// URL Analysis Configuration
	FetchTimeout    time.Duration `mapstructure:"FETCH_TIMEOUT"`
	MaxContentChars int           `mapstructure:"MAX_CONTENT_CHARS"`

	// Session Storage Configuration
	SessionStore  string `mapstructure:"SESSION_STORE"` // "memory" or "sqlite"
	SessionDBPath string `mapstructure:"SESSION_DB_PATH"`

	// HTTP Surface Configuration
	AllowedOrigins string  `mapstructure:"ALLOWED_ORIGINS"` // comma separated, "*" allows any
	RateLimitRPS   float64 `mapstructure:"RATE_LIMIT_RPS"`  // 0 disables limiting
	RateLimitBurst int     `mapstructure:"RATE_LIMIT_BURST"`

	// Publishing Configuration
	PublishDir     string `mapstructure:"PUBLISH_DIR"` // empty disables publishing
	PublishBaseURL string `mapstructure:"PUBLISH_BASE_URL"`
}

var defaults = map[string]any{
	"SERVER_ADDRESS":     ":8080",
	"APP_ENV":            "development",
	"LOG_LEVEL":          "info",
	"LLM_PROVIDER":       "openrouter",
	"OPENROUTER_API_KEY": "",
	"GEMINI_API_KEY":     "",
	"LLM_BASE_URL":       "https://openrouter.ai/api/v1",
	"LLM_MODEL":          "anthropic/claude-3-haiku",
	"GEMINI_MODEL":       "gemini-2.5-flash",
	"SITE_URL":           "https://vibedezine.com",
	"SITE_TITLE":         "Vibedezine",
	"FETCH_TIMEOUT":      "10s",
	"MAX_CONTENT_CHARS":  8000,
	"SESSION_STORE":      "memory",
	"SESSION_DB_PATH":    "./data/sessions.db",
	"ALLOWED_ORIGINS":    "http://localhost:3000",
	"RATE_LIMIT_RPS":     0,
	"RATE_LIMIT_BURST":   5,
	"PUBLISH_DIR":        "",
	"PUBLISH_BASE_URL":   "/sites",
}

// LoadConfig reads configuration from file and environment variables.
// Environment variables win over config.yaml, which wins over defaults.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.AddConfigPath(path)     // Path to look for the config file in
	v.SetConfigName("config") // Name of config file (without extension)
	v.SetConfigType("yaml")

	// Registering every key with a default also lets AutomaticEnv see it during Unmarshal.
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
		slog.Debug("config file not found, relying on environment variables", "path", path)
	} else {
		slog.Info("using configuration file", "file", v.ConfigFileUsed())
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := config.validate(); err != nil {
		return Config{}, err
	}
	if config.APIKey() == "" {
		slog.Warn("completion API key is not set; generation endpoints will fail", "provider", config.LLMProvider)
	}
	return config, nil
}

func (c *Config) validate() error {
	c.LLMProvider = strings.ToLower(strings.TrimSpace(c.LLMProvider))
	switch c.LLMProvider {
	case "openrouter", "gemini":
	default:
		return fmt.Errorf("LLM_PROVIDER must be openrouter or gemini, got %q", c.LLMProvider)
	}

	c.SessionStore = strings.ToLower(strings.TrimSpace(c.SessionStore))
	switch c.SessionStore {
	case "memory", "sqlite":
	default:
		return fmt.Errorf("SESSION_STORE must be memory or sqlite, got %q", c.SessionStore)
	}

	if c.FetchTimeout <= 0 {
		return fmt.Errorf("FETCH_TIMEOUT must be positive")
	}
	if c.MaxContentChars <= 0 {
		return fmt.Errorf("MAX_CONTENT_CHARS must be positive")
	}
	if c.RateLimitRPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must not be negative")
	}
	return nil
}

// APIKey returns the credential of the selected provider.
func (c Config) APIKey() string {
	if c.LLMProvider == "gemini" {
		return c.GeminiAPIKey
	}
	return c.OpenRouterAPIKey
}

// Model returns the model name of the selected provider.
func (c Config) Model() string {
	if c.LLMProvider == "gemini" {
		return c.GeminiModel
	}
	return c.LLMModel
}

// Origins splits ALLOWED_ORIGINS into a list, dropping blanks.
func (c Config) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// Production reports whether APP_ENV selects production mode.
func (c Config) Production() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// SlogLevel parses LOG_LEVEL, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo
	}
	return level
}
