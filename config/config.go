// Package config loads Clem's configuration from environment variables.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"github.com/Orange-County-AI/clem/logging"
)

// Config holds every runtime setting for the bot.
type Config struct {
	// Discord
	BotToken string `envconfig:"BOT_TOKEN" required:"true"`

	// LLM
	Model       string `envconfig:"MODEL" default:"gpt-4.1-mini"`
	OpenAIToken string `envconfig:"OPENAI_API_KEY" required:"true"`
	// Optional openai-compatible endpoint, e.g. a local llama.cpp server.
	LLMBaseURL string `envconfig:"LLM_BASE_URL"`

	// Database
	PostgresURL string `envconfig:"DATABASE_URL" required:"true"`

	// Summarization services
	TranscriptAPIToken string `envconfig:"TRANSCRIPT_API_TOKEN"`
	WebSummaryAPIToken string `envconfig:"WEB_SUMMARY_API_TOKEN"`

	// Community
	GuildName      string `envconfig:"GUILD_NAME" default:"Orange County AI"`
	WelcomeChannel string `envconfig:"WELCOME_CHANNEL" default:"general"`
	AdminRole      string `envconfig:"ADMIN_ROLE" default:"Clementine Council"`

	// Operations
	MetricsAddr string `envconfig:"METRICS_ADDR" default:":6060"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("error processing environment config: %w", err)
	}
	return &cfg, nil
}

// LoggerLevel maps the configured log level string onto the logging package's levels.
func (c *Config) LoggerLevel() logging.LogLevel {
	switch c.LogLevel {
	case "debug":
		return logging.LogLevelDebug
	case "warn":
		return logging.LogLevelWarn
	case "error":
		return logging.LogLevelError
	default:
		return logging.LogLevelInfo
	}
}
