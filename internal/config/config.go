package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Elmanda1/pemuda-berprestasi-legacy-sub003/internal/bracket"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type Config struct {
	APIBaseURL  string
	APIToken    string
	HTTPTimeout time.Duration
	ServerPort  string
	LogLevel    string
	Layout      bracket.LayoutConfig
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	timeout, err := time.ParseDuration(getEnv("BAGAN_HTTP_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid BAGAN_HTTP_TIMEOUT: %w", err)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("BAGAN_HTTP_TIMEOUT must be positive, got %s", timeout)
	}

	layout := bracket.DefaultLayoutConfig()
	if layout.CardHeight, err = getEnvFloat("BAGAN_CARD_HEIGHT", layout.CardHeight); err != nil {
		return nil, err
	}
	if layout.CardGap, err = getEnvFloat("BAGAN_CARD_GAP", layout.CardGap); err != nil {
		return nil, err
	}

	cfg := &Config{
		APIBaseURL:  strings.TrimRight(getEnv("BAGAN_API_URL", "http://localhost:3000/api"), "/"),
		APIToken:    getEnv("BAGAN_API_TOKEN", ""),
		HTTPTimeout: timeout,
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Layout:      layout,
	}

	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("BAGAN_API_URL is required")
	}

	logger.Info().
		Str("api_url", cfg.APIBaseURL).
		Bool("api_token", cfg.APIToken != "").
		Dur("http_timeout", cfg.HTTPTimeout).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if f < 0 {
		return 0, fmt.Errorf("%s must not be negative, got %v", key, f)
	}
	return f, nil
}
