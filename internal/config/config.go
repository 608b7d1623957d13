// Package config loads service configuration from the environment, with
// optional .env file support.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// ProviderConfig holds the connection settings for one generation provider.
type ProviderConfig struct {
	BaseURL    string
	APIKey     string
	QuickModel string
	DeepModel  string
}

// Config holds all configuration for the application.
type Config struct {
	APIPort   string
	DBPath    string
	LogLevel  slog.Level
	LogFormat string

	// ProviderOrder is the fallback chain, first entry tried first.
	ProviderOrder []string
	Gemini        ProviderConfig
	OpenAI        ProviderConfig
	Groq          ProviderConfig
}

// Load reads configuration from environment variables and returns a Config
// struct. It applies defaults for optional fields and validates required
// fields. If a .env file exists in the current directory or project root, it
// is loaded automatically; variables already set take precedence over .env
// values.
func Load() (*Config, error) {
	_ = godotenv.Load()

	// Walk up from the working directory to find a project-root .env.
	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ {
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	cfg := &Config{
		APIPort:   getEnv("API_PORT", "9000"),
		DBPath:    getEnv("DB_PATH", "./data/research-ai.db"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
		Gemini: ProviderConfig{
			BaseURL:    getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
			APIKey:     getEnv("GEMINI_API_KEY", ""),
			QuickModel: getEnv("GEMINI_QUICK_MODEL", "gemini-2.0-flash"),
			DeepModel:  getEnv("GEMINI_DEEP_MODEL", "gemini-2.0-pro"),
		},
		OpenAI: ProviderConfig{
			BaseURL:    getEnv("OPENAI_BASE_URL", "https://api.openai.com"),
			APIKey:     getEnv("OPENAI_API_KEY", ""),
			QuickModel: getEnv("OPENAI_QUICK_MODEL", "gpt-4o-mini"),
			DeepModel:  getEnv("OPENAI_DEEP_MODEL", "gpt-4o"),
		},
		Groq: ProviderConfig{
			BaseURL:    getEnv("GROQ_BASE_URL", "https://api.groq.com/openai"),
			APIKey:     getEnv("GROQ_API_KEY", ""),
			QuickModel: getEnv("GROQ_QUICK_MODEL", "llama-3.1-8b-instant"),
			DeepModel:  getEnv("GROQ_DEEP_MODEL", "llama-3.3-70b-versatile"),
		},
	}

	level, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("LOG_FORMAT must be \"text\" or \"json\", got %q", cfg.LogFormat)
	}

	order, err := parseProviderOrder(getEnv("PROVIDER_ORDER", "gemini,openai,groq"))
	if err != nil {
		return nil, err
	}
	cfg.ProviderOrder = order

	// Create the data directory if it doesn't exist.
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

func parseLogLevel(raw string) (slog.Level, error) {
	switch strings.ToLower(raw) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("invalid LOG_LEVEL %q", raw)
}

func parseProviderOrder(raw string) ([]string, error) {
	var order []string
	for _, name := range strings.Split(raw, ",") {
		name = strings.TrimSpace(strings.ToLower(name))
		if name == "" {
			continue
		}
		switch name {
		case "gemini", "openai", "groq":
			order = append(order, name)
		default:
			return nil, fmt.Errorf("unknown provider %q in PROVIDER_ORDER", name)
		}
	}
	if len(order) == 0 {
		return nil, fmt.Errorf("PROVIDER_ORDER must name at least one provider")
	}
	return order, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
