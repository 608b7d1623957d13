package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// setEnv sets an environment variable, ignoring errors (for test setup)
func setEnv(key, value string) {
	_ = os.Setenv(key, value)
}

// unsetEnv unsets an environment variable, ignoring errors (for test cleanup)
func unsetEnv(key string) {
	_ = os.Unsetenv(key)
}

var configEnvVars = []string{
	"API_PORT", "DB_PATH", "LOG_LEVEL", "LOG_FORMAT", "PROVIDER_ORDER",
	"GEMINI_BASE_URL", "GEMINI_API_KEY", "GEMINI_QUICK_MODEL", "GEMINI_DEEP_MODEL",
	"OPENAI_BASE_URL", "OPENAI_API_KEY", "OPENAI_QUICK_MODEL", "OPENAI_DEEP_MODEL",
	"GROQ_BASE_URL", "GROQ_API_KEY", "GROQ_QUICK_MODEL", "GROQ_DEEP_MODEL",
}

// isolateEnv clears all config env vars and restores them on cleanup.
func isolateEnv(t *testing.T) {
	t.Helper()
	original := make(map[string]string)
	for _, key := range configEnvVars {
		original[key] = os.Getenv(key)
		unsetEnv(key)
	}
	t.Cleanup(func() {
		for key, value := range original {
			if value != "" {
				setEnv(key, value)
			} else {
				unsetEnv(key)
			}
		}
	})
}

func TestLoad(t *testing.T) {
	isolateEnv(t)

	tests := []struct {
		name        string
		setupEnv    func(*testing.T)
		wantErr     bool
		checkConfig func(*Config) bool
	}{
		{
			name:     "defaults",
			setupEnv: func(t *testing.T) {},
			wantErr:  false,
			checkConfig: func(cfg *Config) bool {
				return cfg.APIPort == "9000" &&
					cfg.DBPath == "./data/research-ai.db" &&
					cfg.LogLevel == slog.LevelInfo &&
					cfg.LogFormat == "text" &&
					reflect.DeepEqual(cfg.ProviderOrder, []string{"gemini", "openai", "groq"}) &&
					cfg.Gemini.QuickModel == "gemini-2.0-flash" &&
					cfg.OpenAI.DeepModel == "gpt-4o" &&
					cfg.Groq.BaseURL == "https://api.groq.com/openai"
			},
		},
		{
			name: "custom provider order",
			setupEnv: func(t *testing.T) {
				setEnv("PROVIDER_ORDER", "groq, gemini")
			},
			wantErr: false,
			checkConfig: func(cfg *Config) bool {
				return reflect.DeepEqual(cfg.ProviderOrder, []string{"groq", "gemini"})
			},
		},
		{
			name: "unknown provider in order",
			setupEnv: func(t *testing.T) {
				setEnv("PROVIDER_ORDER", "gemini,anthropic")
			},
			wantErr: true,
		},
		{
			name: "empty provider order",
			setupEnv: func(t *testing.T) {
				setEnv("PROVIDER_ORDER", ", ,")
			},
			wantErr: true,
		},
		{
			name: "invalid log level",
			setupEnv: func(t *testing.T) {
				setEnv("LOG_LEVEL", "verbose")
			},
			wantErr: true,
		},
		{
			name: "invalid log format",
			setupEnv: func(t *testing.T) {
				setEnv("LOG_FORMAT", "logfmt")
			},
			wantErr: true,
		},
		{
			name: "json log format",
			setupEnv: func(t *testing.T) {
				setEnv("LOG_FORMAT", "json")
				setEnv("LOG_LEVEL", "debug")
			},
			wantErr: false,
			checkConfig: func(cfg *Config) bool {
				return cfg.LogFormat == "json" && cfg.LogLevel == slog.LevelDebug
			},
		},
		{
			name: "provider overrides",
			setupEnv: func(t *testing.T) {
				setEnv("GEMINI_API_KEY", "gk")
				setEnv("GEMINI_QUICK_MODEL", "gemini-custom")
				setEnv("OPENAI_BASE_URL", "http://localhost:8081")
			},
			wantErr: false,
			checkConfig: func(cfg *Config) bool {
				return cfg.Gemini.APIKey == "gk" &&
					cfg.Gemini.QuickModel == "gemini-custom" &&
					cfg.OpenAI.BaseURL == "http://localhost:8081"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Change to a temp directory without .env file to avoid loading it
			tmpDir := t.TempDir()
			originalWd, _ := os.Getwd()
			_ = os.Chdir(tmpDir)
			defer func() {
				_ = os.Chdir(originalWd)
			}()

			for _, key := range configEnvVars {
				unsetEnv(key)
			}
			tt.setupEnv(t)

			cfg, err := Load()

			if tt.wantErr {
				if err == nil {
					t.Errorf("Load() expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Errorf("Load() unexpected error: %v", err)
				return
			}

			if cfg == nil {
				t.Fatal("Load() returned nil config")
			}

			if tt.checkConfig != nil && !tt.checkConfig(cfg) {
				t.Errorf("Load() config validation failed: %+v", cfg)
			}
		})
	}
}

func TestLoad_CreatesDataDirectory(t *testing.T) {
	isolateEnv(t)

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "db.db")
	setEnv("DB_PATH", dbPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	dir := filepath.Dir(dbPath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		t.Errorf("Load() should create data directory: %v", err)
	}

	if cfg.DBPath != dbPath {
		t.Errorf("Load() DBPath = %v, want %v", cfg.DBPath, dbPath)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		raw     string
		want    slog.Level
		wantErr bool
	}{
		{raw: "debug", want: slog.LevelDebug},
		{raw: "INFO", want: slog.LevelInfo},
		{raw: "warn", want: slog.LevelWarn},
		{raw: "warning", want: slog.LevelWarn},
		{raw: "error", want: slog.LevelError},
		{raw: "trace", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseLogLevel(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseLogLevel(%q) expected error", tt.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseLogLevel(%q) error = %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("parseLogLevel(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestGetEnv(t *testing.T) {
	originalValue := os.Getenv("TEST_ENV_VAR")
	defer func() {
		if originalValue != "" {
			setEnv("TEST_ENV_VAR", originalValue)
		} else {
			unsetEnv("TEST_ENV_VAR")
		}
	}()

	tests := []struct {
		name         string
		setupEnv     func()
		key          string
		defaultValue string
		want         string
	}{
		{
			name: "env var set",
			setupEnv: func() {
				setEnv("TEST_ENV_VAR", "set-value")
			},
			key:          "TEST_ENV_VAR",
			defaultValue: "default",
			want:         "set-value",
		},
		{
			name: "env var not set",
			setupEnv: func() {
				unsetEnv("TEST_ENV_VAR")
			},
			key:          "TEST_ENV_VAR",
			defaultValue: "default",
			want:         "default",
		},
		{
			name: "empty env var uses default",
			setupEnv: func() {
				setEnv("TEST_ENV_VAR", "")
			},
			key:          "TEST_ENV_VAR",
			defaultValue: "default",
			want:         "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupEnv()
			got := getEnv(tt.key, tt.defaultValue)
			if got != tt.want {
				t.Errorf("getEnv(%q, %q) = %q, want %q", tt.key, tt.defaultValue, got, tt.want)
			}
		})
	}
}
