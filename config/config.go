// Package config reads the service configuration from the environment,
// optionally seeded from an env file in the user's config directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	AppName     = "watch-appraiser"
	EnvFileName = "config.env"

	DefaultHTTPAddr       = ":8080"
	DefaultDBPath         = "analyses.db"
	DefaultAttemptTimeout = 60 * time.Second
)

// Config holds the runtime settings.
type Config struct {
	GeminiAPIKey   string
	GeminiModel    string
	GeminiBaseURL  string
	HTTPAddr       string
	BotToken       string
	DBPath         string
	AttemptTimeout time.Duration
	VisionCache    bool
	LogFile        string
}

// RequiredEnvVars must be set for the service to start.
var RequiredEnvVars = []string{"GEMINI_API_KEY"}

// Dir returns the application's config directory, creating it if needed.
func Dir() (string, error) {
	configBase, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}

	configDir := filepath.Join(configBase, AppName)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	return configDir, nil
}

// FilePath returns the full path to the env file.
func FilePath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, EnvFileName), nil
}

// LoadEnvFile loads environment variables from the config file in the user's
// config directory. Variables already set win. Errors are ignored since the
// file may not exist.
func LoadEnvFile() {
	path, err := FilePath()
	if err != nil {
		return
	}
	_ = godotenv.Load(path)
}

// MissingRequired returns the names of required variables that are unset.
func MissingRequired() []string {
	var missing []string
	for _, v := range RequiredEnvVars {
		if strings.TrimSpace(os.Getenv(v)) == "" {
			missing = append(missing, v)
		}
	}
	return missing
}

// Load builds a Config from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		GeminiAPIKey:   strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		GeminiModel:    os.Getenv("GEMINI_MODEL"),
		GeminiBaseURL:  os.Getenv("GEMINI_BASE_URL"),
		HTTPAddr:       envOr("HTTP_ADDR", DefaultHTTPAddr),
		BotToken:       strings.TrimSpace(os.Getenv("BOT_TOKEN")),
		DBPath:         envOr("WATCH_DB_PATH", DefaultDBPath),
		AttemptTimeout: DefaultAttemptTimeout,
		LogFile:        os.Getenv("LOG_FILE"),
	}

	if missing := MissingRequired(); len(missing) > 0 {
		return nil, fmt.Errorf("missing required config: %s", strings.Join(missing, ", "))
	}

	if v := os.Getenv("ANALYSIS_ATTEMPT_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("ANALYSIS_ATTEMPT_TIMEOUT: %w", err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("ANALYSIS_ATTEMPT_TIMEOUT must be positive, got %s", v)
		}
		cfg.AttemptTimeout = d
	}

	if v := os.Getenv("VISION_CACHE"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("VISION_CACHE: %w", err)
		}
		cfg.VisionCache = enabled
	}

	return cfg, nil
}

// WriteEnvFile writes values to the config file with 0600 permissions since
// it holds secrets. Keys are written in the given order; keys without a value
// are skipped. Returns the path written.
func WriteEnvFile(order []string, values map[string]string) (string, error) {
	path, err := FilePath()
	if err != nil {
		return "", err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return "", fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	for _, key := range order {
		val, ok := values[key]
		if !ok || val == "" {
			continue
		}
		if _, err := fmt.Fprintf(f, "%s=%q\n", key, val); err != nil {
			return "", fmt.Errorf("failed to write %s: %w", key, err)
		}
	}
	return path, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
