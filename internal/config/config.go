// Package config loads tempo settings from TEMPO_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/abatilo/tempo/internal/dates"
	tempoerrors "github.com/abatilo/tempo/internal/errors"
)

// Prefix is prepended to every environment variable name.
const Prefix = "TEMPO"

const (
	defaultDirName = ".tempo"
	dotenvFile     = ".env"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// DataDir holds one plan directory per project. Empty means ~/.tempo.
	DataDir string `envconfig:"DATA_DIR"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"warn"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"console"` // "console" or "json"

	// Today overrides the fallback date for tasks without a usable start.
	Today string `envconfig:"TODAY"`

	// DateFormat selects human output dates: "iso" or "ddmmmyy".
	DateFormat string `envconfig:"DATE_FORMAT" default:"iso"`
}

// Load reads configuration from TEMPO_* environment variables. A .env file in
// the working directory is applied first; variables already set win.
func Load() (*Config, error) {
	if err := loadDotenv(dotenvFile); err != nil {
		return nil, err
	}

	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadDotenv applies path to the environment. A missing file is not an error.
func loadDotenv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

func (c *Config) validate() error {
	switch strings.ToLower(c.LogFormat) {
	case "console", "json":
	default:
		return fmt.Errorf("invalid %s_LOG_FORMAT %q (valid: console, json)", Prefix, c.LogFormat)
	}
	switch strings.ToLower(c.DateFormat) {
	case "iso", "ddmmmyy":
	default:
		return fmt.Errorf("invalid %s_DATE_FORMAT %q (valid: iso, ddmmmyy)", Prefix, c.DateFormat)
	}
	if c.Today != "" {
		if _, ok := dates.Parse(c.Today); !ok {
			return fmt.Errorf("invalid %s_TODAY: %w", Prefix, tempoerrors.InvalidDateError{Value: c.Today})
		}
	}
	return nil
}

// ResolveDataDir returns DataDir, defaulting to ~/.tempo.
func (c *Config) ResolveDataDir() (string, error) {
	if c.DataDir != "" {
		return c.DataDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, defaultDirName), nil
}

// TodayFunc returns the clock used for date fallbacks: the configured date
// when set, otherwise the current UTC day.
func (c *Config) TodayFunc() func() time.Time {
	if t, ok := dates.Parse(c.Today); ok {
		return func() time.Time { return t }
	}
	return func() time.Time { return dates.Midnight(time.Now().UTC()) }
}

// FormatDate renders a date in the configured human format.
func (c *Config) FormatDate(t time.Time) string {
	if strings.EqualFold(c.DateFormat, "ddmmmyy") {
		return dates.FormatDDMMMYY(t)
	}
	return dates.ISO(t)
}

// JSONLogs reports whether logs should be emitted as JSON lines.
func (c *Config) JSONLogs() bool {
	return strings.EqualFold(c.LogFormat, "json")
}
