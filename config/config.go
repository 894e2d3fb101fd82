package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the full configuration surface. Defaults make a bare binary
// usable: sqlite file next to it, legacy CSVs expected under ./data.
type Config struct {
	Port           string
	DBPath         string
	DataDir        string
	LegacyEncoding string
	SessionTTL     time.Duration
}

// Load reads environment variables, optionally seeded from the given env
// file. A missing env file is fine; configuration may come straight from the
// environment.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		_ = godotenv.Load()
	}

	ttlMinutes, err := strconv.Atoi(getenvWithDefault("PDV_SESSION_TTL_MINUTES", "480"))
	if err != nil {
		return nil, fmt.Errorf("PDV_SESSION_TTL_MINUTES must be an integer: %w", err)
	}

	cfg := &Config{
		Port:           getenvWithDefault("PDV_PORT", "8080"),
		DBPath:         getenvWithDefault("PDV_DB_PATH", "./pdv.db"),
		DataDir:        getenvWithDefault("PDV_DATA_DIR", "./data"),
		LegacyEncoding: os.Getenv("PDV_LEGACY_ENCODING"),
		SessionTTL:     time.Duration(ttlMinutes) * time.Minute,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate ensures required fields are populated and coherent.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Port == "" {
		return errors.New("PDV_PORT must not be empty")
	}
	if c.DBPath == "" {
		return errors.New("PDV_DB_PATH must not be empty")
	}
	if c.SessionTTL <= 0 {
		return errors.New("PDV_SESSION_TTL_MINUTES must be positive")
	}
	switch c.LegacyEncoding {
	case "", "utf-8", "windows-1252", "latin1", "iso-8859-1":
	default:
		return fmt.Errorf("unsupported PDV_LEGACY_ENCODING %q", c.LegacyEncoding)
	}
	return nil
}

func getenvWithDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
