// Package config loads keeppass settings from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/illarion/keeppass/internal/logging"
)

const (
	DefaultCredentialsFile = "credentials.txt"
	DefaultMetaDB          = ".keeppass.db"
)

// Environment variable names
const (
	EnvFile      = "KEEPPASS_FILE"
	EnvDB        = "KEEPPASS_DB"
	EnvPassword  = "KEEPPASS_PASSWORD"
	EnvLogLevel  = "KEEPPASS_LOG_LEVEL"
	EnvLogFormat = "KEEPPASS_LOG_FORMAT"
	EnvNoKeyring = "KEEPPASS_NO_KEYRING"
)

// Config holds settings for a keeppass run
type Config struct {
	CredentialsFile string
	MetaDB          string
	MasterPassword  []byte // nil when KEEPPASS_PASSWORD is unset
	LogLevel        slog.Level
	LogFormat       string
	UseKeyring      bool
}

// Load reads configuration from environment variables.
//
//	KEEPPASS_FILE        credentials file (credentials.txt)
//	KEEPPASS_DB          meta database (.keeppass.db)
//	KEEPPASS_PASSWORD    master password, skips the prompt
//	KEEPPASS_LOG_LEVEL   debug, info, warn or error (warn)
//	KEEPPASS_LOG_FORMAT  text or json (text)
//	KEEPPASS_NO_KEYRING  disables the OS keyring when true
func Load() (*Config, error) {
	cfg := &Config{
		CredentialsFile: DefaultCredentialsFile,
		MetaDB:          DefaultMetaDB,
		LogLevel:        slog.LevelWarn,
		LogFormat:       "text",
		UseKeyring:      true,
	}

	if v, ok := os.LookupEnv(EnvFile); ok && v != "" {
		cfg.CredentialsFile = v
	}
	if v, ok := os.LookupEnv(EnvDB); ok && v != "" {
		cfg.MetaDB = v
	}

	if v := os.Getenv(EnvPassword); v != "" {
		// Copy so callers can clear it
		cfg.MasterPassword = append([]byte(nil), v...)
	}

	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		level, err := logging.ParseLevel(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
		cfg.LogLevel = level
	}

	if v, ok := os.LookupEnv(EnvLogFormat); ok && v != "" {
		format := strings.ToLower(strings.TrimSpace(v))
		if format != "text" && format != "json" {
			return nil, fmt.Errorf("%s has invalid value %q (want text or json)", EnvLogFormat, v)
		}
		cfg.LogFormat = format
	}

	if v, ok := os.LookupEnv(EnvNoKeyring); ok && v != "" {
		disabled, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("%s has invalid value %q: %w", EnvNoKeyring, v, err)
		}
		cfg.UseKeyring = !disabled
	}

	return cfg, nil
}
