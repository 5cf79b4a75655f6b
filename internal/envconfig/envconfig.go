// Package envconfig reads OFFAT_* environment variables shared by the CLI and
// the MCP server. Invalid values log a warning and fall back to the default.
package envconfig

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/beac0n5/OFFAT/loader"
	"github.com/beac0n5/OFFAT/logging"
	"github.com/beac0n5/OFFAT/urlutil"
)

// Environment variable names.
const (
	EnvLogLevel     = "OFFAT_LOG_LEVEL"
	EnvLogFormat    = "OFFAT_LOG_FORMAT"
	EnvMaxFileSize  = "OFFAT_MAX_FILE_SIZE"
	EnvRemovePrefix = "OFFAT_REMOVE_PREFIX"
	EnvCheckURLs    = "OFFAT_CHECK_URLS"
)

// Config holds settings common to every entry point.
type Config struct {
	LogLevel  string
	LogFormat string

	// MaxFileSize bounds documents read by the loader; 0 disables the limit
	MaxFileSize int64
	// RemovePrefix is stripped from URI segments before joining. It may be
	// empty when explicitly set so.
	RemovePrefix string
	CheckURLs    bool
}

// Load reads Config from the environment.
func Load() *Config {
	return &Config{
		LogLevel:     EnvString(EnvLogLevel, "info"),
		LogFormat:    EnvFormat(EnvLogFormat, logging.FormatText),
		MaxFileSize:  EnvInt64(EnvMaxFileSize, loader.DefaultMaxFileSize),
		RemovePrefix: EnvStringAllowEmpty(EnvRemovePrefix, urlutil.DefaultRemovePrefix),
		CheckURLs:    EnvBool(EnvCheckURLs, false),
	}
}

// EnvString returns the value of key, or fallback when unset or empty.
func EnvString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// EnvStringAllowEmpty returns the value of key when set, even if empty.
func EnvStringAllowEmpty(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

// EnvFormat accepts only the log formats understood by logging.Setup.
func EnvFormat(key, fallback string) string {
	v := os.Getenv(key)
	switch v {
	case "":
		return fallback
	case logging.FormatText, logging.FormatJSON:
		return v
	default:
		slog.Warn("invalid log format env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
}

// EnvBool parses key with strconv.ParseBool.
func EnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return b
}

// EnvInt parses key as a positive int.
func EnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

// EnvInt64 parses key as a non-negative int64. Zero is allowed so limits can
// be switched off.
func EnvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

// EnvDuration parses key with time.ParseDuration and requires a positive value.
func EnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}
