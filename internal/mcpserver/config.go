package mcpserver

import (
	"time"

	"github.com/beac0n5/OFFAT/internal/envconfig"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	*envconfig.Config

	// Cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheFileTTL       time.Duration
	CacheContentTTL    time.Duration
	CacheSweepInterval time.Duration

	// list_targets page size defaults.
	TargetLimit int
	MaxLimit    int

	// MaxInlineSize bounds inline content; file inputs use MaxFileSize.
	MaxInlineSize int64
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from OFFAT_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		Config:             envconfig.Load(),
		CacheEnabled:       envconfig.EnvBool("OFFAT_CACHE_ENABLED", true),
		CacheMaxSize:       envconfig.EnvInt("OFFAT_CACHE_MAX_SIZE", 10),
		CacheFileTTL:       envconfig.EnvDuration("OFFAT_CACHE_FILE_TTL", 15*time.Minute),
		CacheContentTTL:    envconfig.EnvDuration("OFFAT_CACHE_CONTENT_TTL", 15*time.Minute),
		CacheSweepInterval: envconfig.EnvDuration("OFFAT_CACHE_SWEEP_INTERVAL", 60*time.Second),
		TargetLimit:        envconfig.EnvInt("OFFAT_TARGET_LIMIT", 100),
		MaxLimit:           envconfig.EnvInt("OFFAT_MAX_LIMIT", 1000),
		MaxInlineSize:      envconfig.EnvInt64("OFFAT_MAX_INLINE_SIZE", 10*1024*1024),
	}
}
