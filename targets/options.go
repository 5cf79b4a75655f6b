package targets

import (
	"github.com/beac0n5/OFFAT/logging"
	"github.com/beac0n5/OFFAT/oaserrors"
	"github.com/beac0n5/OFFAT/urlutil"
)

// Option is a function that configures a Planner.
type Option func(*plannerConfig) error

type plannerConfig struct {
	logger         logging.Logger
	serverOverride string
	checkURLs      bool
	removePrefix   string
}

func applyOptions(opts ...Option) (*plannerConfig, error) {
	cfg := &plannerConfig{
		logger:       logging.NopLogger{},
		removePrefix: urlutil.DefaultRemovePrefix,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// WithLogger sets the diagnostic sink. It is also handed to the server URL
// parser, so port fallbacks show up in the same log.
func WithLogger(l logging.Logger) Option {
	return func(cfg *plannerConfig) error {
		cfg.logger = logging.OrNop(l)
		return nil
	}
}

// WithServerOverride targets url instead of the servers declared in the
// document.
func WithServerOverride(url string) Option {
	return func(cfg *plannerConfig) error {
		if url == "" {
			return &oaserrors.ConfigError{Option: "server_override", Message: "must not be empty"}
		}
		cfg.serverOverride = url
		return nil
	}
}

// WithURLCheck skips servers that fail urlutil.IsValidURL before they are
// parsed.
// Default: false
func WithURLCheck(enabled bool) Option {
	return func(cfg *plannerConfig) error {
		cfg.checkURLs = enabled
		return nil
	}
}

// WithRemovePrefix sets the prefix stripped from each URI segment when target
// URLs are composed. An empty prefix strips nothing.
// Default: urlutil.DefaultRemovePrefix
func WithRemovePrefix(prefix string) Option {
	return func(cfg *plannerConfig) error {
		cfg.removePrefix = prefix
		return nil
	}
}
