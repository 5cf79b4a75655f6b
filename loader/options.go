package loader

import (
	"github.com/beac0n5/OFFAT/logging"
	"github.com/beac0n5/OFFAT/oaserrors"
)

// DefaultMaxFileSize is the default upper bound on document size (64 MiB).
const DefaultMaxFileSize int64 = 64 << 20

// Option is a function that configures a Loader.
type Option func(*loaderConfig) error

type loaderConfig struct {
	logger      logging.Logger
	maxFileSize int64
	decoders    map[string]Decoder
}

func applyOptions(opts ...Option) (*loaderConfig, error) {
	cfg := &loaderConfig{
		logger:      logging.NopLogger{},
		maxFileSize: DefaultMaxFileSize,
		decoders: map[string]Decoder{
			FormatJSON: JSONDecoder,
			FormatYAML: YAMLDecoder,
		},
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// WithLogger sets the diagnostic sink. A nil logger keeps the default NopLogger.
func WithLogger(l logging.Logger) Option {
	return func(cfg *loaderConfig) error {
		cfg.logger = logging.OrNop(l)
		return nil
	}
}

// WithMaxFileSize sets the largest file, in bytes, the loader will read.
// Zero disables the limit.
// Default: DefaultMaxFileSize
func WithMaxFileSize(n int64) Option {
	return func(cfg *loaderConfig) error {
		if n < 0 {
			return &oaserrors.ConfigError{Option: "max_file_size", Value: n, Message: "must not be negative"}
		}
		cfg.maxFileSize = n
		return nil
	}
}

// WithDecoder registers d for files whose extension is ext, replacing any
// existing entry.
func WithDecoder(ext string, d Decoder) Option {
	return func(cfg *loaderConfig) error {
		if err := validateDecoder(ext, d); err != nil {
			return err
		}
		cfg.decoders[ext] = d
		return nil
	}
}

func validateDecoder(ext string, d Decoder) error {
	if ext == "" {
		return &oaserrors.ConfigError{Option: "decoder", Message: "extension must not be empty"}
	}
	if d.Decode == nil {
		return &oaserrors.ConfigError{Option: "decoder", Value: ext, Message: "decode function must not be nil"}
	}
	if d.Format == "" {
		return &oaserrors.ConfigError{Option: "decoder", Value: ext, Message: "format name must not be empty"}
	}
	return nil
}
