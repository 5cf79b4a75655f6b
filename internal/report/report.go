// Package report writes command results to disk.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"go.yaml.in/yaml/v4"

	"github.com/beac0n5/OFFAT/logging"
)

// OwnerReadWrite is the file permission mode for reports.
const OwnerReadWrite os.FileMode = 0o600

// Output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ErrSymlink is returned when the output path is a symbolic link.
var ErrSymlink = errors.New("report: refusing to write to symlink")

// Write encodes v in format (FormatJSON is indented, with a trailing newline)
// and writes it to path, replacing any existing regular file. Encoding and
// write failures are logged at error level and returned.
func Write(path string, v any, format string, logger logging.Logger) error {
	logger = logging.OrNop(logger).With("path", path)

	info, err := os.Lstat(path)
	switch {
	case err == nil && info.Mode()&os.ModeSymlink != 0:
		logger.Error("output path is a symlink")
		return fmt.Errorf("%w: %s", ErrSymlink, path)
	case err == nil:
		logger.Info("file will be overwritten")
	}

	data, err := encode(v, format)
	if err != nil {
		logger.Error("failed to encode report", "format", format, "error", err)
		return fmt.Errorf("report: encoding %s: %w", path, err)
	}

	if err := os.WriteFile(path, data, OwnerReadWrite); err != nil {
		logger.Error("failed to write report", "error", err)
		return fmt.Errorf("report: writing %s: %w", path, err)
	}

	logger.Info("report written", "format", format, "size", len(data))
	return nil
}

func encode(v any, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case FormatYAML:
		return yaml.Marshal(v)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}
