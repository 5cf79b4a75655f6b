package oaserrors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrLoad indicates a specification document could not be loaded.
	ErrLoad = errors.New("load error")

	// ErrEmptyPath indicates an empty document path was supplied.
	ErrEmptyPath = errors.New("empty path")

	// ErrNotFound indicates the document path is not an existing regular file.
	ErrNotFound = errors.New("file not found")

	// ErrInvalidExtension indicates no decoder is registered for the file extension.
	ErrInvalidExtension = errors.New("invalid file extension")

	// ErrParse indicates the document content could not be deserialized.
	ErrParse = errors.New("parse error")

	// ErrInvalidScheme indicates a server URL scheme other than http or https.
	ErrInvalidScheme = errors.New("invalid scheme")

	// ErrInvalidServerURL indicates a server URL that cannot be decomposed.
	ErrInvalidServerURL = errors.New("invalid server URL")

	// ErrInvalidURL indicates a URL or URI fragment that could not be parsed.
	ErrInvalidURL = errors.New("invalid URL")

	// ErrResourceLimit indicates a resource limit was exceeded.
	ErrResourceLimit = errors.New("resource limit exceeded")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// LoadErrorKind classifies a recoverable load failure.
type LoadErrorKind int

const (
	// KindEmptyPath means the caller supplied an empty path.
	KindEmptyPath LoadErrorKind = iota + 1
	// KindNotFound means the path does not reference an existing regular file.
	KindNotFound
	// KindInvalidExtension means no decoder is registered for the extension.
	KindInvalidExtension
	// KindMalformed means the decoder rejected the file content.
	KindMalformed
)

// String returns a short identifier for the kind.
func (k LoadErrorKind) String() string {
	switch k {
	case KindEmptyPath:
		return "empty_path"
	case KindNotFound:
		return "not_found"
	case KindInvalidExtension:
		return "invalid_extension"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// Literal messages of the error record. Consumers match on these strings, so they
// must never change.
const (
	MessageEmptyPath        = "ValueError, path cannot be of None type"
	MessageNotFound         = "File Not Found"
	MessageInvalidExtension = "Invalid file extension"
)

// LoadError describes why a specification document could not be loaded.
type LoadError struct {
	// Kind classifies the failure
	Kind LoadErrorKind
	// Path is the document path as given by the caller
	Path string
	// Format is the decoder format name for KindMalformed (e.g. "json", "yaml")
	Format string
	// Cause is the underlying error, if any
	Cause error
}

// Message returns the literal message used in the {"error": message} record.
func (e *LoadError) Message() string {
	switch e.Kind {
	case KindEmptyPath:
		return MessageEmptyPath
	case KindNotFound:
		return MessageNotFound
	case KindInvalidExtension:
		return MessageInvalidExtension
	case KindMalformed:
		return strings.ToUpper(e.Format) + " error"
	default:
		return "Unknown error"
	}
}

// Error returns a human-readable error message.
func (e *LoadError) Error() string {
	msg := "load error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	msg += ": " + e.Message()
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
// Matches ErrLoad, and the sentinel of the error's kind.
func (e *LoadError) Is(target error) bool {
	switch target {
	case ErrLoad:
		return true
	case ErrEmptyPath:
		return e.Kind == KindEmptyPath
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrInvalidExtension:
		return e.Kind == KindInvalidExtension
	case ErrParse:
		return e.Kind == KindMalformed
	}
	return false
}

// SchemeError reports a server URL whose scheme cannot be used for requests.
type SchemeError struct {
	// URL is the raw server URL
	URL string
	// Scheme is the rejected scheme (may be empty for relative URLs)
	Scheme string
}

// Error returns a human-readable error message.
func (e *SchemeError) Error() string {
	msg := "only http and https schemes are allowed"
	if e.Scheme != "" {
		msg += fmt.Sprintf(", got %q", e.Scheme)
	} else {
		msg += ", got no scheme"
	}
	if e.URL != "" {
		msg += " in " + e.URL
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *SchemeError) Is(target error) bool {
	return target == ErrInvalidScheme
}

// ServerURLError reports a server URL that cannot be split into host and port.
type ServerURLError struct {
	// URL is the raw server URL
	URL string
	// Message describes the problem
	Message string
}

// Error returns a human-readable error message.
func (e *ServerURLError) Error() string {
	msg := "invalid server URL"
	if e.URL != "" {
		msg += " " + e.URL
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *ServerURLError) Is(target error) bool {
	return target == ErrInvalidServerURL
}

// ResourceLimitError represents a resource exhaustion condition.
type ResourceLimitError struct {
	// ResourceType identifies what limit was exceeded, e.g. "file_size"
	ResourceType string
	// Limit is the configured maximum value
	Limit int64
	// Actual is the value that exceeded the limit (may be 0 if unknown)
	Actual int64
	// Message provides additional context
	Message string
}

// Error returns a human-readable error message.
func (e *ResourceLimitError) Error() string {
	msg := "resource limit exceeded"
	if e.ResourceType != "" {
		msg += ": " + e.ResourceType
	}
	if e.Limit > 0 {
		msg += fmt.Sprintf(" (limit: %d", e.Limit)
		if e.Actual > 0 {
			msg += fmt.Sprintf(", actual: %d", e.Actual)
		}
		msg += ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *ResourceLimitError) Is(target error) bool {
	return target == ErrResourceLimit
}

// ConfigError represents an invalid configuration or input.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
