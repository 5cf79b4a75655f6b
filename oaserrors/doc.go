// Package oaserrors provides structured error types for the offat input layer.
//
// Import path: github.com/beac0n5/OFFAT/oaserrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As].
// Two families of failure exist and they are deliberately kept apart:
//
//   - Recoverable load failures are carried as data. The loader never returns a
//     [LoadError] through its error result; it stores it on the returned document
//     so that callers can branch on the uniform {"error": message} record.
//   - Server URL failures ([SchemeError], [ServerURLError]) are returned as errors.
//     Callers processing many server entries are expected to catch them per entry.
//
// # Error Types
//
//   - [LoadError]: missing path, missing file, unknown extension, malformed content
//   - [SchemeError]: a server URL whose scheme is not http or https
//   - [ServerURLError]: a server URL without a host or with broken brackets
//   - [ResourceLimitError]: input exceeding a configured size limit
//   - [ConfigError]: invalid option or environment values
//
// # Sentinel Errors
//
//   - [ErrLoad]: matches any [LoadError]
//   - [ErrEmptyPath], [ErrNotFound], [ErrInvalidExtension], [ErrParse]: match a
//     [LoadError] of the corresponding kind
//   - [ErrInvalidScheme]: matches any [SchemeError]
//   - [ErrInvalidServerURL]: matches any [ServerURLError]
//   - [ErrInvalidURL]: wrapped by URI composition failures
//   - [ErrResourceLimit]: matches any [ResourceLimitError]
//   - [ErrConfig]: matches any [ConfigError]
//
// # Usage
//
//	doc, err := loader.Load("openapi.yaml")
//	if err != nil {
//	    log.Fatal(err) // I/O failure outside the documented contract
//	}
//	if doc.Failed() {
//	    if errors.Is(doc.Err, oaserrors.ErrParse) {
//	        // malformed JSON or YAML
//	    }
//	}
package oaserrors
