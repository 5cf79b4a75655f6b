package loader

import (
	"encoding/json"

	"github.com/beac0n5/OFFAT/oaserrors"
)

// Document is the result of a load call: either the deserialized content or a
// recoverable load failure. Callers should treat it as read-only.
type Document struct {
	// Path is the path passed to Load
	Path string
	// Format is the decoder format that produced Data (e.g. "json", "yaml")
	Format string
	// Size is the number of bytes read from disk
	Size int64
	// Data is the deserialized content. Nil when Err is set, and also for an
	// empty YAML document.
	Data any
	// Err is set when the document could not be loaded
	Err *oaserrors.LoadError
}

// Failed reports whether the load produced an error record instead of data.
func (d *Document) Failed() bool {
	return d.Err != nil
}

// Record returns the uniform representation of the load result: the deserialized
// content on success, or map[string]any{"error": message} on failure.
func (d *Document) Record() any {
	if d.Err != nil {
		return map[string]any{"error": d.Err.Message()}
	}
	return d.Data
}

// Map returns the content as a mapping when the document loaded and its root is
// a mapping.
func (d *Document) Map() (map[string]any, bool) {
	if d.Err != nil {
		return nil, false
	}
	m, ok := d.Data.(map[string]any)
	return m, ok
}

// MarshalJSON encodes the document as its Record.
func (d *Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Record())
}

// ErrorMessage reports whether record is an error record as produced by
// Document.Record and returns its message.
func ErrorMessage(record any) (string, bool) {
	m, ok := record.(map[string]any)
	if !ok || len(m) != 1 {
		return "", false
	}
	msg, ok := m["error"].(string)
	return msg, ok
}
