package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"
)

// Format names of the built-in decoders.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// DecodeFunc deserializes raw file content.
type DecodeFunc func(data []byte) (any, error)

// Decoder is a registry entry: a format name and the function that decodes it.
// The format name, upper-cased, prefixes the " error" message of malformed
// documents.
type Decoder struct {
	Format string
	Decode DecodeFunc
}

// JSONDecoder decodes standard JSON text.
var JSONDecoder = Decoder{Format: FormatJSON, Decode: decodeJSON}

// YAMLDecoder decodes a single YAML document restricted to the core schema tags.
var YAMLDecoder = Decoder{Format: FormatYAML, Decode: decodeYAML}

var errTrailingData = errors.New("unexpected data after top-level value")

// decodeJSON keeps integers exact: integral numbers become int (or uint64 past
// the int64 range), everything else float64. These are the types the YAML
// decoder produces for the same scalars.
func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errTrailingData
	}
	return convertNumbers(v)
}

func convertNumbers(v any) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			conv, err := convertNumbers(val)
			if err != nil {
				return nil, err
			}
			t[k] = conv
		}
		return t, nil
	case []any:
		for i, val := range t {
			conv, err := convertNumbers(val)
			if err != nil {
				return nil, err
			}
			t[i] = conv
		}
		return t, nil
	case json.Number:
		return number(t)
	default:
		return v, nil
	}
}

func number(n json.Number) (any, error) {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			if i == int64(int(i)) {
				return int(i), nil
			}
			return i, nil
		}
		if u, err := strconv.ParseUint(s, 10, 64); err == nil {
			return u, nil
		}
	}
	f, err := n.Float64()
	if err != nil {
		return nil, fmt.Errorf("number %s: %w", s, err)
	}
	return f, nil
}

// safeTags are the tags a YAML document may use. Everything else, notably the
// !!python/* family and local !tags, is refused.
var safeTags = map[string]bool{
	"!!str":       true,
	"!!int":       true,
	"!!float":     true,
	"!!bool":      true,
	"!!null":      true,
	"!!map":       true,
	"!!seq":       true,
	"!!timestamp": true,
	"!!binary":    true,
	"!!merge":     true,
}

var errMultipleDocuments = errors.New("expected a single document in the stream")

func decodeYAML(data []byte) (any, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var root yaml.Node
	if err := dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			// Empty stream.
			return nil, nil
		}
		return nil, err
	}

	var next yaml.Node
	if err := dec.Decode(&next); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, err
		}
		return nil, errMultipleDocuments
	}

	if err := checkTags(&root); err != nil {
		return nil, err
	}

	var v any
	if err := root.Decode(&v); err != nil {
		return nil, err
	}
	return stringKeys(v), nil
}

// checkTags walks the node tree and rejects any tag outside safeTags.
// Alias nodes are skipped; their anchors are checked where they are defined.
func checkTags(n *yaml.Node) error {
	switch n.Kind {
	case yaml.DocumentNode:
	case yaml.AliasNode:
		return nil
	default:
		if tag := n.ShortTag(); !safeTags[tag] {
			return fmt.Errorf("line %d: tag %s is not allowed", n.Line, tag)
		}
	}
	for _, child := range n.Content {
		if err := checkTags(child); err != nil {
			return err
		}
	}
	return nil
}

// stringKeys rewrites mappings with non-string keys (e.g. unquoted response
// codes) into map[string]any so documents stay JSON-encodable.
func stringKeys(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = stringKeys(val)
		}
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = stringKeys(val)
		}
		return m
	case []any:
		for i, val := range t {
			t[i] = stringKeys(val)
		}
		return t
	default:
		return v
	}
}
