package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/beac0n5/OFFAT/logging"
	"github.com/beac0n5/OFFAT/oaserrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFile creates name under a fresh temp dir and returns its path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func mustLoad(t *testing.T, path string, opts ...Option) *Document {
	t.Helper()
	doc, err := Load(path, opts...)
	require.NoError(t, err)
	require.NotNil(t, doc)
	return doc
}

func TestLoad_ValidDocuments(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		format  string
		want    any
	}{
		{
			name:    "json mapping",
			file:    "spec.json",
			content: `{"a": 1}`,
			format:  FormatJSON,
			want:    map[string]any{"a": 1},
		},
		{
			name:    "json array",
			file:    "list.json",
			content: `[1, "two", null]`,
			format:  FormatJSON,
			want:    []any{1, "two", nil},
		},
		{
			name:    "yaml mapping",
			file:    "spec.yaml",
			content: "a: 1\n",
			format:  FormatYAML,
			want:    map[string]any{"a": 1},
		},
		{
			name:    "yaml nested document",
			file:    "openapi.yaml",
			content: "openapi: 3.0.0\nservers:\n  - url: https://api.example.com/v1\npaths:\n  /pets:\n    get: {}\n",
			format:  FormatYAML,
			want: map[string]any{
				"openapi": "3.0.0",
				"servers": []any{map[string]any{"url": "https://api.example.com/v1"}},
				"paths":   map[string]any{"/pets": map[string]any{"get": map[string]any{}}},
			},
		},
		{
			name:    "yaml integer keys become strings",
			file:    "responses.yaml",
			content: "responses:\n  200:\n    description: OK\n  404:\n    description: missing\n",
			format:  FormatYAML,
			want: map[string]any{
				"responses": map[string]any{
					"200": map[string]any{"description": "OK"},
					"404": map[string]any{"description": "missing"},
				},
			},
		},
		{
			name:    "yaml anchors and merge keys",
			file:    "anchors.yaml",
			content: "base: &b\n  x: 1\nderived:\n  <<: *b\n  y: 2\n",
			format:  FormatYAML,
			want: map[string]any{
				"base":    map[string]any{"x": 1},
				"derived": map[string]any{"x": 1, "y": 2},
			},
		},
		{
			name:    "yaml explicit core tags",
			file:    "tags.yaml",
			content: "port: !!str 8080\nenabled: !!bool true\n",
			format:  FormatYAML,
			want:    map[string]any{"port": "8080", "enabled": true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)
			doc := mustLoad(t, path)

			require.False(t, doc.Failed(), "unexpected error record: %v", doc.Record())
			assert.Equal(t, tt.want, doc.Data)
			assert.Equal(t, tt.want, doc.Record())
			assert.Equal(t, tt.format, doc.Format)
			assert.Equal(t, path, doc.Path)
			assert.Equal(t, int64(len(tt.content)), doc.Size)
		})
	}
}

func TestLoad_EmptyYAML(t *testing.T) {
	doc := mustLoad(t, writeFile(t, "empty.yaml", "# only a comment\n"))
	assert.False(t, doc.Failed())
	assert.Nil(t, doc.Data)
}

func TestLoad_ErrorRecords(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "folder.json"), 0o755))

	tests := []struct {
		name     string
		path     func(t *testing.T) string
		message  string
		sentinel error
	}{
		{
			name:     "empty path",
			path:     func(*testing.T) string { return "" },
			message:  "ValueError, path cannot be of None type",
			sentinel: oaserrors.ErrEmptyPath,
		},
		{
			name:     "missing json",
			path:     func(*testing.T) string { return filepath.Join(dir, "missing.json") },
			message:  "File Not Found",
			sentinel: oaserrors.ErrNotFound,
		},
		{
			name:     "missing yaml",
			path:     func(*testing.T) string { return filepath.Join(dir, "missing.yaml") },
			message:  "File Not Found",
			sentinel: oaserrors.ErrNotFound,
		},
		{
			name:     "missing with unknown extension",
			path:     func(*testing.T) string { return filepath.Join(dir, "missing.txt") },
			message:  "File Not Found",
			sentinel: oaserrors.ErrNotFound,
		},
		{
			name:     "directory is not a regular file",
			path:     func(*testing.T) string { return filepath.Join(dir, "folder.json") },
			message:  "File Not Found",
			sentinel: oaserrors.ErrNotFound,
		},
		{
			name:     "txt extension",
			path:     func(t *testing.T) string { return writeFile(t, "notes.txt", `{"a": 1}`) },
			message:  "Invalid file extension",
			sentinel: oaserrors.ErrInvalidExtension,
		},
		{
			name:     "extension is case sensitive",
			path:     func(t *testing.T) string { return writeFile(t, "spec.YAML", "a: 1") },
			message:  "Invalid file extension",
			sentinel: oaserrors.ErrInvalidExtension,
		},
		{
			name:     "yml is not registered by default",
			path:     func(t *testing.T) string { return writeFile(t, "spec.yml", "a: 1") },
			message:  "Invalid file extension",
			sentinel: oaserrors.ErrInvalidExtension,
		},
		{
			name:     "no extension",
			path:     func(t *testing.T) string { return writeFile(t, "Makefile", "all:") },
			message:  "Invalid file extension",
			sentinel: oaserrors.ErrInvalidExtension,
		},
		{
			name:     "malformed json",
			path:     func(t *testing.T) string { return writeFile(t, "bad.json", `{"a": `) },
			message:  "JSON error",
			sentinel: oaserrors.ErrParse,
		},
		{
			name:     "empty json",
			path:     func(t *testing.T) string { return writeFile(t, "empty.json", "") },
			message:  "JSON error",
			sentinel: oaserrors.ErrParse,
		},
		{
			name:     "json with trailing value",
			path:     func(t *testing.T) string { return writeFile(t, "two.json", `{"a": 1} {"b": 2}`) },
			message:  "JSON error",
			sentinel: oaserrors.ErrParse,
		},
		{
			name:     "json number out of range",
			path:     func(t *testing.T) string { return writeFile(t, "huge.json", `{"a": 1e400}`) },
			message:  "JSON error",
			sentinel: oaserrors.ErrParse,
		},
		{
			name:     "malformed yaml",
			path:     func(t *testing.T) string { return writeFile(t, "bad.yaml", "a: [1, 2\n") },
			message:  "YAML error",
			sentinel: oaserrors.ErrParse,
		},
		{
			name: "yaml python object tag",
			path: func(t *testing.T) string {
				return writeFile(t, "exploit.yaml", "x: !!python/object/apply:os.system [\"id\"]\n")
			},
			message:  "YAML error",
			sentinel: oaserrors.ErrParse,
		},
		{
			name:     "yaml local tag",
			path:     func(t *testing.T) string { return writeFile(t, "local.yaml", "x: !custom value\n") },
			message:  "YAML error",
			sentinel: oaserrors.ErrParse,
		},
		{
			name:     "yaml multiple documents",
			path:     func(t *testing.T) string { return writeFile(t, "multi.yaml", "a: 1\n---\nb: 2\n") },
			message:  "YAML error",
			sentinel: oaserrors.ErrParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustLoad(t, tt.path(t))

			require.True(t, doc.Failed())
			assert.Nil(t, doc.Data, "malformed content must never be partially returned")
			assert.Equal(t, map[string]any{"error": tt.message}, doc.Record())
			assert.ErrorIs(t, doc.Err, tt.sentinel)
			assert.ErrorIs(t, doc.Err, oaserrors.ErrLoad)

			msg, ok := ErrorMessage(doc.Record())
			assert.True(t, ok)
			assert.Equal(t, tt.message, msg)
		})
	}
}

func TestLoad_InvalidExtensionDoesNotReadContent(t *testing.T) {
	// Unreadable content behind an unknown extension still yields the record,
	// because dispatch happens before any read.
	path := writeFile(t, "binary.txt", "\xff\xfe")
	doc := mustLoad(t, path)
	assert.Equal(t, map[string]any{"error": "Invalid file extension"}, doc.Record())
	assert.Zero(t, doc.Size)
}

func TestLoad_InvalidUTF8IsFatal(t *testing.T) {
	path := writeFile(t, "latin1.json", "{\"name\": \"caf\xe9\"}")
	doc, err := Load(path)
	assert.Nil(t, doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not valid UTF-8")
}

func TestLoad_MaxFileSize(t *testing.T) {
	path := writeFile(t, "big.json", `{"padding": "`+strings.Repeat("x", 64)+`"}`)

	t.Run("over the limit", func(t *testing.T) {
		doc, err := Load(path, WithMaxFileSize(16))
		assert.Nil(t, doc)

		var limitErr *oaserrors.ResourceLimitError
		require.ErrorAs(t, err, &limitErr)
		assert.Equal(t, "file_size", limitErr.ResourceType)
		assert.Equal(t, int64(16), limitErr.Limit)
	})

	t.Run("zero disables the limit", func(t *testing.T) {
		doc := mustLoad(t, path, WithMaxFileSize(0))
		assert.False(t, doc.Failed())
	})

	t.Run("negative is a config error", func(t *testing.T) {
		_, err := New(WithMaxFileSize(-1))
		assert.ErrorIs(t, err, oaserrors.ErrConfig)
	})
}

func TestLoad_NumbersMatchAcrossFormats(t *testing.T) {
	tests := []struct {
		name string
		json string
		yaml string
		want any
	}{
		{"integer above 2^53", `{"id": 9007199254740993}`, "id: 9007199254740993\n", 9007199254740993},
		{"negative integer", `{"id": -42}`, "id: -42\n", -42},
		{"beyond int64", `{"id": 18446744073709551615}`, "id: 18446744073709551615\n", uint64(18446744073709551615)},
		{"fraction", `{"id": 1.5}`, "id: 1.5\n", 1.5},
		{"exponent", `{"id": 1e3}`, "id: 1000.0\n", float64(1000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fromJSON := mustLoad(t, writeFile(t, "n.json", tt.json))
			fromYAML := mustLoad(t, writeFile(t, "n.yaml", tt.yaml))
			require.False(t, fromJSON.Failed())
			require.False(t, fromYAML.Failed())

			assert.Equal(t, map[string]any{"id": tt.want}, fromJSON.Data)
			assert.Equal(t, fromYAML.Data, fromJSON.Data)
		})
	}

	t.Run("record encodes the exact value", func(t *testing.T) {
		doc := mustLoad(t, writeFile(t, "n.json", `{"id": 9007199254740993, "a": 1}`))
		out, err := json.Marshal(doc)
		require.NoError(t, err)
		assert.JSONEq(t, `{"id": 9007199254740993, "a": 1}`, string(out))
		assert.Contains(t, string(out), "9007199254740993")
	})
}

func TestLoadAs(t *testing.T) {
	l, err := New()
	require.NoError(t, err)

	t.Run("yaml content behind a txt extension", func(t *testing.T) {
		doc, err := l.LoadAs(writeFile(t, "spec.txt", "a: 1\n"), FormatYAML)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"a": 1}, doc.Data)
	})

	t.Run("empty path is checked first", func(t *testing.T) {
		doc, err := l.LoadAs("", FormatJSON)
		require.NoError(t, err)
		assert.ErrorIs(t, doc.Err, oaserrors.ErrEmptyPath)
	})

	t.Run("missing file", func(t *testing.T) {
		doc, err := l.LoadAs(filepath.Join(t.TempDir(), "nope"), FormatJSON)
		require.NoError(t, err)
		assert.ErrorIs(t, doc.Err, oaserrors.ErrNotFound)
	})

	t.Run("unknown decoder", func(t *testing.T) {
		doc, err := l.LoadAs(writeFile(t, "spec.json", "{}"), "toml")
		require.NoError(t, err)
		assert.ErrorIs(t, doc.Err, oaserrors.ErrInvalidExtension)
	})
}

func TestRegistry(t *testing.T) {
	t.Run("WithDecoder adds yml", func(t *testing.T) {
		doc := mustLoad(t, writeFile(t, "spec.yml", "a: 1\n"), WithDecoder("yml", YAMLDecoder))
		assert.Equal(t, map[string]any{"a": 1}, doc.Data)
		assert.Equal(t, FormatYAML, doc.Format)
	})

	t.Run("Register custom format", func(t *testing.T) {
		l, err := New()
		require.NoError(t, err)

		lines := Decoder{
			Format: "lines",
			Decode: func(data []byte) (any, error) {
				if len(data) == 0 {
					return nil, errors.New("empty")
				}
				return strings.Split(strings.TrimSpace(string(data)), "\n"), nil
			},
		}
		require.NoError(t, l.Register("lst", lines))
		assert.Equal(t, []string{"json", "lst", "yaml"}, l.Extensions())

		doc, err := l.Load(writeFile(t, "paths.lst", "/a\n/b\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"/a", "/b"}, doc.Data)

		doc, err = l.Load(writeFile(t, "empty.lst", ""))
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"error": "LINES error"}, doc.Record())
	})

	t.Run("invalid registrations", func(t *testing.T) {
		l, err := New()
		require.NoError(t, err)

		assert.ErrorIs(t, l.Register("", JSONDecoder), oaserrors.ErrConfig)
		assert.ErrorIs(t, l.Register("x", Decoder{Format: "x"}), oaserrors.ErrConfig)
		assert.ErrorIs(t, l.Register("x", Decoder{Decode: decodeJSON}), oaserrors.ErrConfig)

		_, err = New(WithDecoder("", JSONDecoder))
		assert.ErrorIs(t, err, oaserrors.ErrConfig)
	})
}

func TestLoad_Concurrent(t *testing.T) {
	l, err := New()
	require.NoError(t, err)

	jsonPath := writeFile(t, "a.json", `{"a": 1}`)
	yamlPath := writeFile(t, "b.yaml", "b: 2\n")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			path := jsonPath
			if i%2 == 1 {
				path = yamlPath
			}
			doc, err := l.Load(path)
			assert.NoError(t, err)
			assert.False(t, doc.Failed())
		}(i)
	}
	wg.Wait()
}

func TestLoad_LogsThroughInjectedLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewSlogAdapter(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	mustLoad(t, writeFile(t, "spec.json", `{}`), WithLogger(logger))
	assert.Contains(t, buf.String(), "loaded specification document")

	buf.Reset()
	mustLoad(t, writeFile(t, "bad.json", `{`), WithLogger(logger))
	assert.Contains(t, buf.String(), "kind=malformed")
}

func TestDocument(t *testing.T) {
	t.Run("MarshalJSON renders the record", func(t *testing.T) {
		ok := &Document{Data: map[string]any{"openapi": "3.0.0"}}
		data, err := json.Marshal(ok)
		require.NoError(t, err)
		assert.JSONEq(t, `{"openapi": "3.0.0"}`, string(data))

		failed := &Document{Err: &oaserrors.LoadError{Kind: oaserrors.KindNotFound}}
		data, err = json.Marshal(failed)
		require.NoError(t, err)
		assert.JSONEq(t, `{"error": "File Not Found"}`, string(data))
	})

	t.Run("Map", func(t *testing.T) {
		m, ok := (&Document{Data: map[string]any{"a": 1}}).Map()
		assert.True(t, ok)
		assert.Equal(t, map[string]any{"a": 1}, m)

		_, ok = (&Document{Data: []any{1}}).Map()
		assert.False(t, ok)

		_, ok = (&Document{Err: &oaserrors.LoadError{Kind: oaserrors.KindNotFound}}).Map()
		assert.False(t, ok)
	})
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name   string
		record any
		want   string
		ok     bool
	}{
		{"error record", map[string]any{"error": "YAML error"}, "YAML error", true},
		{"document with other keys", map[string]any{"error": "x", "openapi": "3"}, "", false},
		{"non-string error", map[string]any{"error": 1}, "", false},
		{"not a mapping", []any{"error"}, "", false},
		{"nil", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ErrorMessage(tt.record)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtension(t *testing.T) {
	tests := map[string]string{
		"spec.json":           "json",
		"dir/spec.v1.yaml":    "yaml",
		"archive.tar.gz":      "gz",
		"noext":               "noext",
		"trailing.":           "",
		"./relative/api.json": "json",
	}
	for in, want := range tests {
		assert.Equal(t, want, extension(in), in)
	}
}

func TestDecode(t *testing.T) {
	l, err := New(WithMaxFileSize(64))
	require.NoError(t, err)

	t.Run("yaml content", func(t *testing.T) {
		doc, err := l.Decode("<content>", FormatYAML, []byte("openapi: 3.0.0\n"))
		require.NoError(t, err)
		require.False(t, doc.Failed())
		assert.Equal(t, map[string]any{"openapi": "3.0.0"}, doc.Data)
		assert.Equal(t, int64(15), doc.Size)
		assert.Equal(t, "<content>", doc.Path)
	})

	t.Run("malformed content is a record", func(t *testing.T) {
		doc, err := l.Decode("<content>", FormatJSON, []byte("{"))
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"error": "JSON error"}, doc.Record())
	})

	t.Run("unknown extension", func(t *testing.T) {
		doc, err := l.Decode("<content>", "toml", []byte("a = 1"))
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"error": oaserrors.MessageInvalidExtension}, doc.Record())
	})

	t.Run("size limit", func(t *testing.T) {
		_, err := l.Decode("<content>", FormatJSON, []byte(strings.Repeat(" ", 65)))
		assert.ErrorIs(t, err, oaserrors.ErrResourceLimit)
	})

	t.Run("invalid utf-8", func(t *testing.T) {
		_, err := l.Decode("<content>", FormatJSON, []byte{'"', 0xff, '"'})
		assert.Error(t, err)
	})
}
