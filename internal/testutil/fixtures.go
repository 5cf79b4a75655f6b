// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go.yaml.in/yaml/v4"
)

// NewSimpleOAS2Document returns a minimal Swagger 2.0 document as the loader
// would decode it: one https server and a single GET operation.
func NewSimpleOAS2Document() map[string]any {
	return map[string]any{
		"swagger":  "2.0",
		"info":     map[string]any{"title": "Test API", "version": "1.0.0"},
		"host":     "api.example.com",
		"basePath": "/v1",
		"schemes":  []any{"https"},
		"paths": map[string]any{
			"/pets": map[string]any{
				"get": map[string]any{"operationId": "listPets"},
			},
		},
	}
}

// NewSimpleOAS3Document returns a minimal OpenAPI 3.0 document as the loader
// would decode it, with a templated server and two operations.
func NewSimpleOAS3Document() map[string]any {
	return map[string]any{
		"openapi": "3.0.3",
		"info":    map[string]any{"title": "Test API", "version": "1.0.0"},
		"servers": []any{
			map[string]any{
				"url": "https://{env}.example.com/v1",
				"variables": map[string]any{
					"env": map[string]any{"default": "api"},
				},
			},
		},
		"paths": map[string]any{
			"/pets": map[string]any{
				"get":  map[string]any{"operationId": "listPets"},
				"post": map[string]any{"operationId": "createPet"},
			},
		},
	}
}

// WriteFile writes content to name in a fresh temporary directory and returns
// the file path.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write temporary file: %v", err)
	}
	return path
}

// WriteTempYAML marshals doc to a temporary .yaml file and returns its path.
func WriteTempYAML(t *testing.T, doc any) string {
	t.Helper()

	data, err := yaml.Marshal(doc)
	if err != nil {
		t.Fatalf("Failed to marshal document to YAML: %v", err)
	}
	return WriteFile(t, "test.yaml", string(data))
}

// WriteTempJSON marshals doc to a temporary .json file and returns its path.
func WriteTempJSON(t *testing.T, doc any) string {
	t.Helper()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal document to JSON: %v", err)
	}
	return WriteFile(t, "test.json", string(data))
}

// Ptr returns a pointer to v, for optional tool inputs.
func Ptr[T any](v T) *T {
	return &v
}
