package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/beac0n5/OFFAT/internal/maputil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type loadSpecInput struct {
	Spec specInput `json:"spec"           jsonschema:"The specification document to load"`
	Full bool      `json:"full,omitempty" jsonschema:"Include the decoded document as JSON"`
}

type loadSpecOutput struct {
	Source       string   `json:"source"`
	Format       string   `json:"format,omitempty"`
	Size         int64    `json:"size,omitempty"`
	Error        string   `json:"error,omitempty"`
	ErrorKind    string   `json:"error_kind,omitempty"`
	Version      string   `json:"version,omitempty"`
	TopLevelKeys []string `json:"top_level_keys,omitempty"`
	PathCount    int      `json:"path_count"`
	Servers      []string `json:"servers,omitempty"`
	FullDocument string   `json:"full_document,omitempty"`
}

func handleLoadSpec(_ context.Context, _ *mcp.CallToolRequest, input loadSpecInput) (*mcp.CallToolResult, loadSpecOutput, error) {
	doc, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), loadSpecOutput{}, nil
	}

	output := loadSpecOutput{
		Source: pathPattern.ReplaceAllString(doc.Path, "<path>"),
		Format: doc.Format,
		Size:   doc.Size,
	}
	if doc.Failed() {
		output.Error = doc.Err.Message()
		output.ErrorKind = doc.Err.Kind.String()
		return nil, output, nil
	}

	if root, ok := doc.Map(); ok {
		summarize(root, &output)
	}

	if input.Full {
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return errResult(err), loadSpecOutput{}, nil
		}
		output.FullDocument = string(data)
	}

	return nil, output, nil
}

// summarize fills the structural summary from a document root.
func summarize(root map[string]any, output *loadSpecOutput) {
	output.TopLevelKeys = maputil.SortedKeys(root)

	switch {
	case root["openapi"] != nil:
		output.Version = fmt.Sprint(root["openapi"])
	case root["swagger"] != nil:
		output.Version = fmt.Sprint(root["swagger"])
	}

	if paths, ok := root["paths"].(map[string]any); ok {
		output.PathCount = len(paths)
	}

	if servers, ok := root["servers"].([]any); ok {
		for _, s := range servers {
			if m, ok := s.(map[string]any); ok {
				if u, ok := m["url"].(string); ok {
					output.Servers = append(output.Servers, u)
				}
			}
		}
	}
	if host, ok := root["host"].(string); ok && host != "" {
		basePath, _ := root["basePath"].(string)
		output.Servers = append(output.Servers, "//"+host+basePath)
	}
}
