package mcpserver

import (
	"context"

	"github.com/beac0n5/OFFAT/serverurl"
	"github.com/beac0n5/OFFAT/urlutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type parseServerURLInput struct {
	URL string `json:"url" jsonschema:"Server URL, e.g. https://api.example.com:8443/v1"`
}

type parseServerURLOutput struct {
	Scheme   string   `json:"scheme"`
	Host     string   `json:"host"`
	Port     int      `json:"port"`
	BasePath string   `json:"base_path"`
	Origin   string   `json:"origin"`
	Warnings []string `json:"warnings,omitempty"`
}

func handleParseServerURL(_ context.Context, _ *mcp.CallToolRequest, input parseServerURLInput) (*mcp.CallToolResult, parseServerURLOutput, error) {
	logger, notes := newNoteLogger()
	s, err := serverurl.Parse(input.URL, serverurl.WithLogger(logger))
	if err != nil {
		return errResult(err), parseServerURLOutput{}, nil
	}
	return nil, parseServerURLOutput{
		Scheme:   s.Scheme,
		Host:     s.Host,
		Port:     s.Port,
		BasePath: s.BasePath,
		Origin:   s.Origin(),
		Warnings: notes.notes(),
	}, nil
}

type joinURIInput struct {
	Base         string   `json:"base"                    jsonschema:"Base URL"`
	Segments     []string `json:"segments,omitempty"      jsonschema:"Path segments joined left to right"`
	RemovePrefix *string  `json:"remove_prefix,omitempty" jsonschema:"Prefix stripped from each segment before joining. Empty string strips nothing"`
}

type joinURIOutput struct {
	URL string `json:"url"`
}

func handleJoinURI(_ context.Context, _ *mcp.CallToolRequest, input joinURIInput) (*mcp.CallToolResult, joinURIOutput, error) {
	u, err := urlutil.JoinWithPrefix(removePrefix(input.RemovePrefix), input.Base, input.Segments...)
	if err != nil {
		return errResult(err), joinURIOutput{}, nil
	}
	return nil, joinURIOutput{URL: u}, nil
}

type isValidURLInput struct {
	URL string `json:"url" jsonschema:"String to check"`
}

type isValidURLOutput struct {
	Valid bool `json:"valid"`
}

func handleIsValidURL(_ context.Context, _ *mcp.CallToolRequest, input isValidURLInput) (*mcp.CallToolResult, isValidURLOutput, error) {
	return nil, isValidURLOutput{Valid: urlutil.IsValidURL(input.URL)}, nil
}
