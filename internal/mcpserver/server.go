// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes offat's input normalization as MCP tools over stdio.
package mcpserver

import (
	"bytes"
	"context"
	"log/slog"
	"regexp"
	"strings"
	"sync"

	offat "github.com/beac0n5/OFFAT"
	"github.com/beac0n5/OFFAT/logging"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `offat MCP server: loads OpenAPI/Swagger documents, parses server URLs, composes request URLs and lists the request targets a test run would cover.

Configuration: defaults are configurable via OFFAT_* environment variables set in your MCP client config.

Key settings:
- OFFAT_MAX_FILE_SIZE (default: 67108864) - largest spec file the loader reads, 0 disables the limit
- OFFAT_REMOVE_PREFIX (default: /) - prefix stripped from each URI segment before joining
- OFFAT_CHECK_URLS (default: false) - skip servers failing the URL heuristic in list_targets
- OFFAT_TARGET_LIMIT (default: 100) - default page size for list_targets
- OFFAT_CACHE_ENABLED (default: true) - disable document caching entirely
- OFFAT_CACHE_FILE_TTL (default: 15m) - cache TTL for file inputs

Caching: loaded documents are cached per session. File entries use path+mtime as key. A background sweeper removes expired entries every 60s.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		specCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "offat", Version: offat.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "load_spec",
		Description: "Load an OpenAPI or Swagger document from a .json/.yaml file or inline content. Returns the format, size, declared version, top-level keys, path count and declared servers. Load failures (empty path, missing file, invalid extension, malformed content) are reported in the error field rather than as a tool error. Use full=true to include the decoded document as JSON.",
	}, handleLoadSpec)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "parse_server_url",
		Description: "Split a server URL into scheme, host, port and base path. Only http and https are accepted. An invalid or missing port falls back to the scheme default (80 or 443); fallbacks are reported in warnings.",
	}, handleParseServerURL)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "join_uri",
		Description: "Join a base URL with path segments following RFC 3986 resolution. The remove_prefix (default from OFFAT_REMOVE_PREFIX, normally /) is stripped from each segment first so it is appended rather than replacing the base path.",
	}, handleJoinURI)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "is_valid_url",
		Description: "Cheap heuristic check that a string looks like an http or https URL with a lower-case host name or IPv4 address. Not a full validator.",
	}, handleIsValidURL)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_targets",
		Description: "List the request targets (method, path, URL) for every usable server and operation of a specification. Servers that fail to parse are reported in skipped. Use server to override the declared servers and offset/limit to paginate. Default limit is configurable via OFFAT_TARGET_LIMIT.",
	}, handleListTargets)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.TargetLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.TargetLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// pathPattern matches absolute paths under common filesystem roots.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

// sanitizeError returns the error text with absolute filesystem paths
// replaced by "<path>".
func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

// noteSink collects warn and error records emitted while a tool runs so they
// can be returned to the client.
type noteSink struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (n *noteSink) Write(p []byte) (int, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.buf.Write(p)
}

// notes returns one entry per record, with filesystem paths redacted.
func (n *noteSink) notes() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []string
	for _, line := range strings.Split(strings.TrimSpace(n.buf.String()), "\n") {
		if line != "" {
			out = append(out, pathPattern.ReplaceAllString(line, "<path>"))
		}
	}
	return out
}

func newNoteLogger() (logging.Logger, *noteSink) {
	sink := &noteSink{}
	h := slog.NewTextHandler(sink, &slog.HandlerOptions{
		Level: slog.LevelWarn,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	})
	return logging.NewSlogAdapter(slog.New(h)), sink
}

// removePrefix returns the per-call override or the configured default.
func removePrefix(override *string) string {
	if override != nil {
		return *override
	}
	return cfg.RemovePrefix
}
