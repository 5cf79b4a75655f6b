package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	offat "github.com/beac0n5/OFFAT"
	"github.com/beac0n5/OFFAT/cmd/offat/commands"
	"github.com/beac0n5/OFFAT/internal/mcpserver"
)

// handlers maps command names to their implementations.
var handlers = map[string]func(args []string) error{
	"load":      commands.HandleLoad,
	"server":    commands.HandleServer,
	"join":      commands.HandleJoin,
	"check-url": commands.HandleCheckURL,
	"targets":   commands.HandleTargets,
	"mcp":       handleMCP,
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) < 1 {
		printUsage()
		return 1
	}

	command := args[0]
	switch command {
	case "version", "-v", "--version":
		fmt.Printf("offat %s\n", offat.Version())
		fmt.Println(offat.BuildInfo())
		return 0
	case "help", "-h", "--help":
		printUsage()
		return 0
	}

	handler, ok := handlers[command]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", suggestion)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		return 1
	}

	if err := handler(args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func handleMCP(_ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return mcpserver.Run(ctx)
}

// suggestCommand returns the known command closest to input, or "" when none
// is within an edit distance of 2.
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for name := range handlers {
		if d := levenshtein(input, name); d < bestDist || (d == bestDist && name < best) {
			best, bestDist = name, d
		}
	}
	for _, name := range []string{"version", "help"} {
		if d := levenshtein(input, name); d < bestDist || (d == bestDist && name < best) {
			best, bestDist = name, d
		}
	}
	return best
}

func levenshtein(a, b string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func printUsage() {
	fmt.Println(`offat - OpenAPI request target planning

Usage:
  offat <command> [options]

Commands:
  load        Load a JSON or YAML specification and report its format
  server      Split a server URL into scheme, host, port and base path
  join        Join a base URL with path segments
  check-url   Check whether a string looks like an http(s) URL
  targets     List the request targets of a specification
  mcp         Run the MCP server over stdio
  version     Show version information
  help        Show this help message

Examples:
  offat load openapi.yaml
  offat server https://api.example.com:8443/v1
  offat join https://example.com /v2/ /pet/findByStatus/
  offat targets --format json -o plan.json openapi.yaml

Environment:
  OFFAT_LOG_LEVEL, OFFAT_LOG_FORMAT, OFFAT_MAX_FILE_SIZE,
  OFFAT_REMOVE_PREFIX, OFFAT_CHECK_URLS

Run 'offat <command> --help' for more information on a command.`)
}
