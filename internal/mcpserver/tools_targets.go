package mcpserver

import (
	"context"
	"errors"

	"github.com/beac0n5/OFFAT/targets"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type listTargetsInput struct {
	Spec         specInput `json:"spec"                    jsonschema:"The specification document to plan"`
	Server       string    `json:"server,omitempty"        jsonschema:"Server URL to target instead of the declared servers"`
	CheckURLs    *bool     `json:"check_urls,omitempty"    jsonschema:"Skip servers that fail the URL heuristic. Default from OFFAT_CHECK_URLS"`
	RemovePrefix *string   `json:"remove_prefix,omitempty" jsonschema:"Prefix stripped from URI segments before joining"`
	Offset       int       `json:"offset,omitempty"        jsonschema:"Skip the first N targets"`
	Limit        int       `json:"limit,omitempty"         jsonschema:"Maximum targets to return"`
}

type listTargetsOutput struct {
	Servers  []string                `json:"servers,omitempty"`
	Total    int                     `json:"total"`
	Returned int                     `json:"returned"`
	Targets  []targets.Target        `json:"targets,omitempty"`
	Skipped  []targets.SkippedServer `json:"skipped,omitempty"`
	Warnings []string                `json:"warnings,omitempty"`
}

func handleListTargets(_ context.Context, _ *mcp.CallToolRequest, input listTargetsInput) (*mcp.CallToolResult, listTargetsOutput, error) {
	doc, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), listTargetsOutput{}, nil
	}
	if doc.Failed() {
		return errResult(errors.New(doc.Err.Message())), listTargetsOutput{}, nil
	}

	checkURLs := cfg.CheckURLs
	if input.CheckURLs != nil {
		checkURLs = *input.CheckURLs
	}

	logger, notes := newNoteLogger()
	opts := []targets.Option{
		targets.WithLogger(logger),
		targets.WithURLCheck(checkURLs),
		targets.WithRemovePrefix(removePrefix(input.RemovePrefix)),
	}
	if input.Server != "" {
		opts = append(opts, targets.WithServerOverride(input.Server))
	}

	planner, err := targets.New(opts...)
	if err != nil {
		return errResult(err), listTargetsOutput{}, nil
	}
	plan, err := planner.Plan(doc)
	if err != nil {
		return errResult(err), listTargetsOutput{}, nil
	}

	page := paginate(plan.Targets, input.Offset, input.Limit)
	return nil, listTargetsOutput{
		Servers:  plan.ServerStrings(),
		Total:    len(plan.Targets),
		Returned: len(page),
		Targets:  page,
		Skipped:  plan.Skipped,
		Warnings: notes.notes(),
	}, nil
}
