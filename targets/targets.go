package targets

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"github.com/beac0n5/OFFAT/internal/httputil"
	"github.com/beac0n5/OFFAT/internal/maputil"
	"github.com/beac0n5/OFFAT/loader"
	"github.com/beac0n5/OFFAT/logging"
	"github.com/beac0n5/OFFAT/oaserrors"
	"github.com/beac0n5/OFFAT/serverurl"
	"github.com/beac0n5/OFFAT/urlutil"
)

// Target is a single operation bound to a concrete server.
type Target struct {
	Method      string `json:"method" yaml:"method"`
	Path        string `json:"path" yaml:"path"`
	URL         string `json:"url" yaml:"url"`
	Server      string `json:"server" yaml:"server"`
	OperationID string `json:"operationId,omitempty" yaml:"operationId,omitempty"`
}

// SkippedServer records a declared server that could not be used.
type SkippedServer struct {
	URL    string `json:"url" yaml:"url"`
	Reason string `json:"reason" yaml:"reason"`
}

// Plan is the outcome of planning a document.
type Plan struct {
	// Source is the path the document was loaded from
	Source string `json:"source" yaml:"source"`
	// Servers are the usable servers, in discovery order without duplicates
	Servers []*serverurl.ServerURL `json:"-" yaml:"-"`
	// Targets are ordered by server, then path, then method
	Targets []Target `json:"targets" yaml:"targets"`
	// Skipped lists servers that were rejected
	Skipped []SkippedServer `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// ServerStrings returns the usable servers formatted as origin plus base path.
func (p *Plan) ServerStrings() []string {
	out := make([]string, len(p.Servers))
	for i, s := range p.Servers {
		out[i] = s.String()
	}
	return out
}

// Planner builds Plans. It is safe for concurrent use.
type Planner struct {
	cfg      *plannerConfig
	parser   *serverurl.Parser
	composer urlutil.Composer
}

// New creates a Planner.
func New(opts ...Option) (*Planner, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("targets: invalid options: %w", err)
	}
	return &Planner{
		cfg:      cfg,
		parser:   serverurl.New(serverurl.WithLogger(cfg.logger)),
		composer: urlutil.Composer{RemovePrefix: cfg.removePrefix},
	}, nil
}

// Plan computes the request targets for doc.
//
// A failed document returns an error wrapping its *oaserrors.LoadError. A
// document whose root is not a mapping, or that declares neither "openapi" nor
// "swagger" while no server override is set, returns an error matching
// oaserrors.ErrParse.
func (p *Planner) Plan(doc *loader.Document) (*Plan, error) {
	if doc == nil {
		return nil, errors.New("targets: nil document")
	}
	if doc.Failed() {
		return nil, fmt.Errorf("targets: %w", doc.Err)
	}
	root, ok := doc.Map()
	if !ok {
		return nil, fmt.Errorf("targets: %w: %s: document root is not a mapping", oaserrors.ErrParse, doc.Path)
	}

	log := p.cfg.logger.With("source", doc.Path)
	plan := &Plan{Source: doc.Path, Targets: []Target{}}

	var rawServers []string
	if p.cfg.serverOverride != "" {
		rawServers = []string{p.cfg.serverOverride}
	} else {
		rawServers, ok = discoverServers(root)
		if !ok {
			return nil, fmt.Errorf("targets: %w: %s: neither an OpenAPI 3 nor a Swagger 2 document", oaserrors.ErrParse, doc.Path)
		}
	}

	plan.Servers, plan.Skipped = p.resolveServers(log, rawServers)
	if len(plan.Servers) == 0 {
		log.Warn("no usable servers", "declared", len(rawServers))
		return plan, nil
	}

	ops := collectOperations(root)
	for _, server := range plan.Servers {
		origin := server.Origin()
		for _, op := range ops {
			u, err := p.composer.Join(origin, server.BasePath, op.path)
			if err != nil {
				log.Warn("skipping operation", "path", op.path, "method", op.method, "error", err)
				continue
			}
			plan.Targets = append(plan.Targets, Target{
				Method:      op.method,
				Path:        op.path,
				URL:         u,
				Server:      server.String(),
				OperationID: op.operationID,
			})
		}
	}

	log.Debug("planned targets", "servers", len(plan.Servers), "targets", len(plan.Targets), "skipped", len(plan.Skipped))
	return plan, nil
}

func (p *Planner) resolveServers(log logging.Logger, rawServers []string) ([]*serverurl.ServerURL, []SkippedServer) {
	var (
		servers []*serverurl.ServerURL
		skipped []SkippedServer
		seen    = make(map[string]bool, len(rawServers))
	)
	for _, raw := range rawServers {
		if p.cfg.checkURLs && !urlutil.IsValidURL(raw) {
			log.Warn("skipping server", "url", raw, "reason", "not a valid http(s) URL")
			skipped = append(skipped, SkippedServer{URL: raw, Reason: "not a valid http(s) URL"})
			continue
		}
		s, err := p.parser.Parse(raw)
		if err != nil {
			log.Warn("skipping server", "url", raw, "error", err)
			skipped = append(skipped, SkippedServer{URL: raw, Reason: err.Error()})
			continue
		}
		if key := serverKey(s); !seen[key] {
			seen[key] = true
			servers = append(servers, s)
		}
	}
	return servers, skipped
}

// serverKey identifies a parsed server for deduplication. Hosts compare
// case-insensitively and may be internationalized, so they are Unicode
// case-folded; the base path stays case-sensitive.
func serverKey(s *serverurl.ServerURL) string {
	return s.Scheme + "://" + cases.Fold().String(s.Host) + ":" + strconv.Itoa(s.Port) + s.BasePath
}

type operation struct {
	path        string
	method      string
	operationID string
}

// collectOperations lists the operations under "paths", sorted by path and
// then in httputil.Methods order. Extension keys and non-mapping path items
// are ignored.
func collectOperations(root map[string]any) []operation {
	paths, ok := root["paths"].(map[string]any)
	if !ok {
		return nil
	}

	var ops []operation
	for _, path := range maputil.SortedKeys(paths) {
		item, ok := paths[path].(map[string]any)
		if !ok || !strings.HasPrefix(path, "/") {
			continue
		}
		for _, method := range httputil.Methods {
			raw, ok := item[method]
			if !ok {
				continue
			}
			op := operation{path: path, method: method}
			if m, ok := raw.(map[string]any); ok {
				op.operationID, _ = m["operationId"].(string)
			}
			ops = append(ops, op)
		}
	}
	return ops
}
