// Package plan synthesizes a complete build graph from a merged project
// descriptor: page entries, shared-library chunks, externals, loader rules,
// and an ordered pipeline of tagged build directives. It is a planner, not
// a bundler; the graph is interpreted by the bundler adapter.
package plan

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/macisi/ehdev-configs/internal/config"
	"github.com/macisi/ehdev-configs/internal/pages"
	"github.com/macisi/ehdev-configs/internal/rules"
)

const (
	modeDevelopment = config.ModeDevelopment
	modeProduction  = config.ModeProduction

	defaultDevPort = 8080
)

// Output describes the bundler's output policy. Production filenames carry
// an 8-character content hash so unchanged output keeps stable names.
type Output struct {
	Path          string `json:"path"`
	PublicPath    string `json:"publicPath"`
	Filename      string `json:"filename"`
	ChunkFilename string `json:"chunkFilename"`
}

// Graph is the finished build specification handed to the bundler adapter.
// It is constructed once per Plan call and never mutated afterwards.
type Graph struct {
	Mode         string
	Entries      map[string][]string
	Output       Output
	Rules        []rules.Rule
	Aliases      map[string]string
	Target       string
	Devtool      string
	ResolveRoots []string
	Directives   []Directive
}

// Options carries per-invocation parameters that are not part of the
// project descriptor.
type Options struct {
	// Port is the dev-server port baked into development entries.
	// Zero selects the default.
	Port int

	// Debug is baked into the bundle as a literal value.
	Debug bool
}

// Planner builds graphs from one immutable ProjectConfig.
type Planner struct {
	cfg    *config.ProjectConfig
	logger *slog.Logger
}

// New creates a Planner. The config must not be shared across invocations
// with differing overrides; each invocation gets its own merged value.
func New(cfg *config.ProjectConfig, logger *slog.Logger) *Planner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Planner{cfg: cfg, logger: logger}
}

// Plan assembles the build graph for the given mode. Construction is
// single-pass and synchronous; all detectable errors (missing sources,
// invalid patterns, key collisions) fail here rather than at bundle time.
func (p *Planner) Plan(mode string, opts Options) (*Graph, error) {
	if mode != modeDevelopment && mode != modeProduction {
		return nil, &ConfigurationError{
			Field:  "mode",
			Reason: fmt.Sprintf("must be %q or %q, got %q", modeDevelopment, modeProduction, mode),
		}
	}
	if p.cfg.PagesRoot == "" {
		return nil, &ConfigurationError{Field: "pagesRoot", Reason: "must not be empty"}
	}
	if opts.Port == 0 {
		opts.Port = defaultDevPort
	}

	pgs, err := pages.Discover(p.cfg.PagesRoot)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("discovered pages", "count", len(pgs), "root", p.cfg.PagesRoot)

	entries, pageNames, err := p.buildPageEntries(pgs, mode, opts.Port)
	if err != nil {
		return nil, err
	}

	chunkDirectives, libChunkNames, err := p.planLibraries(entries, pageNames)
	if err != nil {
		return nil, err
	}

	ext := p.resolveExternals()

	offline, err := p.planOffline()
	if err != nil {
		return nil, err
	}

	directives := p.assembleDirectives(mode, pgs, libChunkNames, chunkDirectives, ext, offline, opts.Debug)

	dev := mode == modeDevelopment
	g := &Graph{
		Mode:    mode,
		Entries: entries,
		Output: Output{
			Path:          p.cfg.BuildPath,
			PublicPath:    p.cfg.PublicPath,
			Filename:      "[name].js",
			ChunkFilename: "[name].chunk.js",
		},
		Rules:        p.sequenceRules(mode),
		Aliases:      ext.Aliases,
		Target:       "browser",
		Devtool:      "inline-source-map",
		ResolveRoots: []string{filepath.Join(p.cfg.WorkspaceRoot, "node_modules")},
		Directives:   directives,
	}
	if !dev {
		g.Output.Filename = "[name].[chunkhash:8].js"
		g.Output.ChunkFilename = "[name].[chunkhash:8].chunk.js"
		g.Devtool = "source-map"
	}

	p.logger.Info("build graph assembled",
		"mode", mode,
		"pages", len(pageNames),
		"libraries", len(libChunkNames),
		"directives", len(directives))

	return g, nil
}

// sequenceRules orders the loader-factory outputs. The planner sequences
// the rules; it never inspects their internals.
func (p *Planner) sequenceRules(mode string) []rules.Rule {
	dev := mode == modeDevelopment
	query := p.cfg.BrowserQuery(mode)
	root := filepath.Join(p.cfg.WorkspaceRoot, "node_modules")
	return []rules.Rule{
		rules.Script(dev, query, root),
		rules.Style(dev, query),
		rules.Image(p.cfg.Base64Limit),
		rules.SVG(),
		rules.HTML(),
		rules.File(),
	}
}

// taggedDirective is the wire form of a directive: the variant tag plus its
// parameters.
type taggedDirective struct {
	Kind Kind      `json:"kind"`
	Spec Directive `json:"spec"`
}

// MarshalJSON renders the graph with each directive tagged by kind, so the
// pipeline stays readable and diffable in `ehdev plan` output.
func (g *Graph) MarshalJSON() ([]byte, error) {
	tagged := make([]taggedDirective, len(g.Directives))
	for i, d := range g.Directives {
		tagged[i] = taggedDirective{Kind: d.Kind(), Spec: d}
	}

	return json.Marshal(struct {
		Mode         string              `json:"mode"`
		Entry        map[string][]string `json:"entry"`
		Output       Output              `json:"output"`
		Rules        []rules.Rule        `json:"rules"`
		Externals    map[string]string   `json:"externals"`
		Target       string              `json:"target"`
		Devtool      string              `json:"devtool"`
		ResolveRoots []string            `json:"resolveRoots"`
		Plugins      []taggedDirective   `json:"plugins"`
	}{
		Mode:         g.Mode,
		Entry:        g.Entries,
		Output:       g.Output,
		Rules:        g.Rules,
		Externals:    g.Aliases,
		Target:       g.Target,
		Devtool:      g.Devtool,
		ResolveRoots: g.ResolveRoots,
		Plugins:      tagged,
	})
}
