// Package bundler interprets a finished build graph with esbuild. It is
// the only layer that knows the bundler's API: the planner hands over
// entries, rules, and tagged directives, and the adapter translates them
// into build options and post-build steps (vendor copies, HTML emission,
// service-worker emission).
package bundler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/google/uuid"

	"github.com/macisi/ehdev-configs/internal/plan"
)

// stubDir holds generated entry stubs for multi-module entries, relative
// to the build output path.
const stubDir = ".ehdev"

// Bundler executes one build graph.
type Bundler struct {
	graph  *plan.Graph
	logger *slog.Logger

	// inputByEntry maps each entry name to its esbuild input path, used to
	// resolve metafile outputs back to entry names.
	inputByEntry map[string]string
}

// New creates a Bundler for the given graph.
func New(g *plan.Graph, logger *slog.Logger) *Bundler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Bundler{graph: g, logger: logger, inputByEntry: make(map[string]string)}
}

// Options translates the graph into esbuild build options. Multi-module
// entries (hot-reload prefixes, library file lists) become generated entry
// stubs that import each module in declared order, preserving the graph's
// ordering contract.
func (b *Bundler) Options() (api.BuildOptions, error) {
	g := b.graph

	names := make([]string, 0, len(g.Entries))
	for name := range g.Entries {
		names = append(names, name)
	}
	sort.Strings(names)

	entryPoints := make([]api.EntryPoint, 0, len(names))
	for _, name := range names {
		modules := g.Entries[name]
		input := modules[0]
		if len(modules) > 1 {
			var err error
			input, err = b.writeEntryStub(name, modules)
			if err != nil {
				return api.BuildOptions{}, err
			}
		}
		b.inputByEntry[name] = input
		entryPoints = append(entryPoints, api.EntryPoint{
			InputPath:  input,
			OutputPath: name,
		})
	}

	opts := api.BuildOptions{
		EntryPointsAdvanced: entryPoints,
		EntryNames:          entryNames(g.Output.Filename),
		Bundle:              true,
		Write:               true,
		Metafile:            true,
		Outdir:              g.Output.Path,
		PublicPath:          g.Output.PublicPath,
		Platform:            api.PlatformBrowser,
		Format:              api.FormatIIFE,
		Target:              api.ES2015,
		NodePaths:           g.ResolveRoots,
		Loader:              loaderMap(g),
		LogLevel:            api.LogLevelWarning,
	}

	switch g.Devtool {
	case "inline-source-map":
		opts.Sourcemap = api.SourceMapInline
	case "source-map":
		opts.Sourcemap = api.SourceMapLinked
	default:
		opts.Sourcemap = api.SourceMapNone
	}

	// Aliased externals are resolved by name at bundle time, never copied
	// into the bundle.
	if len(g.Aliases) > 0 {
		opts.External = make([]string, 0, len(g.Aliases))
		for name := range g.Aliases {
			opts.External = append(opts.External, name)
		}
		sort.Strings(opts.External)
	}

	for _, d := range g.Directives {
		switch d := d.(type) {
		case plan.DefineDirective:
			opts.Define = d.Values
		case plan.ModuleIDsDirective:
			if d.Strategy == plan.IDStrategyHashed {
				opts.MinifySyntax = true
				opts.MinifyWhitespace = true
				opts.MinifyIdentifiers = true
			}
		}
	}

	return opts, nil
}

// Build runs esbuild and the post-build directives. Vendor-copy failures
// are build-fatal, never skipped.
func (b *Bundler) Build(ctx context.Context) error {
	id := uuid.NewString()[:8]
	b.logger.Info("starting build", "id", id, "mode", b.graph.Mode, "out", b.graph.Output.Path)

	opts, err := b.Options()
	if err != nil {
		return err
	}

	result := api.Build(opts)
	if len(result.Errors) > 0 {
		var msg strings.Builder
		for _, e := range result.Errors {
			if e.Location != nil {
				fmt.Fprintf(&msg, "%s:%d:%d: %s\n", e.Location.File, e.Location.Line, e.Location.Column, e.Text)
			} else {
				fmt.Fprintf(&msg, "%s\n", e.Text)
			}
		}
		return fmt.Errorf("bundle failed:\n%s", msg.String())
	}

	outputs, err := b.parseMetafile(result.Metafile)
	if err != nil {
		return err
	}

	if err := b.runCopies(ctx); err != nil {
		return err
	}

	emitted, err := b.emitHTML(outputs)
	if err != nil {
		return err
	}

	if err := b.emitServiceWorker(outputs, emitted); err != nil {
		return err
	}

	b.logger.Info("build finished", "id", id, "outputs", len(outputs.files))
	return nil
}

// writeEntryStub generates a module that imports each entry module in
// order and returns its path.
func (b *Bundler) writeEntryStub(name string, modules []string) (string, error) {
	dir := filepath.Join(b.graph.Output.Path, stubDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create entry stub directory: %w", err)
	}

	var src strings.Builder
	for _, m := range modules {
		fmt.Fprintf(&src, "import %q;\n", m)
	}

	// Entry names may contain path separators (assets/vendor).
	stub := filepath.Join(dir, strings.ReplaceAll(name, "/", "__")+".entry.js")
	if err := os.WriteFile(stub, []byte(src.String()), 0o644); err != nil {
		return "", fmt.Errorf("failed to write entry stub for %s: %w", name, err)
	}
	return stub, nil
}

// entryNames maps the graph's filename token pattern onto esbuild's.
func entryNames(filename string) string {
	if strings.Contains(filename, "[chunkhash") {
		return "[dir]/[name]-[hash]"
	}
	return "[dir]/[name]"
}

// loaderMap folds the sequenced rules into esbuild's extension map.
func loaderMap(g *plan.Graph) map[string]api.Loader {
	loaders := make(map[string]api.Loader)
	for _, r := range g.Rules {
		for _, ext := range r.Extensions {
			loaders[ext] = r.Loader
		}
	}
	return loaders
}

// buildOutputs is the decoded metafile view the post-build steps need.
type buildOutputs struct {
	// files lists output paths relative to the output directory.
	files []string
	// byEntry maps entry names to their output-relative bundle paths.
	byEntry map[string]string
}

type metafile struct {
	Outputs map[string]struct {
		EntryPoint string `json:"entryPoint"`
		CSSBundle  string `json:"cssBundle"`
	} `json:"outputs"`
}

func (b *Bundler) parseMetafile(raw string) (*buildOutputs, error) {
	var meta metafile
	if err := json.Unmarshal([]byte(raw), &meta); err != nil {
		return nil, fmt.Errorf("failed to parse metafile: %w", err)
	}

	out := &buildOutputs{byEntry: make(map[string]string)}

	for path, o := range meta.Outputs {
		rel := b.outputRel(path)
		out.files = append(out.files, rel)

		if o.EntryPoint == "" {
			continue
		}
		for name, input := range b.inputByEntry {
			if sameInput(o.EntryPoint, input) {
				out.byEntry[name] = rel
				break
			}
		}
	}

	sort.Strings(out.files)
	return out, nil
}

// outputRel maps a metafile output path (relative to the working
// directory) onto a path relative to the output directory.
func (b *Bundler) outputRel(path string) string {
	if r, err := filepath.Rel(b.graph.Output.Path, path); err == nil && !strings.HasPrefix(r, "..") {
		return r
	}
	if abs, err := filepath.Abs(path); err == nil {
		if r, err := filepath.Rel(b.graph.Output.Path, abs); err == nil && !strings.HasPrefix(r, "..") {
			return r
		}
	}
	return path
}

// sameInput compares a metafile entryPoint (often workspace-relative)
// against the absolute input path handed to esbuild.
func sameInput(entryPoint, input string) bool {
	if entryPoint == input {
		return true
	}
	return strings.HasSuffix(filepath.ToSlash(input), filepath.ToSlash(entryPoint))
}
