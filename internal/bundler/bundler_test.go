package bundler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macisi/ehdev-configs/internal/plan"
	"github.com/macisi/ehdev-configs/internal/rules"
)

func testGraph(t *testing.T) *plan.Graph {
	t.Helper()
	return &plan.Graph{
		Mode: "production",
		Entries: map[string][]string{
			"home": {"/ws/src/pages/home/index.js"},
		},
		Output: plan.Output{
			Path:          t.TempDir(),
			PublicPath:    "/",
			Filename:      "[name].[chunkhash:8].js",
			ChunkFilename: "[name].[chunkhash:8].chunk.js",
		},
		Rules:   []rules.Rule{rules.Script(false, "ie >= 9", "/ws/node_modules")},
		Target:  "browser",
		Devtool: "source-map",
	}
}

func TestEntryNames(t *testing.T) {
	assert.Equal(t, "[dir]/[name]-[hash]", entryNames("[name].[chunkhash:8].js"))
	assert.Equal(t, "[dir]/[name]", entryNames("[name].js"))
}

func TestLoaderMap(t *testing.T) {
	g := testGraph(t)
	g.Rules = []rules.Rule{rules.Script(false, "", ""), rules.SVG()}

	loaders := loaderMap(g)

	assert.Equal(t, api.LoaderJSX, loaders[".js"])
	assert.Equal(t, api.LoaderJSX, loaders[".jsx"])
	assert.Equal(t, api.LoaderDataURL, loaders[".svg"])
}

func TestWriteEntryStub(t *testing.T) {
	g := testGraph(t)
	b := New(g, nil)

	stub, err := b.writeEntryStub("assets/base", []string{"/ws/lib/zepto.js", "/ws/lib/fastclick.js"})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(g.Output.Path, stubDir, "assets__base.entry.js"), stub)

	raw, err := os.ReadFile(stub)
	require.NoError(t, err)
	assert.Equal(t, "import \"/ws/lib/zepto.js\";\nimport \"/ws/lib/fastclick.js\";\n", string(raw),
		"modules imported in declared order")
}

func TestOptions(t *testing.T) {
	g := testGraph(t)
	g.Entries["about"] = []string{"/ws/src/pages/about/index.js"}
	g.Aliases = map[string]string{"jquery": "window.jQuery", "backbone": "window.Backbone"}
	g.ResolveRoots = []string{"/ws/node_modules"}
	g.Directives = []plan.Directive{
		plan.ModuleIDsDirective{Strategy: plan.IDStrategyHashed},
		plan.DefineDirective{Values: map[string]string{"process.env.NODE_ENV": `"production"`}},
	}
	b := New(g, nil)

	opts, err := b.Options()
	require.NoError(t, err)

	require.Len(t, opts.EntryPointsAdvanced, 2)
	assert.Equal(t, "about", opts.EntryPointsAdvanced[0].OutputPath, "entries in sorted order")
	assert.Equal(t, "home", opts.EntryPointsAdvanced[1].OutputPath)

	assert.Equal(t, "[dir]/[name]-[hash]", opts.EntryNames)
	assert.True(t, opts.Bundle)
	assert.True(t, opts.Metafile)
	assert.Equal(t, g.Output.Path, opts.Outdir)
	assert.Equal(t, api.PlatformBrowser, opts.Platform)
	assert.Equal(t, api.FormatIIFE, opts.Format)
	assert.Equal(t, []string{"/ws/node_modules"}, opts.NodePaths)
	assert.Equal(t, api.SourceMapLinked, opts.Sourcemap)

	assert.Equal(t, []string{"backbone", "jquery"}, opts.External, "aliases sorted for reproducibility")
	assert.Equal(t, `"production"`, opts.Define["process.env.NODE_ENV"])

	assert.True(t, opts.MinifySyntax, "hashed module ids imply minification")
	assert.True(t, opts.MinifyWhitespace)
	assert.True(t, opts.MinifyIdentifiers)
}

func TestOptions_DevelopmentSourcemap(t *testing.T) {
	g := testGraph(t)
	g.Devtool = "inline-source-map"
	g.Output.Filename = "[name].js"
	g.Directives = []plan.Directive{plan.ModuleIDsDirective{Strategy: plan.IDStrategyNamed}}
	b := New(g, nil)

	opts, err := b.Options()
	require.NoError(t, err)

	assert.Equal(t, api.SourceMapInline, opts.Sourcemap)
	assert.Equal(t, "[dir]/[name]", opts.EntryNames)
	assert.False(t, opts.MinifySyntax, "named module ids stay readable")
}

func TestOptions_MultiModuleEntryGetsStub(t *testing.T) {
	g := testGraph(t)
	g.Entries["home"] = []string{
		"webpack-dev-server/client?http://127.0.0.1:3000",
		"webpack/hot/dev-server",
		"/ws/src/pages/home/index.js",
	}
	b := New(g, nil)

	opts, err := b.Options()
	require.NoError(t, err)

	require.Len(t, opts.EntryPointsAdvanced, 1)
	input := opts.EntryPointsAdvanced[0].InputPath
	assert.Equal(t, filepath.Join(g.Output.Path, stubDir, "home.entry.js"), input)
	assert.Equal(t, input, b.inputByEntry["home"])
}

func TestOutputRel(t *testing.T) {
	g := testGraph(t)
	b := New(g, nil)

	assert.Equal(t, "home.js", b.outputRel(filepath.Join(g.Output.Path, "home.js")))
	assert.Equal(t, filepath.Join("assets", "base.js"), b.outputRel(filepath.Join(g.Output.Path, "assets", "base.js")))
	assert.Equal(t, "/elsewhere/x.js", b.outputRel("/elsewhere/x.js"), "paths outside the output dir pass through")
}

func TestParseMetafile(t *testing.T) {
	g := testGraph(t)
	b := New(g, nil)
	b.inputByEntry["home"] = "/ws/src/pages/home/index.js"

	out := g.Output.Path
	meta := `{"outputs": {
		"` + filepath.ToSlash(filepath.Join(out, "home-ABCD1234.js")) + `": {"entryPoint": "src/pages/home/index.js"},
		"` + filepath.ToSlash(filepath.Join(out, "home-ABCD1234.js.map")) + `": {},
		"` + filepath.ToSlash(filepath.Join(out, "chunk-XYZ.js")) + `": {}
	}}`

	outputs, err := b.parseMetafile(meta)
	require.NoError(t, err)

	assert.Equal(t, []string{"chunk-XYZ.js", "home-ABCD1234.js", "home-ABCD1234.js.map"}, outputs.files)
	assert.Equal(t, "home-ABCD1234.js", outputs.byEntry["home"])
}

func TestParseMetafile_Malformed(t *testing.T) {
	b := New(testGraph(t), nil)
	_, err := b.parseMetafile("{not json")
	require.Error(t, err)
}

func TestSameInput(t *testing.T) {
	assert.True(t, sameInput("src/pages/home/index.js", "/ws/src/pages/home/index.js"))
	assert.True(t, sameInput("/abs/a.js", "/abs/a.js"))
	assert.False(t, sameInput("src/pages/about/index.js", "/ws/src/pages/home/index.js"))
}
