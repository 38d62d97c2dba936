package bundler

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macisi/ehdev-configs/internal/plan"
)

func TestAssetTag(t *testing.T) {
	assert.Equal(t, `<script src="/home.js"></script>`, assetTag("/home.js"))
	assert.Equal(t, `<link rel="stylesheet" href="/home.css"/>`, assetTag("/home.css"))
}

func TestInject(t *testing.T) {
	template := []byte("<html><head></head><body><p>hi</p></body></html>")
	tags := []string{"<script src=\"/a.js\"></script>"}

	t.Run("body", func(t *testing.T) {
		got := string(inject(template, tags, "body"))
		assert.Equal(t, `<html><head></head><body><p>hi</p><script src="/a.js"></script>`+"\n"+`</body></html>`, got)
	})

	t.Run("head", func(t *testing.T) {
		got := string(inject(template, tags, "head"))
		assert.True(t, strings.Contains(got, `<script src="/a.js"></script>`+"\n"+`</head>`))
	})

	t.Run("missing closing tag appends", func(t *testing.T) {
		got := string(inject([]byte("<p>fragment</p>"), tags, "body"))
		assert.True(t, strings.HasPrefix(got, "<p>fragment</p>"))
		assert.Contains(t, got, `/a.js`)
	})

	t.Run("unknown mode appends", func(t *testing.T) {
		got := string(inject(template, tags, "nowhere"))
		assert.True(t, strings.HasSuffix(strings.TrimSpace(got), `<script src="/a.js"></script>`))
	})
}

func TestMinifyHTML(t *testing.T) {
	html := []byte("<html>  <!-- note -->\n<body>   <p>x</p>  </body>\n</html>")

	out := minifyHTML(html, &plan.MinifyOptions{RemoveComments: true, CollapseWhitespace: true})

	s := string(out)
	assert.NotContains(t, s, "note")
	assert.NotContains(t, s, "  ")
	assert.Contains(t, s, "<p>x</p>")
}

func TestEmitHTML(t *testing.T) {
	g := testGraph(t)
	templatePath := filepath.Join(t.TempDir(), "home.html")
	require.NoError(t, os.WriteFile(templatePath,
		[]byte("<html><head></head><body></body></html>"), 0o644))

	g.Directives = []plan.Directive{
		plan.IncludeDirective{Assets: []string{"assets/jquery.min.js"}},
		plan.HTMLDirective{
			Filename: "home.html",
			Template: templatePath,
			Inject:   "body",
			Chunks:   []string{"assets/base", "assets/commonLibs", "home"},
		},
	}
	b := New(g, nil)

	outputs := &buildOutputs{
		files: []string{"assets/base-AAAA.js", "home-BBBB.js", "home-BBBB.css"},
		byEntry: map[string]string{
			"assets/base": "assets/base-AAAA.js",
			"home":        "home-BBBB.js",
			// assets/commonLibs produced no bundle: absent on purpose.
		},
	}

	emitted, err := b.emitHTML(outputs)
	require.NoError(t, err)
	assert.Equal(t, []string{"home.html"}, emitted)

	raw, err := os.ReadFile(filepath.Join(g.Output.Path, "home.html"))
	require.NoError(t, err)
	html := string(raw)

	// Includes come first, then chunks in declared order, then page CSS.
	jquery := strings.Index(html, "/assets/jquery.min.js")
	base := strings.Index(html, "/assets/base-AAAA.js")
	page := strings.Index(html, "/home-BBBB.js")
	css := strings.Index(html, "/home-BBBB.css")
	require.NotEqual(t, -1, jquery)
	require.NotEqual(t, -1, base)
	require.NotEqual(t, -1, page)
	require.NotEqual(t, -1, css)
	assert.Less(t, jquery, base)
	assert.Less(t, base, page)
	assert.Less(t, page, css)

	assert.Contains(t, html, `<link rel="stylesheet" href="/home-BBBB.css"/>`)
	assert.NotContains(t, html, "commonLibs", "chunk without a bundle emits no tag")
}

func TestEmitHTML_MissingTemplate(t *testing.T) {
	g := testGraph(t)
	g.Directives = []plan.Directive{
		plan.HTMLDirective{Filename: "home.html", Template: "/nope/home.html", Inject: "body"},
	}
	b := New(g, nil)

	_, err := b.emitHTML(&buildOutputs{byEntry: map[string]string{}})
	require.Error(t, err)
}

func TestCSSFor(t *testing.T) {
	o := &buildOutputs{files: []string{"home-AAAA.js", "home-AAAA.css", "about-BBBB.js"}}
	assert.Equal(t, "home-AAAA.css", o.cssFor("home-AAAA.js"))
	assert.Empty(t, o.cssFor("about-BBBB.js"))
}
