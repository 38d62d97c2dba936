package bundler

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macisi/ehdev-configs/internal/plan"
	"github.com/macisi/ehdev-configs/internal/sw"
)

func TestEmitServiceWorker(t *testing.T) {
	g := testGraph(t)
	g.Directives = []plan.Directive{
		plan.PrecacheDirective{
			URLPrefix: "/",
			Matchers:  []*regexp.Regexp{regexp.MustCompile(`\.map$`)},
		},
		plan.RegisterSWDirective{ScriptPath: sw.RegistrationScriptName, URLPrefix: "/"},
	}
	b := New(g, nil)

	outputs := &buildOutputs{files: []string{"home-AAAA.js", "home-AAAA.js.map"}}
	require.NoError(t, b.emitServiceWorker(outputs, []string{"home.html"}))

	worker, err := os.ReadFile(filepath.Join(g.Output.Path, sw.ServiceWorkerName))
	require.NoError(t, err)
	assert.Contains(t, string(worker), "/home-AAAA.js")
	assert.Contains(t, string(worker), "/home.html", "emitted pages are precached")
	assert.NotContains(t, string(worker), ".map", "ignore matchers filter the manifest")

	register, err := os.ReadFile(filepath.Join(g.Output.Path, sw.RegistrationScriptName))
	require.NoError(t, err)
	assert.Contains(t, string(register), sw.ServiceWorkerName)
}

func TestEmitServiceWorker_NoDirectives(t *testing.T) {
	g := testGraph(t)
	b := New(g, nil)

	require.NoError(t, b.emitServiceWorker(&buildOutputs{}, nil))

	assert.NoFileExists(t, filepath.Join(g.Output.Path, sw.ServiceWorkerName))
	assert.NoFileExists(t, filepath.Join(g.Output.Path, sw.RegistrationScriptName))
}
