package plan

import (
	"fmt"

	"github.com/macisi/ehdev-configs/internal/pages"
)

// Hot-reload bootstrap modules prepended to development entries. Relative
// order is fixed: the hot runtime must be initialized before page code runs.
const (
	hotPatchModule   = "react-hot-loader/patch"
	hotRuntimeModule = "webpack/hot/dev-server"
)

// devClientModule returns the dev-server client module, parameterized with
// the configured dev-server port.
func devClientModule(port int) string {
	return fmt.Sprintf("webpack-dev-server/client?http://127.0.0.1:%d", port)
}

// buildPageEntries produces one ordered module list per discovered page.
// In development the page script is prefixed with the bootstrap modules;
// in production the list is exactly the page's own script.
// A page without an entry script is fatal: the graph cannot be built.
func (p *Planner) buildPageEntries(pgs []pages.Page, mode string, port int) (map[string][]string, []string, error) {
	entries := make(map[string][]string, len(pgs))
	names := make([]string, 0, len(pgs))

	for _, pg := range pgs {
		if pg.Script == "" {
			return nil, nil, &ResolutionError{
				Path: pg.Name + "/index.js",
				Want: "page script",
			}
		}
		if _, exists := entries[pg.Name]; exists {
			return nil, nil, &CollisionError{Key: pg.Name}
		}

		var modules []string
		if mode == modeDevelopment {
			if p.cfg.Framework == "react" && p.cfg.ReactHotLoader {
				modules = append(modules, hotPatchModule)
			}
			modules = append(modules, devClientModule(port), hotRuntimeModule)
		}
		modules = append(modules, pg.Script)

		entries[pg.Name] = modules
		names = append(names, pg.Name)
	}

	return entries, names, nil
}
