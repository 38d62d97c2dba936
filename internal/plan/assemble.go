package plan

import (
	"strconv"

	"github.com/macisi/ehdev-configs/internal/pages"
)

// productionMinify is the fixed HTML minification option set for
// production builds.
func productionMinify() *MinifyOptions {
	return &MinifyOptions{
		RemoveComments:            true,
		CollapseWhitespace:        true,
		RemoveRedundantAttributes: true,
		MinifyJS:                  true,
		MinifyCSS:                 true,
		MinifyURLs:                true,
		KeepClosingSlash:          true,
	}
}

// assembleDirectives produces the ordered directive pipeline. For a fixed
// config and mode the output is reproducible element for element;
// downstream caching relies on that.
//
// Order: module identity (+ hot reload or chunk hashing) -> env injection
// -> per-page HTML -> externals copy -> externals include -> chunk
// extraction (groups before commons) -> offline precache -> registration.
func (p *Planner) assembleDirectives(
	mode string,
	pgs []pages.Page,
	libChunkNames []string,
	chunkDirectives []ChunkDirective,
	ext ExternalsTable,
	offline []Directive,
	debug bool,
) []Directive {
	var ds []Directive

	if mode == modeDevelopment {
		ds = append(ds,
			ModuleIDsDirective{Strategy: IDStrategyNamed},
			HotReloadDirective{},
		)
	} else {
		ds = append(ds,
			ModuleIDsDirective{Strategy: IDStrategyHashed},
			ChunkHashDirective{Deterministic: true},
		)
	}

	ds = append(ds, DefineDirective{Values: map[string]string{
		"process.env.NODE_ENV": strconv.Quote(mode),
		"process.env.DEBUG":    strconv.FormatBool(debug),
	}})

	var minify *MinifyOptions
	if mode == modeProduction {
		minify = productionMinify()
	}
	for _, pg := range pgs {
		// Load order: library code, then shared code, then page code.
		chunks := make([]string, 0, len(libChunkNames)+2)
		chunks = append(chunks, libChunkNames...)
		chunks = append(chunks, commonsChunkName, pg.Name)

		ds = append(ds, HTMLDirective{
			Filename: pg.Name + ".html",
			Template: pg.Template,
			Inject:   p.cfg.HTMLInject,
			Chunks:   chunks,
			Minify:   minify,
		})
	}

	for _, c := range ext.Copies {
		ds = append(ds, c)
	}
	ds = append(ds, IncludeDirective{Assets: ext.Includes})

	for _, c := range chunkDirectives {
		ds = append(ds, c)
	}

	ds = append(ds, offline...)

	return ds
}
