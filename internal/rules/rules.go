// Package rules provides the loader-rule factories sequenced into the build
// graph. Each factory returns a descriptor over an esbuild loader; the
// planner orders them and the bundler adapter folds them into its loader
// map without further interpretation.
package rules

import "github.com/evanw/esbuild/pkg/api"

// Rule describes how one class of source files is loaded.
type Rule struct {
	Name       string         `json:"name"`
	Extensions []string       `json:"extensions"`
	Loader     api.Loader     `json:"loader"`
	Options    map[string]any `json:"options,omitempty"`
}

// Script builds the rule for JavaScript/JSX sources, targeted at the
// mode's browser-support query and resolved against the given module root.
func Script(dev bool, browserTargets, moduleRoot string) Rule {
	return Rule{
		Name:       "script",
		Extensions: []string{".js", ".jsx"},
		Loader:     api.LoaderJSX,
		Options: map[string]any{
			"targets": browserTargets,
			"root":    moduleRoot,
			"hot":     dev,
		},
	}
}

// Style builds the rule for stylesheets. Minification follows the mode.
func Style(dev bool, browserTargets string) Rule {
	return Rule{
		Name:       "style",
		Extensions: []string{".css", ".less"},
		Loader:     api.LoaderCSS,
		Options: map[string]any{
			"targets": browserTargets,
			"minify":  !dev,
		},
	}
}

// Image builds the rule for bitmap images. Files at or under the base64
// threshold are inlined as data URLs.
func Image(base64Limit int) Rule {
	return Rule{
		Name:       "image",
		Extensions: []string{".png", ".jpg", ".jpeg", ".gif"},
		Loader:     api.LoaderDataURL,
		Options: map[string]any{
			"limit": base64Limit,
		},
	}
}

// SVG builds the rule for SVG assets.
func SVG() Rule {
	return Rule{
		Name:       "svg",
		Extensions: []string{".svg"},
		Loader:     api.LoaderDataURL,
	}
}

// HTML builds the rule for HTML fragments imported from page code.
func HTML() Rule {
	return Rule{
		Name:       "html",
		Extensions: []string{".htm", ".html"},
		Loader:     api.LoaderText,
	}
}

// File builds the catch-all rule for remaining static assets, emitted as
// files next to the bundles.
func File() Rule {
	return Rule{
		Name:       "file",
		Extensions: []string{".woff", ".woff2", ".ttf", ".eot", ".ico"},
		Loader:     api.LoaderFile,
	}
}
