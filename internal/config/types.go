// Package config provides the project descriptor types for ehdev.
// The descriptor is a JSON document (abc.json) at the workspace root,
// merged over internal defaults; the merged ProjectConfig is constructed
// fresh per invocation and never mutated afterwards.
package config

import "strings"

// Mode names accepted by the planner.
const (
	ModeDevelopment = "development"
	ModeProduction  = "production"
)

// External describes one declared external dependency. The two facets are
// independent: a dependency may be import-aliased, vendor-copied, or both.
type External struct {
	// Alias is a global-reference expression resolved by name at bundle
	// time. The value is trusted verbatim.
	Alias string `koanf:"alias"`

	// VendorPath is a workspace-relative file copied into the output's
	// assets directory and included manually in generated pages.
	VendorPath string `koanf:"vendorPath"`
}

// SWPolicy holds the offline-precache (service worker) policy.
type SWPolicy struct {
	Enabled        bool     `koanf:"enable"`
	URLPrefix      string   `koanf:"urlPrefix"`
	IgnorePatterns []string `koanf:"ignorePatterns"`

	// Options carries passthrough precache options forwarded to the
	// manifest generator without interpretation.
	Options map[string]any `koanf:"options"`
}

// ProjectConfig is the merged project descriptor.
type ProjectConfig struct {
	PagesRoot string `koanf:"pagesRoot"`

	// Libraries maps a shared-library group name to an ordered list of
	// workspace-relative source files. The descriptor key keeps the
	// historical spelling "libiary".
	Libraries map[string][]string `koanf:"libiary"`

	Externals map[string]External `koanf:"externals"`

	// BrowserSupport is keyed by the uppercased mode name
	// ("DEVELOPMENT", "PRODUCTION") and holds a browserslist query.
	BrowserSupport map[string]string `koanf:"browser_support"`

	BuildPath  string `koanf:"build_path"`
	PublicPath string `koanf:"publicPath"`

	// HTMLInject selects where emitted asset tags are injected into page
	// templates ("body", "head", or "" for none).
	HTMLInject string `koanf:"htmlAssetsInject"`

	// Base64Limit is the size threshold (bytes) below which binary assets
	// are inlined as data URLs.
	Base64Limit int `koanf:"base64"`

	// Framework names the UI framework in use ("react" or empty).
	Framework string `koanf:"framework"`

	// ReactHotLoader requests the react-hot-loader patch module in
	// development entries. Only honored when Framework is "react".
	ReactHotLoader bool `koanf:"enableReactHotLoader"`

	ServiceWorker SWPolicy `koanf:"serviceWorkConf"`

	// WorkspaceRoot is the absolute project root. Set by the loader, not a
	// descriptor key.
	WorkspaceRoot string `koanf:"-"`
}

// BrowserQuery returns the browserslist query for the given mode, falling
// back to the production query when the mode has no entry.
func (c *ProjectConfig) BrowserQuery(mode string) string {
	if q, ok := c.BrowserSupport[strings.ToUpper(mode)]; ok && q != "" {
		return q
	}
	return c.BrowserSupport["PRODUCTION"]
}
