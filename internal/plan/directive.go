package plan

import "regexp"

// Kind tags a build directive variant. The bundler adapter switches on the
// kind; the planner never interprets directives itself.
type Kind string

// Directive kinds, in no particular order.
const (
	KindModuleIDs  Kind = "module-ids"
	KindHotReload  Kind = "hot-reload"
	KindChunkHash  Kind = "chunk-hash"
	KindDefine     Kind = "define"
	KindHTML       Kind = "html"
	KindCopy       Kind = "copy"
	KindInclude    Kind = "include"
	KindChunk      Kind = "chunk"
	KindPrecache   Kind = "precache"
	KindRegisterSW Kind = "register-sw"
)

// Directive is one tagged build instruction in the plugin pipeline.
type Directive interface {
	Kind() Kind
}

// Module ID strategies.
const (
	IDStrategyNamed  = "named"
	IDStrategyHashed = "hashed"
)

// ModuleIDsDirective selects how the bundler assigns module identities:
// readable names in development, deterministic hashes in production.
type ModuleIDsDirective struct {
	Strategy string `json:"strategy"`
}

func (ModuleIDsDirective) Kind() Kind { return KindModuleIDs }

// HotReloadDirective enables hot module replacement. Development only.
type HotReloadDirective struct{}

func (HotReloadDirective) Kind() Kind { return KindHotReload }

// ChunkHashDirective requests deterministic chunk hashing so unchanged
// chunks keep their names across builds. Production only.
type ChunkHashDirective struct {
	Deterministic bool `json:"deterministic"`
}

func (ChunkHashDirective) Kind() Kind { return KindChunkHash }

// DefineDirective bakes literal values into bundled output.
type DefineDirective struct {
	Values map[string]string `json:"values"`
}

func (DefineDirective) Kind() Kind { return KindDefine }

// MinifyOptions is the fixed production HTML minification option set.
type MinifyOptions struct {
	RemoveComments            bool `json:"removeComments"`
	CollapseWhitespace        bool `json:"collapseWhitespace"`
	RemoveRedundantAttributes bool `json:"removeRedundantAttributes"`
	MinifyJS                  bool `json:"minifyJS"`
	MinifyCSS                 bool `json:"minifyCSS"`
	MinifyURLs                bool `json:"minifyURLs"`
	KeepClosingSlash          bool `json:"keepClosingSlash"`
}

// HTMLDirective emits one generated page. Chunks lists the chunk names to
// include, in load order: library chunks, the commons chunk, then the
// page's own entry.
type HTMLDirective struct {
	Filename string         `json:"filename"`
	Template string         `json:"template"`
	Inject   string         `json:"inject"`
	Chunks   []string       `json:"chunks"`
	Minify   *MinifyOptions `json:"minify,omitempty"`
}

func (HTMLDirective) Kind() Kind { return KindHTML }

// CopyDirective copies one vendored file verbatim into the output assets
// directory. Existence is not checked at plan time; a copy failure is
// build-fatal.
type CopyDirective struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (CopyDirective) Kind() Kind { return KindCopy }

// IncludeDirective lists assets to reference manually from generated pages.
// Externals are invisible to the bundler's static analysis, so their tags
// cannot come out of the dependency graph.
type IncludeDirective struct {
	Assets []string `json:"assets"`
}

func (IncludeDirective) Kind() Kind { return KindInclude }

// MinOccurrencesAll marks a chunk directive whose members are always split
// into the chunk, even when referenced once.
const MinOccurrencesAll = -1

// ChunkDirective instructs the bundler to extract a chunk from the listed
// member entries.
type ChunkDirective struct {
	Name           string   `json:"name"`
	MemberEntries  []string `json:"memberEntries"`
	MinOccurrences int      `json:"minOccurrences"`
}

func (ChunkDirective) Kind() Kind { return KindChunk }

// PrecacheDirective appends an offline-precache manifest generator to the
// pipeline. IgnorePatterns holds the raw pattern strings; Matchers the
// compiled equivalents used to filter precached outputs.
type PrecacheDirective struct {
	URLPrefix      string           `json:"urlPrefix"`
	IgnorePatterns []string         `json:"ignorePatterns"`
	Options        map[string]any   `json:"options,omitempty"`
	Matchers       []*regexp.Regexp `json:"-"`
}

func (PrecacheDirective) Kind() Kind { return KindPrecache }

// Ignores reports whether an output path is excluded from the precache
// manifest.
func (d PrecacheDirective) Ignores(path string) bool {
	for _, m := range d.Matchers {
		if m.MatchString(path) {
			return true
		}
	}
	return false
}

// RegisterSWDirective appends the service-worker registration script. It
// must follow the precache directive: the script references the manifest's
// output location by convention.
type RegisterSWDirective struct {
	ScriptPath string `json:"scriptPath"`
	URLPrefix  string `json:"urlPrefix"`
}

func (RegisterSWDirective) Kind() Kind { return KindRegisterSW }
