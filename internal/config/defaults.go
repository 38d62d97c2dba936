package config

// Default descriptor values. A workspace abc.json overrides these per key.
const (
	DefaultPagesRoot   = "src/pages"
	DefaultBuildPath   = "build"
	DefaultPublicPath  = "/"
	DefaultHTMLInject  = "body"
	DefaultBase64Limit = 10000
)

// Default browserslist queries per uppercased mode name.
const (
	DefaultDevBrowsers  = "last 2 versions"
	DefaultProdBrowsers = "last 4 versions, ie >= 9"
)

// DefaultSWPolicy returns the default offline-precache policy.
// Precaching is opt-in.
func DefaultSWPolicy() SWPolicy {
	return SWPolicy{
		Enabled:        false,
		URLPrefix:      "/",
		IgnorePatterns: nil,
		Options:        nil,
	}
}

// MergeSWPolicy merges a descriptor-supplied policy over the defaults,
// override winning per key. Neither argument is mutated.
func MergeSWPolicy(base, override SWPolicy) SWPolicy {
	merged := SWPolicy{
		Enabled:   override.Enabled,
		URLPrefix: base.URLPrefix,
	}
	if override.URLPrefix != "" {
		merged.URLPrefix = override.URLPrefix
	}

	if len(override.IgnorePatterns) > 0 {
		merged.IgnorePatterns = append([]string(nil), override.IgnorePatterns...)
	} else if len(base.IgnorePatterns) > 0 {
		merged.IgnorePatterns = append([]string(nil), base.IgnorePatterns...)
	}

	if len(base.Options) > 0 || len(override.Options) > 0 {
		merged.Options = make(map[string]any, len(base.Options)+len(override.Options))
		for k, v := range base.Options {
			merged.Options[k] = v
		}
		for k, v := range override.Options {
			merged.Options[k] = v
		}
	}

	return merged
}
