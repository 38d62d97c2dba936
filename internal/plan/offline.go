package plan

import (
	"regexp"

	"github.com/macisi/ehdev-configs/internal/config"
	"github.com/macisi/ehdev-configs/internal/sw"
)

// CompileIgnorePatterns compiles raw ignore-pattern strings into matchers.
// Compilation is pure and idempotent; invalid syntax is a fatal
// configuration error, since a broken ignore rule must not silently
// precache everything.
func CompileIgnorePatterns(patterns []string) ([]*regexp.Regexp, error) {
	matchers := make([]*regexp.Regexp, 0, len(patterns))
	for _, raw := range patterns {
		m, err := regexp.Compile(raw)
		if err != nil {
			return nil, &ConfigurationError{
				Field:  "serviceWorkConf.ignorePatterns",
				Reason: err.Error(),
			}
		}
		matchers = append(matchers, m)
	}
	return matchers, nil
}

// planOffline merges the default and descriptor service-worker policies and
// returns the offline directives, or nothing when precaching is disabled.
// The registration directive follows the manifest directive: the
// registration script references the manifest's output location by
// convention.
func (p *Planner) planOffline() ([]Directive, error) {
	policy := config.MergeSWPolicy(config.DefaultSWPolicy(), p.cfg.ServiceWorker)
	if !policy.Enabled {
		return nil, nil
	}

	matchers, err := CompileIgnorePatterns(policy.IgnorePatterns)
	if err != nil {
		return nil, err
	}

	return []Directive{
		PrecacheDirective{
			URLPrefix:      policy.URLPrefix,
			IgnorePatterns: append([]string(nil), policy.IgnorePatterns...),
			Options:        policy.Options,
			Matchers:       matchers,
		},
		RegisterSWDirective{
			ScriptPath: sw.RegistrationScriptName,
			URLPrefix:  policy.URLPrefix,
		},
	}, nil
}
