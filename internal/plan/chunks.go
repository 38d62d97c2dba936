package plan

import (
	"os"
	"path/filepath"
	"sort"
)

// Library chunk naming. The commons chunk collects code shared across
// pages that no declared group claimed.
const (
	libraryEntryPrefix = "assets/"
	commonsChunkName   = "assets/commonLibs"
)

// libraryChunkName returns the entry/chunk key for a library group.
func libraryChunkName(group string) string {
	return libraryEntryPrefix + group
}

// planLibraries adds one entry per declared library group and returns the
// chunk directives plus the ordered library chunk names.
//
// Group files are resolved against the workspace root in declaration order
// and must exist. Each group directive is scoped to its own entry with
// MinOccurrencesAll, so its code always splits into the library chunk.
// The commons directive covers every page entry (never library entries)
// and is appended strictly after the group directives, so its set exclusion
// cannot re-capture modules already committed to a library chunk.
//
// JSON object decoding does not preserve key order, so declaration order
// over groups is defined as lexicographic over group names.
func (p *Planner) planLibraries(entries map[string][]string, pageNames []string) ([]ChunkDirective, []string, error) {
	groups := make([]string, 0, len(p.cfg.Libraries))
	for group := range p.cfg.Libraries {
		groups = append(groups, group)
	}
	sort.Strings(groups)

	directives := make([]ChunkDirective, 0, len(groups)+1)
	chunkNames := make([]string, 0, len(groups))

	for _, group := range groups {
		name := libraryChunkName(group)
		if _, exists := entries[name]; exists {
			return nil, nil, &CollisionError{Key: name}
		}

		files := p.cfg.Libraries[group]
		resolved := make([]string, 0, len(files))
		for _, f := range files {
			abs := filepath.Join(p.cfg.WorkspaceRoot, f)
			if _, err := os.Stat(abs); err != nil {
				return nil, nil, &ResolutionError{Path: f, Want: "library file"}
			}
			resolved = append(resolved, abs)
		}

		entries[name] = resolved
		chunkNames = append(chunkNames, name)
		directives = append(directives, ChunkDirective{
			Name:           name,
			MemberEntries:  []string{name},
			MinOccurrences: MinOccurrencesAll,
		})
	}

	directives = append(directives, ChunkDirective{
		Name:           commonsChunkName,
		MemberEntries:  append([]string(nil), pageNames...),
		MinOccurrences: 2,
	})

	return directives, chunkNames, nil
}
