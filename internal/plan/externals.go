package plan

import (
	"path/filepath"
	"sort"
)

// ExternalsTable is the partition of declared externals into an alias table
// and a vendor-copy manifest with its manual-include list. The two facets
// are not mutually exclusive.
type ExternalsTable struct {
	Aliases  map[string]string
	Copies   []CopyDirective
	Includes []string
}

// resolveExternals partitions the declared externals. Alias values are
// trusted verbatim. Vendor files are copied from the workspace into the
// output assets directory; their existence is not checked here, a missing
// vendor file surfaces as a build-fatal copy error.
// Dependency names are iterated in sorted order for reproducible output.
func (p *Planner) resolveExternals() ExternalsTable {
	table := ExternalsTable{Aliases: make(map[string]string)}

	names := make([]string, 0, len(p.cfg.Externals))
	for name := range p.cfg.Externals {
		names = append(names, name)
	}
	sort.Strings(names)

	assetsDir := filepath.Join(p.cfg.BuildPath, "assets")

	for _, name := range names {
		ext := p.cfg.Externals[name]

		if ext.Alias != "" {
			table.Aliases[name] = ext.Alias
		}
		if ext.VendorPath != "" {
			table.Copies = append(table.Copies, CopyDirective{
				From: filepath.Join(p.cfg.WorkspaceRoot, ext.VendorPath),
				To:   assetsDir,
			})
			table.Includes = append(table.Includes, "assets/"+filepath.Base(ext.VendorPath))
		}
		if ext.Alias == "" && ext.VendorPath == "" {
			// Declared but inert. Kept as a no-op rather than an error,
			// surfaced in the log so the descriptor entry isn't invisible.
			p.logger.Warn("external has neither alias nor vendorPath", "name", name)
		}
	}

	return table
}
