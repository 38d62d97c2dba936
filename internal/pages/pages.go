// Package pages discovers page templates under the project's pages root.
// Page names are derived from template filenames by stripping the extension;
// the planner trusts the returned order (lexicographic by filename).
package pages

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Page is one discovered page template.
type Page struct {
	// Name is the template filename without its extension. Used as the
	// page's entry and chunk key.
	Name string

	// Template is the absolute path to the .htm/.html template.
	Template string

	// Script is the absolute path to the page's entry script
	// (<pagesRoot>/<name>/index.js), or empty when the script file does
	// not exist. The planner treats a missing script as fatal.
	Script string
}

// Discover scans root for page templates (*.htm, *.html) and returns them
// in lexicographic filename order. The scan is non-recursive; nested
// directories hold page scripts, not templates.
func Discover(root string) ([]Page, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read pages root %s: %w", root, err)
	}

	var found []Page
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".htm" && ext != ".html" {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), ext)
		page := Page{
			Name:     name,
			Template: filepath.Join(root, entry.Name()),
		}

		script := filepath.Join(root, name, "index.js")
		if _, err := os.Stat(script); err == nil {
			page.Script = script
		}

		found = append(found, page)
	}

	return found, nil
}
