package bundler

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/macisi/ehdev-configs/internal/plan"
)

var (
	htmlComment    = regexp.MustCompile(`<!--[\s\S]*?-->`)
	interTagSpace  = regexp.MustCompile(`>\s+<`)
	whitespaceRuns = regexp.MustCompile(`[ \t]{2,}`)
)

// emitHTML renders every HTML directive: read the page template, inject
// the manual-include tags followed by the page's chunk bundles in declared
// order, minify when the directive says so, and write the page into the
// output directory. Returns the emitted output-relative filenames.
func (b *Bundler) emitHTML(outputs *buildOutputs) ([]string, error) {
	includes := b.includeAssets()

	var emitted []string
	for _, d := range b.graph.Directives {
		h, ok := d.(plan.HTMLDirective)
		if !ok {
			continue
		}

		page, err := b.emitPage(h, includes, outputs)
		if err != nil {
			return nil, err
		}
		emitted = append(emitted, page)
	}
	return emitted, nil
}

// includeAssets collects the manual-include list for externals. These tags
// are injected into every page: the bundler's dependency graph cannot see
// externals, so it cannot emit them itself.
func (b *Bundler) includeAssets() []string {
	for _, d := range b.graph.Directives {
		if inc, ok := d.(plan.IncludeDirective); ok {
			return inc.Assets
		}
	}
	return nil
}

func (b *Bundler) emitPage(h plan.HTMLDirective, includes []string, outputs *buildOutputs) (string, error) {
	template, err := os.ReadFile(h.Template)
	if err != nil {
		return "", fmt.Errorf("failed to read page template: %w", err)
	}

	var tags []string
	for _, asset := range includes {
		tags = append(tags, assetTag(b.graph.Output.PublicPath+asset))
	}
	for _, chunk := range h.Chunks {
		bundle, ok := outputs.byEntry[chunk]
		if !ok {
			// Chunk produced no bundle of its own (e.g. an empty commons
			// chunk); nothing to include.
			continue
		}
		tags = append(tags, assetTag(b.graph.Output.PublicPath+bundle))

		if css := outputs.cssFor(bundle); css != "" {
			tags = append(tags, assetTag(b.graph.Output.PublicPath+css))
		}
	}

	html := inject(template, tags, h.Inject)
	if h.Minify != nil {
		html = minifyHTML(html, h.Minify)
	}

	dst := filepath.Join(b.graph.Output.Path, h.Filename)
	if err := os.WriteFile(dst, html, 0o644); err != nil {
		return "", fmt.Errorf("failed to write page %s: %w", h.Filename, err)
	}

	b.logger.Debug("emitted page", "file", h.Filename, "tags", len(tags))
	return h.Filename, nil
}

// cssFor returns the CSS bundle produced alongside a JS bundle, if any.
func (o *buildOutputs) cssFor(bundle string) string {
	want := strings.TrimSuffix(bundle, filepath.Ext(bundle)) + ".css"
	for _, f := range o.files {
		if f == want {
			return f
		}
	}
	return ""
}

// assetTag renders the include tag for one asset URL.
func assetTag(url string) string {
	if strings.HasSuffix(url, ".css") {
		return fmt.Sprintf(`<link rel="stylesheet" href="%s"/>`, url)
	}
	return fmt.Sprintf(`<script src="%s"></script>`, url)
}

// inject inserts the tags before the closing tag of the configured
// section. An unrecognized inject mode appends at the end of the document.
func inject(template []byte, tags []string, mode string) []byte {
	joined := strings.Join(tags, "\n")

	var closing string
	switch mode {
	case "head":
		closing = "</head>"
	case "body":
		closing = "</body>"
	default:
		return append(template, []byte("\n"+joined+"\n")...)
	}

	html := string(template)
	if idx := strings.LastIndex(html, closing); idx >= 0 {
		return []byte(html[:idx] + joined + "\n" + html[idx:])
	}
	return append(template, []byte("\n"+joined+"\n")...)
}

// minifyHTML applies the directive's fixed minification set. Inline JS/CSS
// minification rides on whitespace collapsing; the bundler already
// minifies emitted bundles in production.
func minifyHTML(html []byte, opts *plan.MinifyOptions) []byte {
	out := html
	if opts.RemoveComments {
		out = htmlComment.ReplaceAll(out, nil)
	}
	if opts.CollapseWhitespace {
		out = interTagSpace.ReplaceAll(out, []byte("><"))
		out = whitespaceRuns.ReplaceAll(out, []byte(" "))
	}
	return out
}
