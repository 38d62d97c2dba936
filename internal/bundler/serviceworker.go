package bundler

import (
	"github.com/macisi/ehdev-configs/internal/plan"
	"github.com/macisi/ehdev-configs/internal/sw"
)

// emitServiceWorker runs the offline directives, if the graph carries any.
// Directive order guarantees the manifest exists before the registration
// script that references it is written.
func (b *Bundler) emitServiceWorker(outputs *buildOutputs, emittedPages []string) error {
	for _, d := range b.graph.Directives {
		switch d := d.(type) {
		case plan.PrecacheDirective:
			files := append(append([]string(nil), outputs.files...), emittedPages...)
			manifest := sw.Manifest(d.URLPrefix, files, d.Matchers)
			if err := sw.WriteServiceWorker(b.graph.Output.Path, manifest); err != nil {
				return err
			}
			b.logger.Info("wrote precache manifest", "entries", len(manifest))
		case plan.RegisterSWDirective:
			if err := sw.WriteRegistration(b.graph.Output.Path, d.URLPrefix); err != nil {
				return err
			}
			b.logger.Debug("wrote registration script", "path", d.ScriptPath)
		}
	}
	return nil
}
