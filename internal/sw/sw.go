// Package sw generates the offline-precache artifacts: the service-worker
// script with its precache manifest, and the registration snippet included
// in generated pages. The planner only names these outputs in directives;
// the writers here run at build time under the bundler adapter.
package sw

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
)

// Fixed output names. The registration script locates the service worker
// by this convention, so the two must stay in sync.
const (
	ServiceWorkerName      = "service-worker.js"
	RegistrationScriptName = "sw-register.js"
)

const workerTemplate = `/* generated by ehdev; do not edit */
var PRECACHE = 'ehdev-precache-v1';
var MANIFEST = %s;

self.addEventListener('install', function (event) {
  event.waitUntil(
    caches.open(PRECACHE).then(function (cache) {
      return cache.addAll(MANIFEST);
    }).then(self.skipWaiting)
  );
});

self.addEventListener('fetch', function (event) {
  event.respondWith(
    caches.match(event.request).then(function (cached) {
      return cached || fetch(event.request);
    })
  );
});
`

const registerTemplate = `/* generated by ehdev; do not edit */
if ('serviceWorker' in navigator) {
  window.addEventListener('load', function () {
    navigator.serviceWorker.register('%s');
  });
}
`

// Manifest filters output-relative paths through the compiled ignore
// matchers and returns the precache URL list, prefixed and sorted.
func Manifest(urlPrefix string, outputs []string, ignore []*regexp.Regexp) []string {
	manifest := make([]string, 0, len(outputs))
	for _, out := range outputs {
		if ignored(out, ignore) {
			continue
		}
		manifest = append(manifest, urlPrefix+out)
	}
	sort.Strings(manifest)
	return manifest
}

func ignored(path string, ignore []*regexp.Regexp) bool {
	for _, m := range ignore {
		if m.MatchString(path) {
			return true
		}
	}
	return false
}

// WriteServiceWorker writes the service-worker script with the given
// precache manifest into outDir.
func WriteServiceWorker(outDir string, manifest []string) error {
	encoded, err := json.Marshal(manifest)
	if err != nil {
		return fmt.Errorf("failed to encode precache manifest: %w", err)
	}
	script := fmt.Sprintf(workerTemplate, encoded)
	path := filepath.Join(outDir, ServiceWorkerName)
	if err := os.WriteFile(path, []byte(script), 0o644); err != nil {
		return fmt.Errorf("failed to write service worker: %w", err)
	}
	return nil
}

// RegistrationScript returns the registration snippet for a service worker
// served under urlPrefix.
func RegistrationScript(urlPrefix string) []byte {
	return []byte(fmt.Sprintf(registerTemplate, urlPrefix+ServiceWorkerName))
}

// WriteRegistration writes the registration script into outDir under its
// fixed name.
func WriteRegistration(outDir, urlPrefix string) error {
	path := filepath.Join(outDir, RegistrationScriptName)
	if err := os.WriteFile(path, RegistrationScript(urlPrefix), 0o644); err != nil {
		return fmt.Errorf("failed to write registration script: %w", err)
	}
	return nil
}
