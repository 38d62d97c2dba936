package plan

import "fmt"

// ConfigurationError reports a malformed or missing descriptor field, or an
// invalid ignore-pattern. Fatal: graph construction aborts before any output
// is produced.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration %q: %s", e.Field, e.Reason)
}

// ResolutionError reports a declared page or library source file that does
// not exist. Fatal.
type ResolutionError struct {
	Path string
	Want string // what the path was declared as ("page script", "library file")
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("cannot resolve %s: %s does not exist", e.Want, e.Path)
}

// CollisionError reports two entries or chunks resolving to the same key.
// Fatal: entry and chunk names are keys in the final graph.
type CollisionError struct {
	Key string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("duplicate entry name %q: page and library names must be unique across the graph", e.Key)
}
