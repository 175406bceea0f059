package goshape

import (
	"sort"
	"strings"
)

// DefinitionsPrefix is the JSON Pointer prefix of reference markers.
const DefinitionsPrefix = "#/definitions/"

// RefPath returns the reference marker path for a shape title.
func RefPath(title string) string { return DefinitionsPrefix + title }

// TitleFromRef returns the title part of a reference marker path.
func TitleFromRef(path string) (string, bool) {
	if !strings.HasPrefix(path, DefinitionsPrefix) {
		return "", false
	}
	return strings.TrimPrefix(path, DefinitionsPrefix), true
}

// Registry maps reference marker paths to the identifier of the shape that
// defines them. One Registry is built per top-level definition and is
// read-only once that definition completes.
type Registry struct {
	entries map[string]string
	sealed  bool
}

// NewRegistry returns an empty, writable Registry.
func NewRegistry() *Registry {
	return &Registry{entries: map[string]string{}}
}

// Record maps path to unit. Re-recording a path overwrites the previous
// unit; all writes for one path denote the same shape.
func (r *Registry) Record(path, unit string) {
	if r.sealed {
		panic("goshape: record into sealed registry: " + path)
	}
	r.entries[path] = unit
}

// Resolve returns the unit recorded for path.
func (r *Registry) Resolve(path string) (string, bool) {
	if r == nil {
		return "", false
	}
	u, ok := r.entries[path]
	return u, ok
}

// Len returns the number of recorded paths.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.entries)
}

// Paths returns recorded paths in ascending order.
func (r *Registry) Paths() []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, len(r.entries))
	for p := range r.entries {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Units returns the distinct recorded units in ascending order.
func (r *Registry) Units() []string {
	if r == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(r.entries))
	out := make([]string, 0, len(r.entries))
	for _, u := range r.entries {
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	sort.Strings(out)
	return out
}

// Seal makes the registry read-only.
func (r *Registry) Seal() { r.sealed = true }

// Sealed reports whether Seal was called.
func (r *Registry) Sealed() bool { return r.sealed }
