package discovery

import (
	"path/filepath"
	"strings"
)

// Filter filters suite files by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName keeps the suites whose file name matches pattern, ignoring case.
// A pattern with wildcards must match the whole name, or contain every
// non-wildcard fragment in order; a plain pattern is a substring match.
func (f *Filter) FilterByName(suites []string, pattern string) []string {
	if pattern == "" {
		return suites
	}
	pattern = strings.ToLower(pattern)
	wildcard := strings.ContainsAny(pattern, "*?")

	var filtered []string
	for _, suite := range suites {
		name := strings.ToLower(filepath.Base(suite))
		if wildcard {
			if matched, err := filepath.Match(pattern, name); (err == nil && matched) || fragmentsInOrder(name, pattern) {
				filtered = append(filtered, suite)
			}
			continue
		}
		if strings.Contains(name, pattern) {
			filtered = append(filtered, suite)
		}
	}
	return filtered
}

// fragmentsInOrder reports whether the non-empty "*"-separated fragments of
// pattern occur in name in order. A pattern of only wildcards matches nothing.
func fragmentsInOrder(name, pattern string) bool {
	found := false
	for _, part := range strings.Split(pattern, "*") {
		if part == "" {
			continue
		}
		i := strings.Index(name, part)
		if i < 0 {
			return false
		}
		name = name[i+len(part):]
		found = true
	}
	return found
}
