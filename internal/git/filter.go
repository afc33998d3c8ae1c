package git

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// pathFilter matches repository paths against include/exclude globs.
type pathFilter struct {
	include []string
	exclude []string
	cache   map[string]bool
}

func newPathFilter(include, exclude []string) *pathFilter {
	return &pathFilter{include: include, exclude: exclude, cache: make(map[string]bool)}
}

func (f *pathFilter) empty() bool {
	return len(f.include) == 0 && len(f.exclude) == 0
}

// matches checks if a path passes the include/exclude filters.
func (f *pathFilter) matches(path string) (bool, error) {
	// Normalize path separators
	path = strings.ReplaceAll(path, "\\", "/")

	if v, ok := f.cache[path]; ok {
		return v, nil
	}

	// Check exclude patterns first
	for _, pattern := range f.exclude {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			return false, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		if matched {
			f.cache[path] = false
			return false, nil
		}
	}

	// If no include patterns, accept all
	if len(f.include) == 0 {
		f.cache[path] = true
		return true, nil
	}

	for _, pattern := range f.include {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			return false, fmt.Errorf("invalid include pattern %q: %w", pattern, err)
		}
		if matched {
			f.cache[path] = true
			return true, nil
		}
	}

	f.cache[path] = false
	return false, nil
}

// validatePatterns rejects malformed globs before they reach git, which
// would otherwise silently match nothing.
func validatePatterns(include, exclude []string) error {
	for _, p := range include {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid include pattern %q", p)
		}
	}
	for _, p := range exclude {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid exclude pattern %q", p)
		}
	}
	return nil
}
