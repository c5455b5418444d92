package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Scanner finds suite documents under a directory
type Scanner struct {
	skipDirs map[string]bool
	pattern  string
}

// NewScanner creates a Scanner that matches file names against pattern
// (case-insensitively) and skips the given directories
func NewScanner(skipDirs []string, pattern string) *Scanner {
	skipMap := make(map[string]bool)
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	return &Scanner{skipDirs: skipMap, pattern: strings.ToLower(pattern)}
}

// Scan returns the suite documents below root in lexical order
func (s *Scanner) Scan(root string) ([]string, error) {
	var suites []string

	// Clean and validate the root path
	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("suite path does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("suite path is not a directory: %s", root)
	}

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			name := d.Name()
			// Skip hidden directories (starting with .)
			if path != root && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}

			if s.skipDirs[name] {
				return filepath.SkipDir
			}

			return nil
		}

		matched, err := filepath.Match(s.pattern, strings.ToLower(d.Name()))
		if err != nil {
			return fmt.Errorf("bad suite pattern %q: %w", s.pattern, err)
		}
		if matched {
			suites = append(suites, path)
		}
		return nil
	})

	sort.Strings(suites)
	return suites, err
}
