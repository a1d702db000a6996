package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// Discover returns the images under root matching any include pattern and
// no exclude pattern, sorted by path. Patterns are slash-separated and
// relative to root; "**" matches any number of directories.
func Discover(root string, include, exclude []string) ([]Image, error) {
	fsys := os.DirFS(root)
	seen := make(map[string]bool)
	var rels []string

	for _, pattern := range include {
		matches, err := doublestar.Glob(fsys, filepath.ToSlash(pattern), doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("report: glob %q: %w", pattern, err)
		}
		for _, rel := range matches {
			if seen[rel] || matchesAny(rel, exclude) {
				continue
			}
			seen[rel] = true
			rels = append(rels, rel)
		}
	}

	sort.Strings(rels)
	images := make([]Image, len(rels))
	for i, rel := range rels {
		images[i] = Image{Path: filepath.Join(root, filepath.FromSlash(rel))}
	}
	return images, nil
}

// matchesAny checks if relPath matches any of the given glob patterns,
// either as a whole or by file name.
func matchesAny(relPath string, patterns []string) bool {
	normalized := filepath.ToSlash(relPath)
	base := filepath.Base(normalized)

	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if matched, err := doublestar.Match(pattern, normalized); err == nil && matched {
			return true
		}
		if matched, err := doublestar.Match(pattern, base); err == nil && matched {
			return true
		}
	}
	return false
}
