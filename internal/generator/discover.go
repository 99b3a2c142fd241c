package generator

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	"github.com/goreleaser/fileglob"
)

// ErrNoInputs is returned when the input pattern matches no files.
var ErrNoInputs = errors.New("no input files matched")

// Discover returns the regular files matching any of patterns, minus those
// matching an ignore pattern, in lexical order.
func Discover(patterns []string, ignore []string) ([]string, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("input pattern is required")
	}

	ignores := make([]glob.Glob, 0, len(ignore))
	for _, p := range ignore {
		g, err := glob.Compile(filepath.ToSlash(p), '/')
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", p, err)
		}
		ignores = append(ignores, g)
	}

	var matches []string
	for _, pattern := range patterns {
		if pattern == "" {
			return nil, fmt.Errorf("input pattern is required")
		}
		m, err := fileglob.Glob(filepath.ToSlash(pattern), fileglob.MaybeRootFS)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to match %q: %w", pattern, err)
		}
		matches = append(matches, m...)
	}

	seen := make(map[string]bool, len(matches))
	files := make([]string, 0, len(matches))
	for _, m := range matches {
		path := filepath.Clean(filepath.FromSlash(m))
		if seen[path] || ignored(ignores, path) {
			continue
		}
		seen[path] = true

		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", path, err)
		}
		if !info.Mode().IsRegular() {
			continue
		}
		files = append(files, path)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoInputs, strings.Join(patterns, " "))
	}
	sort.Strings(files)
	return files, nil
}

// ignored matches relative paths as if rooted at "./" so that a leading
// "**/" also covers top-level directories.
func ignored(ignores []glob.Glob, path string) bool {
	slashed := filepath.ToSlash(path)
	candidates := []string{slashed}
	if !filepath.IsAbs(path) {
		candidates = append(candidates, "./"+slashed)
	}
	for _, g := range ignores {
		for _, c := range candidates {
			if g.Match(c) {
				return true
			}
		}
	}
	return false
}
