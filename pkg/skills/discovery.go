package skills

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"
)

// frameworkMarker identifies a nested, self-contained framework root.
// Vendored or bundled document trees carry their own marker directory and
// must not be double-counted into the enclosing corpus.
const frameworkMarker = ".claude"

// directories that never contain corpus documents
var skipDirNames = map[string]struct{}{
	".git":         {},
	"node_modules": {},
	"vendor":       {},
}

// Walker discovers skill documents under a corpus root.
type Walker struct {
	excludes []string
}

// WalkerOption configures a Walker.
type WalkerOption func(*Walker) error

// WithExcludeGlobs skips paths matching any of the given doublestar
// patterns, evaluated against the slash-separated path relative to root.
func WithExcludeGlobs(patterns ...string) WalkerOption {
	return func(w *Walker) error {
		for _, p := range patterns {
			if !doublestar.ValidatePattern(p) {
				return errors.Errorf("invalid exclude pattern %q", p)
			}
		}
		w.excludes = append(w.excludes, patterns...)
		return nil
	}
}

// NewWalker creates a corpus walker.
func NewWalker(opts ...WalkerOption) (*Walker, error) {
	w := &Walker{}
	for _, opt := range opts {
		if err := opt(w); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// FindAllSkills returns every SKILL.md path under root, lexicographically
// sorted and free of duplicates. Sorting is part of the contract: callers
// rely on it for reproducible reporting and diffable fixtures. The walk
// never descends into skip-listed directories or into a non-root directory
// that is itself a framework root.
func (w *Walker) FindAllSkills(root string) ([]string, error) {
	seen := make(map[string]struct{})
	var paths []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// unreadable subtree, keep walking siblings
			if d != nil && d.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if path == root {
				return nil
			}
			if _, skip := skipDirNames[d.Name()]; skip {
				return filepath.SkipDir
			}
			if isFrameworkRoot(path) {
				return filepath.SkipDir
			}
			if w.excluded(rel) {
				return filepath.SkipDir
			}
			return nil
		}

		if d.Name() != SkillFileName || w.excluded(rel) {
			return nil
		}
		if _, dup := seen[path]; !dup {
			seen[path] = struct{}{}
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to walk corpus root %s", root)
	}

	sort.Strings(paths)
	return paths, nil
}

// FindAllSkills discovers skills under root with default walker settings.
func FindAllSkills(root string) ([]string, error) {
	w, err := NewWalker()
	if err != nil {
		return nil, err
	}
	return w.FindAllSkills(root)
}

func (w *Walker) excluded(rel string) bool {
	for _, pattern := range w.excludes {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// isFrameworkRoot reports whether dir carries its own framework marker.
func isFrameworkRoot(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, frameworkMarker))
	return err == nil
}
