package skills

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindAllSkills(t *testing.T) {
	tmpDir := t.TempDir()

	for _, name := range []string{"zeta", "alpha", "mid"} {
		writeSkill(t, filepath.Join(tmpDir, name), "---\nname: "+name+"\ndescription: d\n---\n\nBody.\n")
	}
	// a deeply nested skill
	writeSkill(t, filepath.Join(tmpDir, "group", "inner"), "---\nname: inner\ndescription: d\n---\n\nBody.\n")

	paths, err := FindAllSkills(tmpDir)
	require.NoError(t, err)
	require.Len(t, paths, 4)

	assert.True(t, sort.StringsAreSorted(paths), "walker output must be lexicographically sorted")

	seen := make(map[string]struct{})
	for _, p := range paths {
		_, dup := seen[p]
		assert.False(t, dup, "walker must never return duplicate paths")
		seen[p] = struct{}{}
		assert.Equal(t, SkillFileName, filepath.Base(p))
	}
}

func TestFindAllSkillsSkipsNestedFrameworkRoot(t *testing.T) {
	tmpDir := t.TempDir()

	writeSkill(t, filepath.Join(tmpDir, "real-skill"), "---\nname: real\ndescription: d\n---\n\nBody.\n")

	// a vendored framework subtree carries its own marker and must not be
	// double-counted into the enclosing corpus
	vendored := filepath.Join(tmpDir, "bundled-framework")
	require.NoError(t, os.MkdirAll(filepath.Join(vendored, ".claude"), 0o755))
	writeSkill(t, filepath.Join(vendored, "skills", "hidden"), "---\nname: hidden\ndescription: d\n---\n\nBody.\n")

	paths, err := FindAllSkills(tmpDir)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Contains(t, paths[0], "real-skill")
}

func TestFindAllSkillsSkipsWellKnownDirs(t *testing.T) {
	tmpDir := t.TempDir()

	writeSkill(t, filepath.Join(tmpDir, "kept"), "---\nname: kept\ndescription: d\n---\n\nBody.\n")
	writeSkill(t, filepath.Join(tmpDir, "node_modules", "pkg"), "---\nname: dep\ndescription: d\n---\n\nBody.\n")
	writeSkill(t, filepath.Join(tmpDir, ".git", "junk"), "---\nname: junk\ndescription: d\n---\n\nBody.\n")

	paths, err := FindAllSkills(tmpDir)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Contains(t, paths[0], "kept")
}

func TestFindAllSkillsWalksRootMarkerDir(t *testing.T) {
	tmpDir := t.TempDir()

	// the corpus root's own .claude tree is the corpus, not a nested framework
	writeSkill(t, filepath.Join(tmpDir, ".claude", "skills", "own"), "---\nname: own\ndescription: d\n---\n\nBody.\n")

	paths, err := FindAllSkills(tmpDir)
	require.NoError(t, err)
	assert.Len(t, paths, 1)
}

func TestFindAllSkillsExcludeGlobs(t *testing.T) {
	tmpDir := t.TempDir()

	writeSkill(t, filepath.Join(tmpDir, "kept"), "---\nname: kept\ndescription: d\n---\n\nBody.\n")
	writeSkill(t, filepath.Join(tmpDir, "fixtures", "sample"), "---\nname: sample\ndescription: d\n---\n\nBody.\n")

	w, err := NewWalker(WithExcludeGlobs("fixtures/**"))
	require.NoError(t, err)

	paths, err := w.FindAllSkills(tmpDir)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Contains(t, paths[0], "kept")
}

func TestNewWalkerRejectsInvalidPattern(t *testing.T) {
	_, err := NewWalker(WithExcludeGlobs("a{b"))
	assert.Error(t, err)
}

func TestFindAllSkillsMissingRoot(t *testing.T) {
	paths, err := FindAllSkills("/nonexistent/corpus/root")
	require.NoError(t, err)
	assert.Empty(t, paths)
}
