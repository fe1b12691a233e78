package skills

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSkill(t *testing.T, dir, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, SkillFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParse(t *testing.T) {
	tmpDir := t.TempDir()
	content := `---
name: pdf-extract
description: Extract text from PDF files
license: MIT
---

# PDF Extract

Reads a PDF and emits plain text.
`
	path := writeSkill(t, filepath.Join(tmpDir, "pdf-extract"), content)

	record := Parse(path)
	require.NotNil(t, record)

	assert.Equal(t, path, record.Path)
	assert.Equal(t, filepath.Join(tmpDir, "pdf-extract"), record.Directory)
	assert.Equal(t, "pdf-extract", record.Name)
	assert.Equal(t, "Extract text from PDF files", record.Frontmatter.GetString("description"))
	assert.Equal(t, "MIT", record.Frontmatter.GetString("license"), "unrecognized keys pass through")
	assert.Contains(t, record.Content, "# PDF Extract")
	assert.NotContains(t, record.Content, "name: pdf-extract")
	assert.Equal(t, 9, record.LineCount, "line count covers the raw file, frontmatter included")
	assert.Equal(t, SkillTypeReasoning, record.SkillType)
}

func TestParseNameFromDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	content := `---
name: Fancy Display Name
description: something
---

Body.
`
	path := writeSkill(t, filepath.Join(tmpDir, "plain-dir-name"), content)

	record := Parse(path)
	assert.Equal(t, "plain-dir-name", record.Name, "record name derives from the containing directory")

	md, err := record.Frontmatter.Metadata()
	require.NoError(t, err)
	assert.Equal(t, "Fancy Display Name", md.Name, "the display name stays available through metadata")
}

func TestParseNeverFails(t *testing.T) {
	t.Run("malformed frontmatter degrades to sentinel", func(t *testing.T) {
		tmpDir := t.TempDir()
		content := `---
name: [unclosed
description: "broken
---

# Body survives

Some text.
`
		path := writeSkill(t, filepath.Join(tmpDir, "broken-skill"), content)

		record := Parse(path)
		require.NotNil(t, record)
		assert.Equal(t, "broken-skill", record.Name)
		assert.Equal(t, FrontmatterErrorSentinel, record.Frontmatter.GetString("description"))
		assert.Equal(t, content, record.Content, "whole file becomes the body")
	})

	t.Run("missing file degrades to sentinel", func(t *testing.T) {
		record := Parse("/nonexistent/some-skill/SKILL.md")
		require.NotNil(t, record)
		assert.Equal(t, "some-skill", record.Name)
		assert.Equal(t, FrontmatterErrorSentinel, record.Frontmatter.GetString("description"))
		assert.Zero(t, record.LineCount)
	})

	t.Run("no frontmatter at all", func(t *testing.T) {
		tmpDir := t.TempDir()
		path := writeSkill(t, filepath.Join(tmpDir, "bare"), "# Just a body\n\nNo header block.\n")

		record := Parse(path)
		require.NotNil(t, record)
		assert.Empty(t, record.Frontmatter)
		assert.Contains(t, record.Content, "# Just a body")
	})
}

func TestParseExplicitTypeOverride(t *testing.T) {
	tmpDir := t.TempDir()
	content := `---
name: forced
description: override beats heuristics
type: tool-wrapper
---

Nothing here resembles a command at all.
`
	path := writeSkill(t, filepath.Join(tmpDir, "forced"), content)

	record := Parse(path)
	assert.Equal(t, SkillTypeToolWrapper, record.SkillType)
}

func TestFrontmatterOrderAndFirstOccurrence(t *testing.T) {
	fm := Frontmatter{
		{Key: "name", Value: "a"},
		{Key: "description", Value: "first"},
		{Key: "description", Value: "second"},
	}

	v, ok := fm.Get("description")
	require.True(t, ok)
	assert.Equal(t, "first", v)

	out, err := json.Marshal(fm)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"a","description":"first"}`, string(out))
}

func TestFrontmatterSet(t *testing.T) {
	fm := Frontmatter{{Key: "name", Value: "a"}}

	fm = fm.Set("description", "added")
	assert.Equal(t, "added", fm.GetString("description"))

	fm = fm.Set("description", "replaced")
	assert.Equal(t, "replaced", fm.GetString("description"))
	assert.Len(t, fm, 2)
}

func TestParseNestedFrontmatterValues(t *testing.T) {
	tmpDir := t.TempDir()
	content := `---
name: nested
description: nested values survive JSON round-trips
meta:
  owner: docs-team
  tags:
    - pdf
    - ocr
---

Body.
`
	path := writeSkill(t, filepath.Join(tmpDir, "nested"), content)

	record := Parse(path)
	out, err := json.Marshal(record.Frontmatter)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"owner":"docs-team"`)
	assert.Contains(t, string(out), `"tags":["pdf","ocr"]`)
}
