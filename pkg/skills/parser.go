package skills

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/parser"
	yaml "gopkg.in/yaml.v2"
)

// SkillFileName is the fixed filename convention for skill documents.
const SkillFileName = "SKILL.md"

// FrontmatterErrorSentinel is stored under the description key when the
// frontmatter block cannot be parsed. Callers detect it to surface the
// degradation without the pipeline aborting.
const FrontmatterErrorSentinel = "YAML_PARSE_ERROR"

// ParseOptions tunes parsing behavior.
type ParseOptions struct {
	// DefaultType is the classification used when no signal is strong
	// enough either way. Empty means SkillTypeReasoning.
	DefaultType SkillType
}

// Parse reads and classifies one skill document. It never returns an
// error: a malformed frontmatter block degrades to a record whose whole
// file is treated as body, with the name taken from the containing
// directory and the description set to FrontmatterErrorSentinel.
func Parse(path string) *SkillRecord {
	return ParseWithOptions(path, ParseOptions{})
}

// ParseWithOptions is Parse with an explicit default classification.
func ParseWithOptions(path string, opts ParseOptions) *SkillRecord {
	if opts.DefaultType == "" {
		opts.DefaultType = SkillTypeReasoning
	}

	dir := filepath.Dir(path)
	record := &SkillRecord{
		Path:      path,
		Directory: dir,
		Name:      filepath.Base(dir),
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		record.Frontmatter = Frontmatter{}.Set("description", FrontmatterErrorSentinel)
		record.SkillType = opts.DefaultType
		return record
	}

	content := string(raw)
	// Line count deliberately covers the raw file, frontmatter included.
	// It feeds a soft size-budget signal, not a prose metric.
	record.LineCount = CountLines(content)

	fm, fmErr := parseFrontmatter(raw)
	if fmErr != nil {
		record.Frontmatter = Frontmatter{}.Set("description", FrontmatterErrorSentinel)
		record.Content = content
	} else {
		record.Frontmatter = fm
		record.Content = extractBody(content)
	}

	record.WordCount = CountWords(record.Content)
	record.SkillType = DetectSkillTypeWithDefault(record.Content, record.Frontmatter, opts.DefaultType)
	return record
}

// parseFrontmatter extracts the YAML header block, preserving key order.
func parseFrontmatter(raw []byte) (Frontmatter, error) {
	md := goldmark.New(goldmark.WithExtensions(meta.Meta))

	var buf bytes.Buffer
	pctx := parser.NewContext()
	if err := md.Convert(raw, &buf, parser.WithContext(pctx)); err != nil {
		return nil, err
	}

	items, err := meta.TryGetItems(pctx)
	if err != nil {
		return nil, err
	}

	fm := make(Frontmatter, 0, len(items))
	for _, item := range items {
		fm = append(fm, Field{
			Key:   fmt.Sprint(item.Key),
			Value: normalizeYAMLValue(item.Value),
		})
	}
	return fm, nil
}

// normalizeYAMLValue rewrites yaml.v2 decoding artifacts into JSON-friendly
// shapes (string-keyed maps and plain slices).
func normalizeYAMLValue(v any) any {
	switch val := v.(type) {
	case yaml.MapSlice:
		m := make(map[string]any, len(val))
		for _, item := range val {
			key := fmt.Sprint(item.Key)
			if _, seen := m[key]; !seen {
				m[key] = normalizeYAMLValue(item.Value)
			}
		}
		return m
	case map[any]any:
		m := make(map[string]any, len(val))
		for k, item := range val {
			m[fmt.Sprint(k)] = normalizeYAMLValue(item)
		}
		return m
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalizeYAMLValue(item)
		}
		return out
	default:
		return v
	}
}

// extractBody strips the frontmatter block and returns the prose body.
// Content without a complete block is returned unchanged.
func extractBody(content string) string {
	if !strings.HasPrefix(content, "---") {
		return content
	}

	lines := strings.Split(content, "\n")
	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			end = i
			break
		}
	}
	if end == -1 {
		return content
	}

	return strings.TrimLeft(strings.Join(lines[end+1:], "\n"), "\n")
}
