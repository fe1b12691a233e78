// Package skills parses skill documents (SKILL.md files combining YAML
// frontmatter with a markdown body), classifies each one by operational
// type, and discovers whole corpora of them on disk.
package skills

import (
	"bytes"
	"encoding/json"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

// SkillType is the inferred operational category of a skill document.
type SkillType string

const (
	// SkillTypeReasoning marks a document describing a multi-step
	// decision process the model follows.
	SkillTypeReasoning SkillType = "reasoning"
	// SkillTypeToolWrapper marks a document whose body primarily
	// describes invoking an external command or script.
	SkillTypeToolWrapper SkillType = "tool-wrapper"
	// SkillTypeHybrid marks a document that does both.
	SkillTypeHybrid SkillType = "hybrid"
)

// ParseSkillType converts a frontmatter string into a SkillType.
// It reports false for anything outside the known set.
func ParseSkillType(s string) (SkillType, bool) {
	switch SkillType(s) {
	case SkillTypeReasoning, SkillTypeToolWrapper, SkillTypeHybrid:
		return SkillType(s), true
	}
	return "", false
}

// Field is one frontmatter key-value pair.
type Field struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// Frontmatter is the ordered key-value header block of a skill document.
// Duplicate keys are preserved in order but lookups only ever see the
// first occurrence.
type Frontmatter []Field

// Get returns the value for a key, first occurrence wins.
func (f Frontmatter) Get(key string) (any, bool) {
	for _, field := range f {
		if field.Key == key {
			return field.Value, true
		}
	}
	return nil, false
}

// GetString returns the value for a key as a string, or "" if the key is
// absent or not a string.
func (f Frontmatter) GetString(key string) string {
	v, ok := f.Get(key)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// Set replaces the first occurrence of key, or appends if absent.
func (f Frontmatter) Set(key string, value any) Frontmatter {
	for i, field := range f {
		if field.Key == key {
			f[i].Value = value
			return f
		}
	}
	return append(f, Field{Key: key, Value: value})
}

// Map flattens the frontmatter into a plain map, first occurrence wins.
func (f Frontmatter) Map() map[string]any {
	m := make(map[string]any, len(f))
	for _, field := range f {
		if _, seen := m[field.Key]; !seen {
			m[field.Key] = field.Value
		}
	}
	return m
}

// MarshalJSON renders the frontmatter as a JSON object in declaration
// order, skipping duplicate keys past their first occurrence.
func (f Frontmatter) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	seen := make(map[string]struct{}, len(f))
	for _, field := range f {
		if _, dup := seen[field.Key]; dup {
			continue
		}
		seen[field.Key] = struct{}{}
		if len(seen) > 1 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(field.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(field.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Metadata holds the recognized frontmatter keys. Unrecognized keys stay
// in the Frontmatter untouched.
type Metadata struct {
	Name        string `mapstructure:"name"`
	Description string `mapstructure:"description"`
	Type        string `mapstructure:"type"`
}

// Metadata decodes the recognized keys out of the frontmatter.
func (f Frontmatter) Metadata() (Metadata, error) {
	var md Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &md,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return md, errors.Wrap(err, "failed to build frontmatter decoder")
	}
	if err := decoder.Decode(f.Map()); err != nil {
		return md, errors.Wrap(err, "failed to decode frontmatter metadata")
	}
	return md, nil
}

// SkillRecord is the parsed, classified form of one skill document.
// Records are built fresh per parse call and never mutated afterwards.
type SkillRecord struct {
	Path        string      `json:"path"`
	Directory   string      `json:"directory"`
	Name        string      `json:"name"`
	Frontmatter Frontmatter `json:"frontmatter"`
	Content     string      `json:"content"`
	WordCount   int         `json:"wordCount"`
	LineCount   int         `json:"lineCount"`
	SkillType   SkillType   `json:"skillType"`
}
