package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const wrapperBody = `Use this skill to convert PDF documents.

Run the script with the input file:

Run:
` + "```" + `
python scripts/convert.py input.pdf
` + "```" + `
`

const narrativeBody = `## Step 1

Gather the requirements from the user.

## Step 2

Draft an outline and review it.
`

const plainBody = `This skill documents naming conventions for generated modules.

Keep names short and lowercase.
`

func TestDetectSkillType(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		fm       Frontmatter
		expected SkillType
	}{
		{
			name:     "explicit override wins over heuristics",
			body:     narrativeBody,
			fm:       Frontmatter{{Key: "type", Value: "tool-wrapper"}},
			expected: SkillTypeToolWrapper,
		},
		{
			name:     "unknown override falls back to heuristics",
			body:     narrativeBody,
			fm:       Frontmatter{{Key: "type", Value: "banana"}},
			expected: SkillTypeReasoning,
		},
		{
			name:     "all three wrapper signals",
			body:     wrapperBody,
			expected: SkillTypeToolWrapper,
		},
		{
			name:     "narrative headers",
			body:     narrativeBody,
			expected: SkillTypeReasoning,
		},
		{
			name:     "wrapper signals plus narrative is hybrid",
			body:     wrapperBody + "\n## Phase 1\n\nValidate the output.\n",
			expected: SkillTypeHybrid,
		},
		{
			name:     "no strong signal defaults to reasoning",
			body:     plainBody,
			expected: SkillTypeReasoning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectSkillType(tt.body, tt.fm))
		})
	}
}

// A single mention of a command must not classify a document as a
// tool-wrapper. All three signal groups have to be present together.
func TestDetectSkillTypeConjunctiveGate(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "cli phrase alone",
			body: "You could run the script yourself if needed.\n",
		},
		{
			name: "cli phrase and scripts dir without command block",
			body: "Run the script at scripts/convert.py before anything else happens.\n",
		},
		{
			name: "command block alone",
			body: "Run:\n```\nmake release\n```\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, SkillTypeReasoning, DetectSkillType(tt.body, nil))
		})
	}
}

func TestDetectSkillTypeSequencingLanguage(t *testing.T) {
	body := "First collect the inputs, and only after that decide. Finally write the summary.\n"
	assert.Equal(t, SkillTypeReasoning, DetectSkillType(body, nil))
}

func TestDetectSkillTypeConfigurableDefault(t *testing.T) {
	got := DetectSkillTypeWithDefault(plainBody, nil, SkillTypeHybrid)
	assert.Equal(t, SkillTypeHybrid, got)
}

func TestDetectSkillTypeDeterministic(t *testing.T) {
	for i := 0; i < 5; i++ {
		assert.Equal(t, DetectSkillType(wrapperBody, nil), DetectSkillType(wrapperBody, nil))
	}
}
