package fix

import (
	"fmt"
	"regexp"
	"strings"

	"skillaudit/pkg/results"
)

// optionalityVocabulary is the fixed set of name substrings that suggest a
// schema field tolerates absence. A heuristic proxy, not semantic ground
// truth: a field named "default" can still be a required discriminant, so
// the vocabulary must not grow without product guidance on acceptable
// false-positive rates.
var optionalityVocabulary = []string{
	"optional",
	"maybe",
	"default",
	"fallback",
	"description",
	"metadata",
	"extra",
	"additional",
	"nullable",
	"empty",
	"blank",
}

// scalarFieldPattern matches a scalar field declaration in a generated
// validation schema, capturing everything up to the type call as the
// prefix so the rewrite preserves the original spelling.
var scalarFieldPattern = regexp.MustCompile(`^(\s*([A-Za-z_$][\w$]*)\s*:\s*z\.(?:string|number|boolean)\(\))(.*)$`)

// OptionalFieldFixer marks scalar schema fields optional when both gates
// agree: the declared type is a plain scalar with no existing modifier,
// and the field name carries an optionality indicator. The conjunction
// keeps the rewrite a narrow, reviewable subset rather than a blanket
// weakening of required fields.
type OptionalFieldFixer struct{}

func (OptionalFieldFixer) Name() string { return "optional-field-inference" }

func (f OptionalFieldFixer) Apply(sourcePath string, opts Options) (results.FixResult, error) {
	return applyRewrite(sourcePath, opts, func(lines []string) ([]string, []string) {
		var changes []string
		for i, line := range lines {
			m := scalarFieldPattern.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			prefix, name, rest := m[1], m[2], m[3]
			if hasModifier(rest) || !indicatesOptionality(name) {
				continue
			}
			lines[i] = prefix + ".optional()" + rest
			changes = append(changes, fmt.Sprintf("marked field %q optional (line %d)", name, i+1))
		}
		return lines, changes
	})
}

// hasModifier reports whether the declaration already tolerates absence.
func hasModifier(rest string) bool {
	return strings.Contains(rest, ".optional()") ||
		strings.Contains(rest, ".nullable()") ||
		strings.Contains(rest, ".default(")
}

func indicatesOptionality(name string) bool {
	lower := strings.ToLower(name)
	for _, indicator := range optionalityVocabulary {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return false
}
