package skills

import "regexp"

// Classification is signal-driven: each named predicate inspects the body
// once, and a small rule table maps signal combinations to a SkillType.
// The table keeps the conjunctive/disjunctive policy explicit instead of
// burying it in regex composition order.

// frontmatter key that overrides classification unconditionally
const typeOverrideKey = "type"

var (
	// cliInvocation: prose that tells the model to run a named command.
	cliInvocationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\brun\s+(?:the\s+)?(?:script|command|tool)\b`),
		regexp.MustCompile(`(?i)\b(?:node|python3?|bash|sh|npx|deno|uv)\s+[\w@./-]+`),
		regexp.MustCompile(`(?m)^\s*\$\s+\S+`),
	}

	// scriptsDir: a reference to the conventional executable-scripts path.
	scriptsDirPattern = regexp.MustCompile("(?i)(?:^|[\\s`(])(?:\\./)?scripts/[\\w.-]+")

	// commandBlock: a fenced block introduced by an explicit Run:/Execute: label.
	commandBlockPattern = regexp.MustCompile("(?mi)^(?:run|execute):\\s*\\n+```")

	// narrative: numbered phase/step headers or sequencing language.
	stepHeaderPattern = regexp.MustCompile(`(?mi)^#{1,6}\s*(?:phase|step)\s*\d+`)
	stepWordPattern   = regexp.MustCompile(`(?i)\bstep\s*\d+\b`)
	sequencingPattern = regexp.MustCompile(`(?i)\b(?:first|then|next|finally)\b`)
)

// signalSet is the outcome of evaluating every predicate over one body.
type signalSet struct {
	cliInvocation bool
	scriptsDir    bool
	commandBlock  bool
	narrative     bool
}

// toolWrapper requires all three wrapper signal groups. A single regex hit
// is insufficient; a body that merely mentions a command once must not
// classify as tool-wrapper.
func (s signalSet) toolWrapper() bool {
	return s.cliInvocation && s.scriptsDir && s.commandBlock
}

func detectSignals(body string) signalSet {
	return signalSet{
		cliInvocation: matchesAny(body, cliInvocationPatterns),
		scriptsDir:    scriptsDirPattern.MatchString(body),
		commandBlock:  commandBlockPattern.MatchString(body),
		narrative:     hasNarrativeSignal(body),
	}
}

func matchesAny(body string, patterns []*regexp.Regexp) bool {
	for _, p := range patterns {
		if p.MatchString(body) {
			return true
		}
	}
	return false
}

// hasNarrativeSignal reports process-narrative structure: explicit
// phase/step headers, or at least two sequencing words.
func hasNarrativeSignal(body string) bool {
	if stepHeaderPattern.MatchString(body) || stepWordPattern.MatchString(body) {
		return true
	}
	return len(sequencingPattern.FindAllString(body, 2)) >= 2
}

// classificationRule maps one signal combination to a SkillType. Rules are
// evaluated in order; the first match wins.
type classificationRule struct {
	name    string
	matches func(signalSet) bool
	result  SkillType
}

var classificationRules = []classificationRule{
	{
		name:    "hybrid",
		matches: func(s signalSet) bool { return s.toolWrapper() && s.narrative },
		result:  SkillTypeHybrid,
	},
	{
		name:    "tool-wrapper",
		matches: signalSet.toolWrapper,
		result:  SkillTypeToolWrapper,
	},
	{
		name:    "reasoning-narrative",
		matches: func(s signalSet) bool { return s.narrative },
		result:  SkillTypeReasoning,
	},
}

// DetectSkillType classifies a skill body. An explicit type declared in
// the frontmatter wins unconditionally; otherwise the rule table applies,
// falling back to SkillTypeReasoning. The fallback is deliberately
// conservative: under-classifying as reasoning costs extra narrative
// detail, while over-classifying as tool-wrapper risks skipping necessary
// process guidance.
func DetectSkillType(body string, fm Frontmatter) SkillType {
	return DetectSkillTypeWithDefault(body, fm, SkillTypeReasoning)
}

// DetectSkillTypeWithDefault is DetectSkillType with a configurable
// fallback, so downstream consumers can tune the precision/recall
// trade-off of the conservative default.
func DetectSkillTypeWithDefault(body string, fm Frontmatter, def SkillType) SkillType {
	if t, ok := ParseSkillType(fm.GetString(typeOverrideKey)); ok {
		return t
	}

	signals := detectSignals(body)
	for _, rule := range classificationRules {
		if rule.matches(signals) {
			return rule.result
		}
	}
	return def
}
