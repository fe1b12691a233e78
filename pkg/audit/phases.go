package audit

import (
	"fmt"
	"regexp"
	"strings"

	"skillaudit/pkg/results"
)

// guardLookback is the number of preceding lines inspected for a guard
// token, in addition to the line itself. The window intentionally accepts
// false negatives (guard further away) and false positives (an unrelated
// conditional nearby) as the cost of staying a lightweight lint.
const guardLookback = 3

var (
	nestedAccessPattern = regexp.MustCompile(`\b([A-Za-z_$][\w$]*)\.([A-Za-z_$][\w$]*)\.([A-Za-z_$][\w$]*)`)
	guardTokenPattern   = regexp.MustCompile(`\bif\b|\?\.`)

	jsonParsePattern = regexp.MustCompile(`\bJSON\.parse\(`)
	tryTokenPattern  = regexp.MustCompile(`\btry\b|\bcatch\b`)

	argsUsagePattern   = regexp.MustCompile(`\bargs\.\w+`)
	schemaParsePattern = regexp.MustCompile(`\.safeParse\(|Schema\.parse\(|\bz\.object\(`)
	consoleLogPattern  = regexp.MustCompile(`\bconsole\.log\(`)
)

// windowGuarded reports whether the guard token appears on line i or the
// preceding lookback lines.
func windowGuarded(lines []string, i int, token *regexp.Regexp) bool {
	start := i - guardLookback
	if start < 0 {
		start = 0
	}
	return token.MatchString(strings.Join(lines[start:i+1], "\n"))
}

// NestedAccess describes one unguarded two-level property chain.
type NestedAccess struct {
	Line   int // 1-based
	Chain  string
	Base   string
	Field  string
	Nested string
}

// Guarded returns the chain with a safety operator inserted between the
// first and second property access.
func (n NestedAccess) Guarded() string {
	return fmt.Sprintf("%s.%s?.%s", n.Base, n.Field, n.Nested)
}

// FindUnguardedNestedAccess scans source lines for base.field.nested
// chains with no conditional keyword or optional-chaining operator within
// the lookback window. The fixer engine consumes the same detection.
func FindUnguardedNestedAccess(lines []string) []NestedAccess {
	var found []NestedAccess
	for i, line := range lines {
		matches := nestedAccessPattern.FindAllStringSubmatch(line, -1)
		if len(matches) == 0 {
			continue
		}
		if windowGuarded(lines, i, guardTokenPattern) {
			continue
		}
		for _, m := range matches {
			found = append(found, NestedAccess{
				Line:   i + 1,
				Chain:  m[0],
				Base:   m[1],
				Field:  m[2],
				Nested: m[3],
			})
		}
	}
	return found
}

// NestedAccessPhase flags two-level property chains that are not preceded
// by a null-safety guard.
type NestedAccessPhase struct{}

func (NestedAccessPhase) ID() int      { return 1 }
func (NestedAccessPhase) Name() string { return "nested-access-safety" }

func (p NestedAccessPhase) Run(sourcePath string) (results.AuditResult, error) {
	lines, exists, err := readSourceLines(sourcePath)
	if err != nil {
		return results.AuditResult{}, err
	}
	if !exists {
		return results.Skipped(), nil
	}

	var issues []results.Issue
	for _, access := range FindUnguardedNestedAccess(lines) {
		issues = append(issues, results.Issue{
			Severity:   results.SeverityWarning,
			Phase:      p.ID(),
			Message:    fmt.Sprintf("unguarded nested access %q", access.Chain),
			File:       sourcePath,
			Line:       access.Line,
			Suggestion: fmt.Sprintf("use %s", access.Guarded()),
		})
	}
	return results.NewAuditResult(issues), nil
}

// UnhandledParsePhase flags JSON.parse calls with no try/catch within the
// lookback window.
type UnhandledParsePhase struct{}

func (UnhandledParsePhase) ID() int      { return 2 }
func (UnhandledParsePhase) Name() string { return "unhandled-parse" }

func (p UnhandledParsePhase) Run(sourcePath string) (results.AuditResult, error) {
	lines, exists, err := readSourceLines(sourcePath)
	if err != nil {
		return results.AuditResult{}, err
	}
	if !exists {
		return results.Skipped(), nil
	}

	var issues []results.Issue
	for i, line := range lines {
		if !jsonParsePattern.MatchString(line) {
			continue
		}
		if windowGuarded(lines, i, tryTokenPattern) {
			continue
		}
		issues = append(issues, results.Issue{
			Severity:   results.SeverityWarning,
			Phase:      p.ID(),
			Message:    "JSON.parse without surrounding try/catch",
			File:       sourcePath,
			Line:       i + 1,
			Suggestion: "wrap the parse in a try/catch and return a structured error",
		})
	}
	return results.NewAuditResult(issues), nil
}

// InputValidationPhase flags wrappers that read tool arguments without any
// schema validation call in the file.
type InputValidationPhase struct{}

func (InputValidationPhase) ID() int      { return 3 }
func (InputValidationPhase) Name() string { return "input-validation" }

func (p InputValidationPhase) Run(sourcePath string) (results.AuditResult, error) {
	lines, exists, err := readSourceLines(sourcePath)
	if err != nil {
		return results.AuditResult{}, err
	}
	if !exists {
		return results.Skipped(), nil
	}

	source := strings.Join(lines, "\n")
	if schemaParsePattern.MatchString(source) {
		return results.NewAuditResult(nil), nil
	}

	for i, line := range lines {
		if argsUsagePattern.MatchString(line) {
			issue := results.Issue{
				Severity:   results.SeverityCritical,
				Phase:      p.ID(),
				Message:    "arguments are used without schema validation",
				File:       sourcePath,
				Line:       i + 1,
				Suggestion: "validate arguments with the generated schema before use",
			}
			return results.NewAuditResult([]results.Issue{issue}), nil
		}
	}
	return results.NewAuditResult(nil), nil
}

// DebugOutputPhase flags console.log calls left in generated wrappers,
// where stdout is reserved for the protocol stream.
type DebugOutputPhase struct{}

func (DebugOutputPhase) ID() int      { return 4 }
func (DebugOutputPhase) Name() string { return "debug-output" }

func (p DebugOutputPhase) Run(sourcePath string) (results.AuditResult, error) {
	lines, exists, err := readSourceLines(sourcePath)
	if err != nil {
		return results.AuditResult{}, err
	}
	if !exists {
		return results.Skipped(), nil
	}

	var issues []results.Issue
	for i, line := range lines {
		if !consoleLogPattern.MatchString(line) {
			continue
		}
		issues = append(issues, results.Issue{
			Severity:   results.SeverityWarning,
			Phase:      p.ID(),
			Message:    "console.log in generated wrapper",
			File:       sourcePath,
			Line:       i + 1,
			Suggestion: "use console.error or remove the statement",
		})
	}
	return results.NewAuditResult(issues), nil
}
