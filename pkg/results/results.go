// Package results defines the record types exchanged between the audit
// pipeline and any orchestrating layer (CLI, CI gate, report aggregator).
// Everything here is plain data, serializable as JSON.
package results

// Severity indicates how serious an audit finding is.
type Severity string

const (
	// SeverityWarning marks an issue worth reviewing but not blocking.
	SeverityWarning Severity = "WARNING"
	// SeverityCritical marks an issue that should block a release.
	SeverityCritical Severity = "CRITICAL"
)

// Status is the overall outcome of one audit phase over one file.
type Status string

const (
	StatusPass Status = "PASS"
	StatusWarn Status = "WARN"
	StatusFail Status = "FAIL"
	// StatusSkip means the audit target does not exist. A skill without a
	// generated wrapper is not a defect at this layer.
	StatusSkip Status = "SKIP"
)

// Issue is a single audit finding. Issues are ephemeral and only live
// within one audit run.
type Issue struct {
	Severity   Severity `json:"severity"`
	Phase      int      `json:"phase"`
	Message    string   `json:"message"`
	File       string   `json:"file"`
	Line       int      `json:"line"`
	Suggestion string   `json:"suggestion,omitempty"`
}

// AuditResult is the outcome of one audit phase (or a concatenation of
// several phases) over one source file.
type AuditResult struct {
	Issues []Issue `json:"issues"`
	Status Status  `json:"status"`
}

// FixResult describes what a fixer did (or, in dry-run, would do).
// Fixed is true only if bytes were actually written to disk.
type FixResult struct {
	Fixed   bool     `json:"fixed"`
	Changes []string `json:"changes"`
	Diff    string   `json:"diff,omitempty"`
}

// StatusFor derives the audit status from a set of issues. The derivation
// is total: FAIL on any critical issue, WARN on any issue, PASS otherwise.
// StatusSkip is never derived here; it is reserved for missing targets.
func StatusFor(issues []Issue) Status {
	status := StatusPass
	for _, issue := range issues {
		if issue.Severity == SeverityCritical {
			return StatusFail
		}
		status = StatusWarn
	}
	return status
}

// NewAuditResult builds an AuditResult with the status derived from issues.
func NewAuditResult(issues []Issue) AuditResult {
	return AuditResult{Issues: issues, Status: StatusFor(issues)}
}

// Skipped returns the result for a missing audit target.
func Skipped() AuditResult {
	return AuditResult{Issues: []Issue{}, Status: StatusSkip}
}

// Merge concatenates phase results over the same file into one result.
// The merged status is re-derived from the combined issues; it is SKIP
// only when every input was skipped.
func Merge(rs ...AuditResult) AuditResult {
	allSkipped := len(rs) > 0
	var issues []Issue
	for _, r := range rs {
		if r.Status != StatusSkip {
			allSkipped = false
		}
		issues = append(issues, r.Issues...)
	}
	if allSkipped {
		return Skipped()
	}
	return NewAuditResult(issues)
}
