// Package audit implements independent per-file checks over generated
// wrapper source. Each phase is a pure function from a source path to an
// AuditResult; phases share no state and may run in any order. Checks are
// bounded-window line scans, not syntax-aware analysis: they trade
// soundness for a single O(n) pass with no parser dependency.
package audit

import (
	"os"
	"strings"

	"github.com/pkg/errors"

	"skillaudit/pkg/results"
)

// Phase is one independent audit check.
type Phase interface {
	// ID identifies the phase in reported issues.
	ID() int
	// Name is a short human-readable label.
	Name() string
	// Run audits one source file. A missing file yields a SKIP result,
	// not an error: absence of a generated wrapper is not a defect here.
	Run(sourcePath string) (results.AuditResult, error)
}

// Phases returns every registered phase in ID order.
func Phases() []Phase {
	return []Phase{
		NestedAccessPhase{},
		UnhandledParsePhase{},
		InputValidationPhase{},
		DebugOutputPhase{},
	}
}

// RunAll runs every registered phase against one file and merges the
// results by issue concatenation.
func RunAll(sourcePath string) (results.AuditResult, error) {
	rs := make([]results.AuditResult, 0, len(Phases()))
	for _, phase := range Phases() {
		r, err := phase.Run(sourcePath)
		if err != nil {
			return results.AuditResult{}, errors.Wrapf(err, "phase %d (%s) failed", phase.ID(), phase.Name())
		}
		rs = append(rs, r)
	}
	return results.Merge(rs...), nil
}

// readSourceLines loads a source file for scanning. The second return is
// false if the file does not exist.
func readSourceLines(path string) ([]string, bool, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, "failed to read audit target %s", path)
	}
	return strings.Split(string(raw), "\n"), true, nil
}
