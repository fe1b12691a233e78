package fix

import (
	"fmt"
	"strings"

	"skillaudit/pkg/audit"
	"skillaudit/pkg/results"
)

// NestedAccessFixer inserts an optional-chaining operator into the chains
// the nested-access audit flags. It consumes the same detection as the
// audit phase, so a fixed line counts as guarded on the next run and the
// fixer converges after one pass.
type NestedAccessFixer struct{}

func (NestedAccessFixer) Name() string { return "nested-access-guard" }

func (f NestedAccessFixer) Apply(sourcePath string, opts Options) (results.FixResult, error) {
	return applyRewrite(sourcePath, opts, func(lines []string) ([]string, []string) {
		var changes []string
		for _, access := range audit.FindUnguardedNestedAccess(lines) {
			i := access.Line - 1
			guarded := access.Guarded()
			if !strings.Contains(lines[i], access.Chain) {
				continue
			}
			lines[i] = strings.Replace(lines[i], access.Chain, guarded, 1)
			changes = append(changes, fmt.Sprintf("guarded %s as %s (line %d)", access.Chain, guarded, access.Line))
		}
		return lines, changes
	})
}
