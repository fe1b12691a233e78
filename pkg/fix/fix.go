// Package fix implements narrowly-scoped automatic remediations for
// specific audit issue classes. Every fixer is idempotent and additive
// only: it never deletes or weakens existing validation, never fabricates
// fields, and never touches anything outside its one defect class. That
// invariant must hold for any future fixer as well.
package fix

import (
	"os"
	"strings"

	"github.com/aymanbagabas/go-udiff"
	"github.com/pkg/errors"

	"skillaudit/pkg/results"
)

// Options controls how a fixer applies its changes.
type Options struct {
	// DryRun computes and reports intended changes without touching disk.
	DryRun bool
}

// Fixer is one targeted remediation for a single issue class.
type Fixer interface {
	// Name is a stable identifier for the fixer.
	Name() string
	// Apply rewrites sourcePath in place, or reports intended changes in
	// dry-run. A result with Fixed=false guarantees zero bytes written.
	Apply(sourcePath string, opts Options) (results.FixResult, error)
}

// Fixers returns every registered fixer.
func Fixers() []Fixer {
	return []Fixer{
		OptionalFieldFixer{},
		NestedAccessFixer{},
	}
}

// lineRewrite transforms source lines and describes each change it made.
type lineRewrite func(lines []string) (rewritten []string, changes []string)

// applyRewrite runs the shared compute-then-write cycle: the full change
// list is always computed first, and the file is rewritten only when the
// list is non-empty. A write failure propagates as a hard error; silently
// losing an intended fix would leave the caller unaware the source is
// still in its pre-fix state.
func applyRewrite(sourcePath string, opts Options, rewrite lineRewrite) (results.FixResult, error) {
	info, err := os.Stat(sourcePath)
	if err != nil {
		return results.FixResult{}, errors.Wrapf(err, "failed to stat fix target %s", sourcePath)
	}
	raw, err := os.ReadFile(sourcePath)
	if err != nil {
		return results.FixResult{}, errors.Wrapf(err, "failed to read fix target %s", sourcePath)
	}

	before := string(raw)
	lines, changes := rewrite(strings.Split(before, "\n"))
	if len(changes) == 0 {
		return results.FixResult{Fixed: false, Changes: []string{}}, nil
	}

	after := strings.Join(lines, "\n")
	result := results.FixResult{
		Changes: changes,
		Diff:    udiff.Unified(sourcePath, sourcePath, before, after),
	}
	if opts.DryRun {
		return result, nil
	}

	if err := os.WriteFile(sourcePath, []byte(after), info.Mode().Perm()); err != nil {
		return results.FixResult{}, errors.Wrapf(err, "failed to write fix target %s", sourcePath)
	}
	result.Fixed = true
	return result, nil
}
