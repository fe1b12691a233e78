// Package pipeline drives the full corpus run: discover skill documents,
// parse and classify each one, audit the generated wrapper of every
// wrapper-producing skill, and optionally apply fixers. Processing is
// isolated per file: one malformed document or unreadable wrapper never
// aborts its siblings.
package pipeline

import (
	"context"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"skillaudit/pkg/audit"
	"skillaudit/pkg/fix"
	"skillaudit/pkg/logger"
	"skillaudit/pkg/results"
	"skillaudit/pkg/skills"
)

// WrapperResolver maps a skill record to its generated wrapper source
// path, or "" when the skill has none. Which wrapper belongs to which
// skill is the caller's naming convention, not a concern of this core.
type WrapperResolver func(record *skills.SkillRecord) string

// ConventionResolver resolves wrappers under the named subdirectory of
// the skill directory, trying <dir>/<name>.ts then <dir>/<name>.js.
func ConventionResolver(dir string) WrapperResolver {
	return func(record *skills.SkillRecord) string {
		candidates := []string{
			filepath.Join(record.Directory, dir, record.Name+".ts"),
			filepath.Join(record.Directory, dir, record.Name+".js"),
		}
		for _, candidate := range candidates {
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}
		return ""
	}
}

// DefaultResolver looks for the conventional wrapper locations inside the
// skill directory.
var DefaultResolver = ConventionResolver("scripts")

// Options configures one pipeline run.
type Options struct {
	// Resolver locates the generated wrapper for a skill. Defaults to
	// DefaultResolver.
	Resolver WrapperResolver
	// DefaultSkillType is the classification fallback. Empty means
	// reasoning.
	DefaultSkillType skills.SkillType
	// ExcludeGlobs are walker exclude patterns.
	ExcludeGlobs []string
	// Fix applies the registered fixers to audited wrappers.
	Fix bool
	// DryRun makes the fix stage report intended changes only. Implies
	// nothing when Fix is false.
	DryRun bool
}

// FileReport is the outcome for one skill document.
type FileReport struct {
	Skill       *skills.SkillRecord          `json:"skill"`
	WrapperPath string                       `json:"wrapperPath,omitempty"`
	Audit       *results.AuditResult         `json:"audit,omitempty"`
	Fixes       map[string]results.FixResult `json:"fixes,omitempty"`
	Error       string                       `json:"error,omitempty"`
}

// Summary aggregates a run for quick gating.
type Summary struct {
	Skills      int `json:"skills"`
	Reasoning   int `json:"reasoning"`
	ToolWrapper int `json:"toolWrapper"`
	Hybrid      int `json:"hybrid"`
	Pass        int `json:"pass"`
	Warn        int `json:"warn"`
	Fail        int `json:"fail"`
	Skip        int `json:"skip"`
	Degraded    int `json:"degraded"`
}

// Report is the serializable outcome of one pipeline run.
type Report struct {
	RunID   string       `json:"runId"`
	Root    string       `json:"root"`
	Files   []FileReport `json:"files"`
	Summary Summary      `json:"summary"`
}

// Run executes the pipeline over every skill under root. Per-file errors
// are recorded both in the file report and in the returned aggregate;
// the report is always usable even when the aggregate error is non-nil.
// Fixes do not re-audit: callers re-run the pipeline to confirm
// convergence.
func Run(ctx context.Context, root string, opts Options) (*Report, error) {
	log := logger.G(ctx)

	if opts.Resolver == nil {
		opts.Resolver = DefaultResolver
	}

	walker, err := skills.NewWalker(skills.WithExcludeGlobs(opts.ExcludeGlobs...))
	if err != nil {
		return nil, err
	}
	paths, err := walker.FindAllSkills(root)
	if err != nil {
		return nil, err
	}

	report := &Report{
		RunID: uuid.NewString(),
		Root:  root,
		Files: make([]FileReport, 0, len(paths)),
	}
	log.WithField("run_id", report.RunID).WithField("skills", len(paths)).Debug("starting corpus run")

	var merr *multierror.Error
	for _, path := range paths {
		file := processSkill(ctx, path, opts)
		if file.Error != "" {
			merr = multierror.Append(merr, errors.Errorf("%s: %s", path, file.Error))
		}
		tally(&report.Summary, file)
		report.Files = append(report.Files, file)
	}

	return report, merr.ErrorOrNil()
}

// processSkill handles one document end to end.
func processSkill(ctx context.Context, path string, opts Options) FileReport {
	log := logger.G(ctx).WithField("skill", path)

	record := skills.ParseWithOptions(path, skills.ParseOptions{DefaultType: opts.DefaultSkillType})
	file := FileReport{Skill: record}

	if record.Frontmatter.GetString("description") == skills.FrontmatterErrorSentinel {
		log.Warn("frontmatter could not be parsed, record degraded")
	}
	if record.SkillType == skills.SkillTypeReasoning {
		return file
	}

	wrapperPath := opts.Resolver(record)
	if wrapperPath == "" {
		return file
	}
	file.WrapperPath = wrapperPath

	auditResult, err := audit.RunAll(wrapperPath)
	if err != nil {
		file.Error = err.Error()
		return file
	}
	file.Audit = &auditResult

	if !opts.Fix {
		return file
	}

	file.Fixes = make(map[string]results.FixResult, len(fix.Fixers()))
	for _, fixer := range fix.Fixers() {
		fixResult, err := fixer.Apply(wrapperPath, fix.Options{DryRun: opts.DryRun})
		if err != nil {
			file.Error = err.Error()
			return file
		}
		file.Fixes[fixer.Name()] = fixResult
	}
	return file
}

func tally(summary *Summary, file FileReport) {
	summary.Skills++
	switch file.Skill.SkillType {
	case skills.SkillTypeToolWrapper:
		summary.ToolWrapper++
	case skills.SkillTypeHybrid:
		summary.Hybrid++
	default:
		summary.Reasoning++
	}
	if file.Skill.Frontmatter.GetString("description") == skills.FrontmatterErrorSentinel {
		summary.Degraded++
	}
	if file.Audit == nil {
		return
	}
	switch file.Audit.Status {
	case results.StatusPass:
		summary.Pass++
	case results.StatusWarn:
		summary.Warn++
	case results.StatusFail:
		summary.Fail++
	case results.StatusSkip:
		summary.Skip++
	}
}
