package main

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"skillaudit/pkg/config"
	"skillaudit/pkg/pipeline"
	"skillaudit/pkg/presenter"
	"skillaudit/pkg/results"
)

var auditCmd = &cobra.Command{
	Use:   "audit [root]",
	Short: "Audit generated wrappers of every tool-wrapper skill",
	Long: `Walk the corpus, classify each skill, and run every audit phase against
the generated wrapper of each wrapper-producing skill. Exits non-zero when
any wrapper fails a critical check.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := runPipeline(cmd, args, false, false)
		if err != nil {
			return err
		}

		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			out, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
		} else {
			printReport(report)
		}

		if report.Summary.Fail > 0 {
			return errors.Errorf("%d wrapper(s) failed the audit", report.Summary.Fail)
		}
		return nil
	},
}

// runPipeline assembles pipeline options from config and flags and runs
// the corpus. Per-file errors surface as warnings, not a hard failure:
// the report stays usable.
func runPipeline(cmd *cobra.Command, args []string, applyFixes, dryRun bool) (*pipeline.Report, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	report, runErr := pipeline.Run(cmd.Context(), corpusRoot(args), pipeline.Options{
		Resolver:         pipeline.ConventionResolver(cfg.WrapperDir),
		DefaultSkillType: cfg.DefaultType(),
		ExcludeGlobs:     cfg.Exclude,
		Fix:              applyFixes,
		DryRun:           dryRun,
	})
	if report == nil {
		return nil, runErr
	}
	if runErr != nil {
		presenter.Warning(fmt.Sprintf("some files could not be processed: %v", runErr))
	}
	return report, nil
}

func printReport(report *pipeline.Report) {
	for _, file := range report.Files {
		if file.Audit == nil {
			continue
		}
		presenter.Section(fmt.Sprintf("%s (%s)", file.Skill.Name, file.Audit.Status))
		for _, issue := range file.Audit.Issues {
			line := fmt.Sprintf("[phase %d] %s:%d %s", issue.Phase, issue.File, issue.Line, issue.Message)
			if issue.Suggestion != "" {
				line += " (suggestion: " + issue.Suggestion + ")"
			}
			if issue.Severity == results.SeverityCritical {
				presenter.Warning("CRITICAL " + line)
			} else {
				presenter.Info(line)
			}
		}
	}

	s := report.Summary
	presenter.Section("Summary")
	presenter.Info(fmt.Sprintf("%d skills (%d reasoning, %d tool-wrapper, %d hybrid)",
		s.Skills, s.Reasoning, s.ToolWrapper, s.Hybrid))
	presenter.Info(fmt.Sprintf("wrappers: %d pass, %d warn, %d fail, %d skipped", s.Pass, s.Warn, s.Fail, s.Skip))
	if s.Degraded > 0 {
		presenter.Warning(fmt.Sprintf("%d skill(s) have unparseable frontmatter", s.Degraded))
	}
}

func init() {
	auditCmd.Flags().Bool("json", false, "Emit the full report as JSON")
}
