package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"skillaudit/pkg/presenter"
)

var fixCmd = &cobra.Command{
	Use:   "fix [root]",
	Short: "Apply automatic fixes to audited wrappers",
	Long: `Run the audit pipeline and apply the registered fixers to each resolved
wrapper. Fixers are idempotent and additive only; use --dry-run to review
the intended changes first. Re-run the audit afterwards to confirm
convergence.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		report, err := runPipeline(cmd, args, true, dryRun)
		if err != nil {
			return err
		}

		showDiff, _ := cmd.Flags().GetBool("diff")
		total := 0
		for _, file := range report.Files {
			if len(file.Fixes) == 0 {
				continue
			}
			for name, result := range file.Fixes {
				if len(result.Changes) == 0 {
					continue
				}
				total += len(result.Changes)
				presenter.Section(fmt.Sprintf("%s: %s", file.Skill.Name, name))
				for _, change := range result.Changes {
					presenter.Info(change)
				}
				if showDiff && result.Diff != "" {
					presenter.Info(result.Diff)
				}
			}
		}

		switch {
		case total == 0:
			presenter.Info("nothing to fix")
		case dryRun:
			presenter.Warning(fmt.Sprintf("%d change(s) detected, none applied (dry-run)", total))
		default:
			presenter.Success(fmt.Sprintf("%d change(s) applied", total))
		}
		return nil
	},
}

func init() {
	fixCmd.Flags().Bool("dry-run", false, "Report intended changes without writing")
	fixCmd.Flags().Bool("diff", false, "Show unified diffs of the changes")
}
