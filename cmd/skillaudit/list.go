package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"skillaudit/pkg/config"
	"skillaudit/pkg/skills"
)

var listCmd = &cobra.Command{
	Use:   "list [root]",
	Short: "List and classify every skill under a corpus root",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		walker, err := skills.NewWalker(skills.WithExcludeGlobs(cfg.Exclude...))
		if err != nil {
			return err
		}
		paths, err := walker.FindAllSkills(corpusRoot(args))
		if err != nil {
			return err
		}

		records := make([]*skills.SkillRecord, 0, len(paths))
		for _, path := range paths {
			records = append(records, skills.ParseWithOptions(path, skills.ParseOptions{
				DefaultType: cfg.DefaultType(),
			}))
		}

		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			out, err := json.MarshalIndent(records, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tTYPE\tWORDS\tLINES\tPATH")
		for _, record := range records {
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n",
				record.Name, record.SkillType, record.WordCount, record.LineCount, record.Path)
		}
		return w.Flush()
	},
}

func init() {
	listCmd.Flags().Bool("json", false, "Emit records as JSON")
}
