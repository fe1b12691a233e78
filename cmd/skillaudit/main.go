package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"skillaudit/pkg/config"
	"skillaudit/pkg/logger"
	"skillaudit/pkg/presenter"
)

var rootCmd = &cobra.Command{
	Use:   "skillaudit",
	Short: "Audit skill documentation and its generated wrappers",
	Long: `skillaudit walks a corpus of SKILL.md documents, classifies each skill
by operational type, audits the generated wrapper source of tool-wrapper
skills for structural defects, and can apply a narrow set of idempotent
automatic fixes.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		bindFlags(cmd.Flags())

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := logger.SetLogLevel(cfg.LogLevel); err != nil {
			return err
		}
		logger.SetLogFormat(cfg.LogFormat)

		quiet, _ := cmd.Flags().GetBool("quiet")
		presenter.SetQuiet(quiet)
		return nil
	},
}

// bindFlags maps changed command flags onto their viper keys so that
// flags beat config file and environment values.
func bindFlags(fs *pflag.FlagSet) {
	fs.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "log-level":
			viper.Set("log_level", f.Value.String())
		case "log-format":
			viper.Set("log_format", f.Value.String())
		case "default-type":
			viper.Set("default_skill_type", f.Value.String())
		}
	})
}

func init() {
	config.Init()

	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "Log format (text, json)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress non-error output")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(versionCmd)
}

// corpusRoot returns the positional corpus root, defaulting to the
// current directory.
func corpusRoot(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		presenter.Error(err, "")
		os.Exit(1)
	}
}
