package main

import (
	"io/fs"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"skillaudit/pkg/logger"
	"skillaudit/pkg/presenter"
)

// debounce window for filesystem event bursts (editors fire several
// events per save)
const watchSettle = 500 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch [root]",
	Short: "Re-run the audit whenever the corpus changes",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		root := corpusRoot(args)

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return errors.Wrap(err, "failed to create watcher")
		}
		defer watcher.Close()

		if err := watchTree(watcher, root); err != nil {
			return err
		}

		runAudit := func() {
			report, err := runPipeline(cmd, args, false, false)
			if err != nil {
				presenter.Error(err, "audit run failed")
				return
			}
			printReport(report)
		}

		presenter.Info("watching " + root)
		runAudit()

		var settle *time.Timer
		fire := make(chan struct{}, 1)
		for {
			select {
			case <-ctx.Done():
				return nil
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				logger.G(ctx).WithField("event", event.String()).Debug("fs event")
				if event.Op.Has(fsnotify.Create) {
					// new directories need their own watch
					_ = watchTree(watcher, event.Name)
				}
				if settle != nil {
					settle.Stop()
				}
				settle = time.AfterFunc(watchSettle, func() {
					select {
					case fire <- struct{}{}:
					default:
					}
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				logger.G(ctx).WithError(err).Warn("watch error")
			case <-fire:
				runAudit()
			}
		}
	},
}

// watchTree registers path and every directory below it.
func watchTree(watcher *fsnotify.Watcher, path string) error {
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d == nil || !d.IsDir() {
			return nil
		}
		switch d.Name() {
		case ".git", "node_modules", "vendor":
			return filepath.SkipDir
		}
		_ = watcher.Add(p)
		return nil
	})
}
