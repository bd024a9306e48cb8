package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/godot-ecs/nodegen/internal/watch"
)

var (
	watchVerbose  bool
	watchNoFormat bool
)

func init() {
	watchCmd.Flags().BoolVar(&watchVerbose, "verbose", false, "Show verbose output")
	watchCmd.Flags().BoolVar(&watchNoFormat, "no-format", false, "Skip running the Rust formatter on generated files")
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate whenever an extension API dump changes",
	Long: `Watch the extension API dump directory and rerun generation whenever a
dump file is written. Dumps changed in quick succession are batched into a
single regeneration. The engine is never invoked; only dumps already on
disk are processed.

Examples:
  # Watch with default settings
  nodegen watch

  # Verbose output, no formatting
  nodegen watch --verbose --no-format
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, log, printer, err := buildPipeline(watchVerbose, watchNoFormat)
		if err != nil {
			return err
		}
		defer log.Sync()
		p.SkipDump = true

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		dumpDir := p.DumpDir()

		watcher, err := watch.NewDumpWatcher(dumpDir, log, func(files []string) error {
			printer.Infof("dump changed, regenerating (%d file(s))", len(files))
			if err := p.Run(ctx); err != nil {
				printer.Errorf("regeneration failed: %v", err)
				return err
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to create watcher: %w", err)
		}

		if err := watcher.Start(); err != nil {
			return fmt.Errorf("failed to start watcher: %w", err)
		}

		printer.Infof("Watching %s", dumpDir)
		printer.Infof("Press Ctrl+C to stop")

		<-ctx.Done()
		printer.Infof("Shutting down...")
		return watcher.Stop()
	},
}
