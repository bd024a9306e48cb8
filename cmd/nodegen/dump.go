package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var dumpVerbose bool

func init() {
	dumpCmd.Flags().BoolVar(&dumpVerbose, "verbose", false, "Show verbose output")
}

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Dump extension API schemas without generating code",
	Long: `Run Godot for every configured API version and store the extension API
dumps, switching engine versions via the configured version manager.
Existing dumps are kept as-is. No code is generated.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, log, printer, err := buildPipeline(dumpVerbose, true)
		if err != nil {
			return err
		}
		defer log.Sync()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := p.Dump(ctx); err != nil {
			printer.Errorf("dump failed: %v", err)
			return err
		}
		printer.Successf("All extension API dumps are in place")
		return nil
	},
}
