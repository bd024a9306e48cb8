package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/godot-ecs/nodegen/internal/cli/config"
	"github.com/godot-ecs/nodegen/internal/cli/ui"
	"github.com/godot-ecs/nodegen/internal/genlog"
	"github.com/godot-ecs/nodegen/internal/pipeline"
)

var (
	generateVerbose  bool
	generateSkipDump bool
	generateNoFormat bool
)

func init() {
	generateCmd.Flags().BoolVar(&generateVerbose, "verbose", false, "Show verbose output")
	generateCmd.Flags().BoolVar(&generateSkipDump, "skip-dump", false, "Generate from existing dumps without invoking Godot")
	generateCmd.Flags().BoolVar(&generateNoFormat, "no-format", false, "Skip running the Rust formatter on generated files")
}

// buildPipeline wires configuration, logging, and terminal output into a
// ready-to-run pipeline. Shared by generate, dump, and watch.
func buildPipeline(verbose, noFormat bool) (*pipeline.Pipeline, *genlog.Logger, *ui.Printer, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	if noFormat {
		cfg.Format.Enabled = false
	}

	log := genlog.New(verbose)
	printer := ui.NewPrinter(os.Stdout, false)
	return pipeline.New(cfg, log, printer), log, printer, nil
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate node type code for all configured API versions",
	Long: `Generate the Rust and GDScript sources for every configured extension API
version. For each version this dumps the extension API from Godot (switching
engine versions via the configured version manager), then emits node marker
structs, type dispatch code, signal name constants, and the scene tree
watcher script. After all versions succeed, the latest version's watcher is
installed as the active script.

Examples:
  # Full run: dump every version and generate
  nodegen generate

  # Regenerate from dumps already on disk
  nodegen generate --skip-dump

  # Keep generated Rust unformatted
  nodegen generate --no-format
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, log, printer, err := buildPipeline(generateVerbose, generateNoFormat)
		if err != nil {
			return err
		}
		defer log.Sync()
		p.SkipDump = generateSkipDump

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := p.Run(ctx); err != nil {
			printer.Errorf("generation failed: %v", err)
			return err
		}
		return nil
	},
}
